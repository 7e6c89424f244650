package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jxo-me/ddns-updater/cmd/ddns/cliutil"
	"github.com/jxo-me/ddns-updater/consts"
	"github.com/jxo-me/ddns-updater/pkg/logger"
)

var (
	Version   = "DEV"
	BuildTime = "unknown"
	BuildType = ""
)

const (
	configPathFlag   = "config-path"
	debugFlag        = "debug"
	listFlag         = "list"
	periodFlag       = "period"
	scheduleFlag     = "schedule"
	settingsFlag     = "settings"
	logFormatFlag    = "log-format"
	whatsMyIPFlag    = "whats-my-ip-url"
	dnsServerFlag    = "dns-server"
	outputFormatFlag = "output-format"
)

func main() {
	bInfo := cliutil.GetBuildInfo(BuildType, Version)

	app := &cli.App{}
	app.Name = "ddns"
	app.Usage = "keep a DNS A record in sync with this machine's public IP"
	app.UsageText = "ddns [global options] <provider>"
	app.Version = fmt.Sprintf("%s (built %s%s)", Version, BuildTime, bInfo.GetBuildTypeMsg())
	app.Description = `ddns looks up this machine's public IPv4 address and the address published
	by the authoritative nameserver of the configured domain. When they differ it
	calls the update URL of the DDNS provider configured in the ini file.

	With --period it keeps doing so until interrupted; otherwise it runs once.`
	app.Flags = flags()
	app.Action = cliutil.ConfiguredAction(1, action)

	if err := app.Run(os.Args); err != nil {
		// cli.HandleExitCoder already exited for ExitCoder errors
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configPathFlag,
			Aliases: []string{"c"},
			Usage:   "provider configuration file (ini)",
			EnvVars: []string{consts.ConfigPathENV},
		},
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"d"},
			Usage:   "do everything but the update call; no root needed",
		},
		&cli.BoolFlag{
			Name:    listFlag,
			Aliases: []string{"l"},
			Usage:   "list the providers that are both implemented and configured",
		},
		&cli.StringFlag{
			Name:    periodFlag,
			Aliases: []string{"p"},
			Usage:   "run an update cycle every `PERIOD` (minutes, or a duration like 90s); 0 runs once",
		},
		&cli.StringFlag{
			Name:  scheduleFlag,
			Usage: "run update cycles on a cron `EXPR` such as \"*/5 * * * *\" instead of a period",
		},
		&cli.StringFlag{
			Name:    settingsFlag,
			Usage:   "settings `FILE` (yaml, json or toml)",
			EnvVars: []string{"DDNS_SETTINGS"},
		},
		&cli.StringFlag{
			Name:  logger.LogLevelFlag,
			Usage: "log level: trace, debug, info, warn, error, fatal",
		},
		&cli.StringFlag{
			Name:  logger.LogOutputFlag,
			Usage: "log output: stderr, stdout, none or a file path",
		},
		&cli.StringFlag{
			Name:  logFormatFlag,
			Usage: "log format: text or json",
		},
		&cli.StringFlag{
			Name:  whatsMyIPFlag,
			Usage: "comma separated `URLS` answering with the caller's IPv4 address",
		},
		&cli.StringFlag{
			Name:  dnsServerFlag,
			Usage: "recursive DNS `SERVER` for the nameserver lookup",
		},
		&cli.StringFlag{
			Name:  outputFormatFlag,
			Usage: "print the effective settings as yaml or json and exit",
		},
	}
}
