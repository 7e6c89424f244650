package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/judwhite/go-svc"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/core/logger"
	"github.com/jxo-me/ddns-updater/internal/util"
	pkglogger "github.com/jxo-me/ddns-updater/pkg/logger"
	"github.com/jxo-me/ddns-updater/sdk/app"
	"github.com/jxo-me/ddns-updater/sdk/hook"
	"github.com/jxo-me/ddns-updater/sdk/resolver"
	"github.com/jxo-me/ddns-updater/sdk/service"
)

// runService is replaced in tests.
var runService = func(p svc.Service) error {
	return svc.Run(p)
}

func action(c *cli.Context) error {
	return run(c, os.Stdout)
}

func run(c *cli.Context, stdout io.Writer) error {
	settings, err := settingsFromContext(c)
	if err != nil {
		return err
	}
	logger.SetDefault(logFromConfig(settings.Log))
	log := logger.Default()
	cliLog := pkglogger.CreateLoggerFromContext(c, pkglogger.EnableTerminalLog)

	if format := c.String(outputFormatFlag); format != "" {
		return settings.Write(stdout, format)
	}

	application, err := app.NewApplication()
	if err != nil {
		return err
	}
	registry := application.ProviderRegistry()

	configPath := configPathFromContext(c)
	store, err := config.Load(configPath)

	if c.Bool(listFlag) {
		if err != nil {
			cliLog.Error().Msg(err.Error())
			return cli.Exit("", 1)
		}
		for _, name := range registry.AvailableProviders(store) {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	pf := &preflight{
		provider: c.Args().First(),
		debug:    c.Bool(debugFlag),
		store:    store,
		registry: registry,
	}
	problems := pf.Check()
	if err != nil {
		problems = append([]error{err}, problems...)
	}
	var schedule cron.Schedule
	if settings.Schedule != "" {
		if schedule, err = cron.ParseStandard(settings.Schedule); err != nil {
			problems = append(problems, errors.Wrapf(err, "invalid schedule '%s'", settings.Schedule))
		}
	}
	if len(problems) > 0 {
		for _, p := range problems {
			cliLog.Error().Msg(p.Error())
		}
		return cli.Exit(fmt.Sprintf("%d problem(s) found, not starting", len(problems)), 1)
	}

	client := util.CreateHTTPClient(settings.Timeout)
	dnsOpts := []resolver.DNSOption{resolver.WithDNSLogger(log)}
	if settings.DNSServer != "" {
		dnsOpts = append(dnsOpts, resolver.WithServers(strings.Split(settings.DNSServer, ",")...))
	}
	ddnsService := service.NewDDNS(pf.provider, store, registry,
		service.WithLogger(log),
		service.WithPeriod(settings.Period),
		service.WithSchedule(schedule),
		service.WithDebug(pf.debug),
		service.WithHTTPClient(client),
		service.WithAddrSource(resolver.NewWebResolver(settings.WhatsMyIPURL, client, log)),
		service.WithNameResolver(resolver.NewDNSResolver(dnsOpts...)),
		service.WithHook(hook.NewHook(settings.Webhook, client, log)),
	)
	log.Debugf("using %s from %s", pf.provider, configPath)

	if settings.Period <= 0 && schedule == nil {
		ddnsService.RunOnce(context.Background())
		return nil
	}

	return runService(&program{
		app:   application,
		store: store,
		svc:   ddnsService,
		log:   pkglogger.CreateLoggerFromContext(c, pkglogger.DisableTerminalLog),
	})
}
