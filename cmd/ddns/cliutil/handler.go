package cliutil

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const errorExitCode = 1

func Action(actionFunc cli.ActionFunc) cli.ActionFunc {
	return WithErrorHandler(actionFunc)
}

// ConfiguredAction rejects stray positional arguments beyond maxArgs
// before running actionFunc.
func ConfiguredAction(maxArgs int, actionFunc cli.ActionFunc) cli.ActionFunc {
	return WithErrorHandler(func(c *cli.Context) error {
		if c.NArg() > maxArgs {
			return UsageError("expected at most %d argument(s), got %d: %v", maxArgs, c.NArg(), c.Args().Slice())
		}
		return actionFunc(c)
	})
}

// WithErrorHandler makes sure every error leaving actionFunc carries an
// exit code.
func WithErrorHandler(actionFunc cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		err := actionFunc(c)
		if err == nil {
			return nil
		}
		if _, ok := err.(cli.ExitCoder); ok {
			return err
		}
		return cli.Exit(err.Error(), errorExitCode)
	}
}

// UsageError returns an exit error that also prints a usage hint.
func UsageError(format string, args ...any) error {
	return cli.Exit(fmt.Sprintf(format, args...)+"\nSee 'ddns --help'.", errorExitCode)
}
