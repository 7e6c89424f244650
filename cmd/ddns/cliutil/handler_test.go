package cliutil

import (
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestWithErrorHandler(t *testing.T) {
	err := WithErrorHandler(func(*cli.Context) error { return errors.New("boom") })(newContext(t))
	var exit cli.ExitCoder
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.ExitCode())
	assert.Equal(t, "boom", err.Error())

	assert.NoError(t, WithErrorHandler(func(*cli.Context) error { return nil })(newContext(t)))

	err = WithErrorHandler(func(*cli.Context) error { return cli.Exit("x", 3) })(newContext(t))
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 3, exit.ExitCode())
}

func TestConfiguredActionRejectsExtraArgs(t *testing.T) {
	called := false
	action := ConfiguredAction(1, func(*cli.Context) error {
		called = true
		return nil
	})

	err := action(newContext(t, "namecheap", "extra"))
	require.Error(t, err)
	assert.False(t, called)

	require.NoError(t, action(newContext(t, "namecheap")))
	assert.True(t, called)
}

func TestBuildInfo(t *testing.T) {
	assert.Equal(t, "", GetBuildInfo("", "1.0").GetBuildTypeMsg())
	assert.Equal(t, " with docker", GetBuildInfo("docker", "1.0").GetBuildTypeMsg())
	assert.Contains(t, GetBuildInfo("", "1.0").Log(), "Version 1.0")
}
