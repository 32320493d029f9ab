package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func contextWithArgs(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		t.Run(level, func(t *testing.T) {
			set := flag.NewFlagSet("test", flag.ContinueOnError)
			set.String("log-level", level, "")
			assert.NoError(t, setupLogger(cli.NewContext(nil, set, nil)))
		})
	}

	t.Run("invalid level", func(t *testing.T) {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", "verbose", "")
		assert.Error(t, setupLogger(cli.NewContext(nil, set, nil)))
	})
}

func TestQueryText(t *testing.T) {
	t.Run("joins args", func(t *testing.T) {
		text, err := queryText(contextWithArgs(t, "runny", "nose"))
		require.NoError(t, err)
		assert.Equal(t, "runny nose", text)
	})

	t.Run("empty args", func(t *testing.T) {
		_, err := queryText(contextWithArgs(t))
		assert.Error(t, err)
	})
}
