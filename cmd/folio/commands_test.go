package main

import (
	"context"
	"flag"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"AAPL", "EUR/USD"}, splitList(" aapl, ,EUR/USD,"))
	require.Empty(t, splitList(""))
}

func TestPortfolioFlag(t *testing.T) {
	t.Run("missing id is a usage error", func(t *testing.T) {
		cmd := &rebuildCmd{}
		fs := flag.NewFlagSet("rebuild", flag.ContinueOnError)
		cmd.SetFlags(fs)
		require.NoError(t, fs.Parse([]string{}))

		require.Equal(t, subcommands.ExitUsageError, cmd.Execute(context.Background(), fs))
	})

	t.Run("parses", func(t *testing.T) {
		cmd := &summaryCmd{}
		fs := flag.NewFlagSet("summary", flag.ContinueOnError)
		cmd.SetFlags(fs)
		require.NoError(t, fs.Parse([]string{"-p", "6f1c8a3e-2b1d-4f6a-9c1e-0a2b3c4d5e6f", "-d", "2024-01-31"}))

		id, ok := cmd.id()
		require.True(t, ok)
		require.Equal(t, "6f1c8a3e-2b1d-4f6a-9c1e-0a2b3c4d5e6f", id.String())
		require.Equal(t, "2024-01-31", cmd.asOf)
	})
}
