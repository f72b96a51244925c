package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path"

	"folio/internal/app"
	"folio/internal/config"
	"folio/internal/logging"

	"github.com/google/subcommands"
	_ "github.com/lib/pq"
)

var configFiles config.Paths

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&migrateCmd{}, "database")
	commander.Register(&rebuildCmd{}, "ledger")
	commander.Register(&snapshotsCmd{}, "ledger")
	commander.Register(&seriesCmd{}, "ledger")
	commander.Register(&summaryCmd{}, "ledger")
	commander.Register(&importActivitiesCmd{}, "ledger")
	commander.Register(&importPricesCmd{}, "prices")
	commander.Register(&updatePricesCmd{}, "prices")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// openApp wires everything from the -config files given before the
// subcommand name.
func openApp() (*app.App, error) {
	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logging.New(cfg.Logging))
}

func printJson(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
