package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	api_types "folio/api-types"
	"folio/internal/db"

	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// portfolioFlag is shared by every command scoped to one portfolio.
type portfolioFlag struct {
	portfolio string
}

func (p *portfolioFlag) register(f *flag.FlagSet) {
	f.StringVar(&p.portfolio, "p", "", "Portfolio id")
}

func (p *portfolioFlag) id() (uuid.UUID, bool) {
	id, err := uuid.Parse(p.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -p must be a portfolio id: %v\n", err)
		return uuid.Nil, false
	}
	return id, true
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create every table on an empty database" }
func (*migrateCmd) Usage() string {
	return `folio migrate

  Applies the embedded schema. Fails if the tables already exist.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail("%v", err)
	}
	defer a.Close()

	if err := db.Migrate(ctx, a.Db); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type rebuildCmd struct {
	portfolioFlag
}

func (*rebuildCmd) Name() string     { return "rebuild" }
func (*rebuildCmd) Synopsis() string { return "recompute snapshots and cost basis from the full ledger" }
func (*rebuildCmd) Usage() string {
	return `folio rebuild -p <portfolio_id>

  Replays every activity of the portfolio and commits fresh snapshot
  batches and cost basis. Runs in this process, not through the queue.
`
}
func (c *rebuildCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *rebuildCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolioID, ok := c.id()
	if !ok {
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return fail("%v", err)
	}
	defer a.Close()

	if err := a.Coordinator.Rebuild(ctx, portfolioID); err != nil {
		return fail("rebuild of %s failed: %v", portfolioID, err)
	}
	fmt.Fprintf(os.Stderr, "Rebuilt %s\n", portfolioID)
	return subcommands.ExitSuccess
}

type snapshotsCmd struct {
	portfolioFlag
}

func (*snapshotsCmd) Name() string     { return "snapshots" }
func (*snapshotsCmd) Synopsis() string { return "print the stored snapshot history" }
func (*snapshotsCmd) Usage() string {
	return `folio snapshots -p <portfolio_id>
`
}
func (c *snapshotsCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *snapshotsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolioID, ok := c.id()
	if !ok {
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return fail("%v", err)
	}
	defer a.Close()

	out, err := a.Resolver.GetSnapshots(ctx, portfolioID)
	if err != nil {
		return fail("%v", err)
	}
	if err := printJson(out); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type seriesCmd struct {
	portfolioFlag
	kind       string
	instrument string
	end        string
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "print a daily forward-filled series" }
func (*seriesCmd) Usage() string {
	return `folio series -p <portfolio_id> [-k cash|cashFlow|holding] [-i <instrument>] [-e <date>]
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.kind, "k", string(api_types.SeriesKind_Cash), "Series kind")
	f.StringVar(&c.instrument, "i", "", "Instrument, for holding series")
	f.StringVar(&c.end, "e", "", "Last date, YYYY-MM-DD. Defaults to today")
}

func (c *seriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolioID, ok := c.id()
	if !ok {
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return fail("%v", err)
	}
	defer a.Close()

	out, err := a.Resolver.GetSeries(ctx, portfolioID, api_types.GetSeriesRequest{
		Kind:       api_types.SeriesKind(c.kind),
		Instrument: strings.ToUpper(c.instrument),
		End:        c.end,
	})
	if err != nil {
		return fail("%v", err)
	}
	for _, p := range out.Points {
		fmt.Printf("%s\t%s\n", p.Date, p.Value)
	}
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	portfolioFlag
	asOf string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print value, returns and flow statistics" }
func (*summaryCmd) Usage() string {
	return `folio summary -p <portfolio_id> [-d <date>]
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.asOf, "d", "", "As-of date, YYYY-MM-DD. Defaults to today")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolioID, ok := c.id()
	if !ok {
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		return fail("%v", err)
	}
	defer a.Close()

	out, err := a.Resolver.GetSummary(ctx, portfolioID, c.asOf)
	if err != nil {
		return fail("%v", err)
	}
	if err := printJson(out); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type importActivitiesCmd struct {
	portfolioFlag
	file string
}

func (*importActivitiesCmd) Name() string     { return "import-activities" }
func (*importActivitiesCmd) Synopsis() string { return "bulk import activities from a JSON file" }
func (*importActivitiesCmd) Usage() string {
	return `folio import-activities -p <portfolio_id> -f <file.json>

  The file holds {"activities": [...]} in the same shape the API accepts.
  Activities are written without triggering recomputation, then a single
  rebuild is requested.
`
}

func (c *importActivitiesCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.file, "f", "", "JSON file to import")
}

func (c *importActivitiesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolioID, ok := c.id()
	if !ok {
		return subcommands.ExitUsageError
	}
	data, err := os.ReadFile(c.file)
	if err != nil {
		return fail("%v", err)
	}
	var req api_types.ImportActivitiesRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fail("failed to parse %s: %v", c.file, err)
	}

	a, err := openApp()
	if err != nil {
		return fail("%v", err)
	}
	defer a.Close()

	out, err := a.Resolver.ImportActivities(ctx, portfolioID, req)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(os.Stderr, "Imported %d activities into %s\n", len(out.Activities), portfolioID)
	return subcommands.ExitSuccess
}

type importPricesCmd struct {
	file string
}

func (*importPricesCmd) Name() string     { return "import-prices" }
func (*importPricesCmd) Synopsis() string { return "load closing prices from a CSV file" }
func (*importPricesCmd) Usage() string {
	return `folio import-prices -f <prices.csv>

  The CSV needs symbol, price and date columns, in any order.
`
}

func (c *importPricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV file to import")
}

func (c *importPricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	file, err := os.Open(c.file)
	if err != nil {
		return fail("%v", err)
	}
	defer file.Close()

	a, err := openApp()
	if err != nil {
		return fail("%v", err)
	}
	defer a.Close()

	if err := a.PriceIngestor().ImportCsv(ctx, file); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type updatePricesCmd struct {
	symbols string
	pairs   string
}

func (*updatePricesCmd) Name() string     { return "update-prices" }
func (*updatePricesCmd) Synopsis() string { return "refresh closing prices from Alpha Vantage" }
func (*updatePricesCmd) Usage() string {
	return `folio update-prices [-s AAPL,VTI] [-fx EUR/USD]
`
}

func (c *updatePricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbols, "s", "", "Comma separated symbols; every known stock when empty")
	f.StringVar(&c.pairs, "fx", "", "Comma separated currency pairs")
}

func (c *updatePricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail("%v", err)
	}
	defer a.Close()

	ingestor := a.PriceIngestor()
	status := subcommands.ExitSuccess
	if err := ingestor.UpdatePrices(ctx, splitList(c.symbols)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		status = subcommands.ExitFailure
	}
	if pairs := splitList(c.pairs); len(pairs) > 0 {
		if err := ingestor.UpdateExchangeRates(ctx, pairs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
		}
	}
	return status
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	return out
}
