package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/subcommands"

	"aggbars/internal/app"
	"aggbars/internal/crawl"
	"aggbars/internal/model"
	"aggbars/internal/output"
)

// runFlags are shared by bars and demo.
type runFlags struct {
	auth     string
	parallel bool
	format   string
}

func (r *runFlags) register(f *flag.FlagSet) {
	f.StringVar(&r.auth, "auth", "both", "auth mode: inline (apiKey in URL), header (Bearer token) or both")
	f.BoolVar(&r.parallel, "parallel", false, "run the auth modes concurrently")
	f.StringVar(&r.format, "format", "", "output format: "+strings.Join(output.Formats, ", ")+" (default from OUTPUT_FORMAT or log)")
}

// barsCmd fetches bars for a query given on the command line.
type barsCmd struct {
	configPath *string
	runFlags

	symbol     string
	multiplier int
	timespan   string
	from       string
	to         string
	adjusted   bool
	sort       string
}

func (*barsCmd) Name() string     { return "bars" }
func (*barsCmd) Synopsis() string { return "fetch aggregate bars for a ticker and date range" }
func (*barsCmd) Usage() string {
	return `bars -symbol <ticker> -timespan <unit> -from YYYY-MM-DD -to YYYY-MM-DD [flags]:
  Fetch aggregate bars with each selected auth mode and print them.
`
}

func (c *barsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "ticker symbol")
	f.StringVar(&c.symbol, "s", "", "ticker symbol (shorthand)")
	f.IntVar(&c.multiplier, "multiplier", 1, "size of each aggregation window")
	f.StringVar(&c.timespan, "timespan", "", "window unit: second, minute, hour, day, week, month, quarter, year")
	f.StringVar(&c.from, "from", "", "start date YYYY-MM-DD")
	f.StringVar(&c.to, "to", "", "end date YYYY-MM-DD")
	f.BoolVar(&c.adjusted, "adjusted", true, "adjust for splits")
	f.StringVar(&c.sort, "sort", "asc", "sort by timestamp: asc or desc")
	c.runFlags.register(f)
}

// query validates enum membership and required flags; ranges are left to the API.
func (c *barsCmd) query() (model.Query, error) {
	var missing []string
	for _, fl := range []struct{ name, value string }{
		{"symbol", c.symbol}, {"timespan", c.timespan}, {"from", c.from}, {"to", c.to},
	} {
		if fl.value == "" {
			missing = append(missing, "-"+fl.name)
		}
	}
	if len(missing) > 0 {
		return model.Query{}, fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	ts, err := model.ParseTimespan(c.timespan)
	if err != nil {
		return model.Query{}, err
	}
	sort, err := model.ParseSort(c.sort)
	if err != nil {
		return model.Query{}, err
	}
	return model.Query{
		Ticker:     c.symbol,
		Multiplier: c.multiplier,
		Timespan:   ts,
		From:       c.from,
		To:         c.to,
		Adjusted:   c.adjusted,
		Sort:       sort,
	}, nil
}

func (c *barsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := c.query()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	return execute(ctx, *c.configPath, c.runFlags, q, f)
}

// demoCmd runs the fixed reference query (AAPL daily bars, 2023-01-09..2023-02-10).
type demoCmd struct {
	configPath *string
	runFlags
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "fetch the reference AAPL query with both auth modes" }
func (*demoCmd) Usage() string {
	return `demo [flags]:
  Fetch AAPL 1/day bars 2023-01-09..2023-02-10 (adjusted, asc) and print them.
`
}

func (c *demoCmd) SetFlags(f *flag.FlagSet) {
	c.runFlags.register(f)
}

func (c *demoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, *c.configPath, c.runFlags, model.ReferenceQuery(), f)
}

// execute wires the app and runs q. Usage errors exit 2, fetch and config errors exit 1.
func execute(ctx context.Context, configPath string, rf runFlags, q model.Query, f *flag.FlagSet) subcommands.ExitStatus {
	modes, err := model.AuthModes(rf.auth)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	var w output.BarsWriter
	if rf.format != "" {
		if w = output.NewBarsWriter(rf.format); w == nil {
			fmt.Fprintf(os.Stderr, "unsupported format %q (use: %s)\n", rf.format, strings.Join(output.Formats, ", "))
			f.Usage()
			return subcommands.ExitUsageError
		}
	}

	a, err := InitializeApp(configPath)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return subcommands.ExitFailure
	}
	defer a.DP.Close()

	slog.SetDefault(a.Logger)
	if w == nil {
		w = a.Out
	}
	slog.Info("using data provider", "provider", a.DP.GetName(), "format", w.Format(), "modes", len(modes))

	opts := crawl.Options{Parallel: rf.parallel, LogLevel: a.Config.LogLevel, LogFormat: a.Config.LogFormat}
	if err := app.RunFetch(ctx, a.DP, w, os.Stdout, q, modes, opts, a.Logger); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("interrupted")
		}
		slog.Error("run failed", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
