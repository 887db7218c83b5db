package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"legiscrape-backend/lib/configuration"
	"legiscrape-backend/lib/export"
	"legiscrape-backend/lib/pipeline"
	"legiscrape-backend/lib/polite"
	"legiscrape-backend/lib/runstore"
	"legiscrape-backend/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// ScrapeConfig holds the settings shared by every state scraper. It is
// read from scrape.json5 with an optional scrape.json5.local overlay and
// can be overridden piecemeal by flags.
type ScrapeConfig struct {
	Keywords   []string `json:"keywords"`
	Output     string   `json:"output"`
	TextDir    string   `json:"text_dir"`
	StateDb    string   `json:"state_db"`
	IntervalMs int      `json:"interval_ms"`
	JitterMs   int      `json:"jitter_ms"`
	PauseEvery int      `json:"pause_every"`
	PauseForMs int      `json:"pause_for_ms"`
}

var defaultKeywords = []string{
	"immigration",
	"immigrant",
	"citizenship",
	"alien",
	"migrant",
	"undocumented",
	"refugee",
	"visa",
	"naturalization",
	"deportation",
}

var (
	flagVerbose  bool
	flagOutput   string
	flagTextDir  string
	flagStateDb  string
	flagKeywords []string
	flagFresh    bool
)

var rootCmd = &cobra.Command{
	Use:   "legiscrape",
	Short: "legiscrape scrapes state legislature websites for bills matching a keyword list.",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "path of the output csv")
	rootCmd.PersistentFlags().StringVar(&flagTextDir, "text-dir", "", "directory to save matched bill text under")
	rootCmd.PersistentFlags().StringVar(&flagStateDb, "state-db", "", "path of the resume database")
	rootCmd.PersistentFlags().StringSliceVarP(&flagKeywords, "keyword", "k", nil, "keyword to match bill text against (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&flagFresh, "fresh", false, "ignore the resume database and rescrape every bill")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() ScrapeConfig {
	cfg, err := configuration.Read[ScrapeConfig]("scrape.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if flagOutput != "" {
		cfg.Output = flagOutput
	}
	if flagTextDir != "" {
		cfg.TextDir = flagTextDir
	}
	if flagStateDb != "" {
		cfg.StateDb = flagStateDb
	}
	if len(flagKeywords) > 0 {
		cfg.Keywords = flagKeywords
	}

	if cfg.Output == "" {
		cfg.Output = "bills.csv"
	}
	if cfg.TextDir == "" {
		cfg.TextDir = "bill_text"
	}
	if cfg.StateDb == "" {
		cfg.StateDb = "legiscrape.db"
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = defaultKeywords
	}
	return cfg
}

func (c ScrapeConfig) Polite() polite.Config {
	p := polite.DefaultConfig()
	if c.IntervalMs > 0 {
		p.Interval = time.Duration(c.IntervalMs) * time.Millisecond
	}
	if c.JitterMs > 0 {
		p.Jitter = time.Duration(c.JitterMs) * time.Millisecond
	}
	if c.PauseEvery > 0 {
		p.PauseEvery = c.PauseEvery
	}
	if c.PauseForMs > 0 {
		p.PauseFor = time.Duration(c.PauseForMs) * time.Millisecond
	}
	return p
}

// runScrape drives a state scraper end to end: enumerate, process,
// write the csv and print a summary table.
func runScrape(ctx context.Context, cfg ScrapeConfig, enum pipeline.Enumerator, proc pipeline.Processor) error {
	telemetry.InitSlog(flagVerbose)

	tel, err := telemetry.SetupFromEnv(ctx, "legiscrape")
	if err != nil {
		slog.Warn("telemetry disabled", "err", err)
	} else {
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}

	var store *runstore.Store
	if !flagFresh {
		store, err = runstore.Open(cfg.StateDb)
		if err != nil {
			return fmt.Errorf("open resume database: %w", err)
		}
		defer store.Close()
	}

	runner := pipeline.Runner{Store: store}
	rows, summary, err := runner.Run(ctx, enum, proc)
	if err != nil {
		return err
	}

	if err := export.WriteCSV(cfg.Output, rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	slog.Info("wrote output", "path", cfg.Output, "rows", len(rows))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Total", "Matched", "Skipped", "Failed"})
	t.AppendRow(table.Row{summary.Total, summary.Matched, summary.Skipped, summary.Failed})
	t.SetStyle(table.StyleRounded)
	t.Render()

	return nil
}
