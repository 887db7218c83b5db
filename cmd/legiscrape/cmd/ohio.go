package cmd

import (
	"fmt"
	"os"

	"legiscrape-backend/lib/polite"
	"legiscrape-backend/lib/scrapers/ohio"

	"github.com/spf13/cobra"
)

var flagOhioAssemblies []string

func init() {
	ohioCmd.Flags().StringSliceVar(&flagOhioAssemblies, "assembly", []string{"135"}, "general assembly number to scrape (repeatable)")
	rootCmd.AddCommand(ohioCmd)
}

var ohioCmd = &cobra.Command{
	Use:   "ohio",
	Short: "Scrapes the Ohio legislature's bill pages.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		client, err := ohio.NewClient(ohio.ClientOptions{
			Limiter: polite.NewLimiter(cfg.Polite()),
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		err = runScrape(
			cmd.Context(),
			cfg,
			ohio.Enumerator{Client: client, Assemblies: flagOhioAssemblies},
			&ohio.Processor{
				Client:   client,
				Keywords: cfg.Keywords,
				TextDir:  cfg.TextDir,
			},
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}
