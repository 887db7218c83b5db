package cmd

import (
	"fmt"
	"os"

	"legiscrape-backend/lib/polite"
	"legiscrape-backend/lib/scrapers/illinois"

	"github.com/spf13/cobra"
)

var flagIllinoisSessions []int

func init() {
	illinoisCmd.Flags().IntSliceVar(&flagIllinoisSessions, "session", []int{112}, "ilga session id to scrape (repeatable)")
	rootCmd.AddCommand(illinoisCmd)
}

var illinoisCmd = &cobra.Command{
	Use:   "illinois",
	Short: "Scrapes the Illinois General Assembly's bill status pages.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		client, err := illinois.NewClient(illinois.ClientOptions{
			Limiter: polite.NewLimiter(cfg.Polite()),
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		err = runScrape(
			cmd.Context(),
			cfg,
			illinois.Enumerator{Client: client, Sessions: flagIllinoisSessions},
			&illinois.Processor{
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
