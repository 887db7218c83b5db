package cmd

import (
	"fmt"
	"os"

	"legiscrape-backend/lib/browser"
	"legiscrape-backend/lib/polite"
	"legiscrape-backend/lib/scrapers/iowa"

	"github.com/spf13/cobra"
)

var (
	flagIowaGAs     []int
	flagIowaBrowser bool
)

func init() {
	iowaCmd.Flags().IntSliceVar(&flagIowaGAs, "ga", []int{90}, "general assembly number to scrape (repeatable)")
	iowaCmd.Flags().BoolVar(&flagIowaBrowser, "browser", false, "read bill histories with a headless browser instead of static html")
	rootCmd.AddCommand(iowaCmd)
}

var iowaCmd = &cobra.Command{
	Use:   "iowa",
	Short: "Scrapes the Iowa legislature's BillBook.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		client, err := iowa.NewClient(iowa.ClientOptions{
			Limiter: polite.NewLimiter(cfg.Polite()),
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		proc := &iowa.Processor{
			Client:   client,
			Keywords: cfg.Keywords,
			TextDir:  cfg.TextDir,
		}
		if flagIowaBrowser {
			b, err := browser.New()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer b.Close()
			proc.History = browser.HistorySource{Browser: b}
		}

		err = runScrape(
			cmd.Context(),
			cfg,
			iowa.Enumerator{Client: client, GAs: flagIowaGAs},
			proc,
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}
