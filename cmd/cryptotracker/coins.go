package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cryptotrack/cryptotracker/internal/coingecko"
	"github.com/cryptotrack/cryptotracker/internal/logger"
)

var coinsLimit int

var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "List tracked cryptocurrencies",
	Long:  "Fetch the coin catalog from CoinGecko and print it as a table",
	RunE:  runCoins,
}

func init() {
	coinsCmd.Flags().IntVar(&coinsLimit, "limit", 50, "Maximum number of coins to print (0 for all)")
	rootCmd.AddCommand(coinsCmd)
}

func runCoins(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	client := coingecko.New(cfg.CoinGecko.APIKey,
		coingecko.WithBaseURL(cfg.CoinGecko.BaseURL),
		coingecko.WithTimeout(cfg.CoinGecko.Timeout),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coins, err := client.Coins(ctx)
	if err != nil {
		return fmt.Errorf("fetching coin catalog: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYMBOL\tNAME")
	for i, c := range coins {
		if coinsLimit > 0 && i >= coinsLimit {
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Symbol, c.Name)
	}
	w.Flush()

	fmt.Printf("\n%d coins total\n", len(coins))

	return nil
}
