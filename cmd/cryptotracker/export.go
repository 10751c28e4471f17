package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cryptotrack/cryptotracker/internal/coingecko"
	"github.com/cryptotrack/cryptotracker/internal/logger"
	"github.com/cryptotrack/cryptotracker/internal/storage/archive"
)

var (
	exportCoin string
	exportFrom string
	exportTo   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a price history snapshot",
	Long:  "Fetch the daily price history for a coin and write it to the configured archive backend as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportCoin, "coin", "", "Coin ID, e.g. bitcoin (required)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Start date YYYY-MM-DD (required)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "End date YYYY-MM-DD (required)")

	exportCmd.MarkFlagRequired("coin")
	exportCmd.MarkFlagRequired("from")
	exportCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	fromDate, err := time.ParseInLocation("2006-01-02", exportFrom, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid from date format (expected YYYY-MM-DD): %w", err)
	}
	toDate, err := time.ParseInLocation("2006-01-02", exportTo, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid to date format (expected YYYY-MM-DD): %w", err)
	}
	if toDate.Before(fromDate) {
		return fmt.Errorf("end date must be after start date")
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	client := coingecko.New(cfg.CoinGecko.APIKey,
		coingecko.WithBaseURL(cfg.CoinGecko.BaseURL),
		coingecko.WithTimeout(cfg.CoinGecko.Timeout),
	)

	store, err := buildArchive(cfg.Archive)
	if err != nil {
		return fmt.Errorf("creating archive storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Include the full end day
	series, err := client.MarketRange(ctx, exportCoin, fromDate, toDate.Add(24*time.Hour-time.Second))
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}
	if len(series) == 0 {
		return fmt.Errorf("no data for %s between %s and %s", exportCoin, exportFrom, exportTo)
	}

	path, err := archive.WriteSnapshot(ctx, store, exportCoin, fromDate, toDate, series)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	fmt.Printf("Exported %d points for %s to %s (%s)\n", len(series), exportCoin, path, store.Name())

	return nil
}
