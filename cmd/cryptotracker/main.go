package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "cryptotracker",
	Short: "CryptoTracker - cryptocurrency price dashboard",
	Long: `CryptoTracker serves a dashboard of historical cryptocurrency prices.
It fetches catalog and market data from CoinGecko, normalizes prices to
UTC days, and exposes both a web UI and a JSON API.`,
}

func init() {
	// Local .env is optional; real deployments set the environment directly
	godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
