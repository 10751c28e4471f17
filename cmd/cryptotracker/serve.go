package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cryptotrack/cryptotracker/internal/api"
	"github.com/cryptotrack/cryptotracker/internal/coingecko"
	"github.com/cryptotrack/cryptotracker/internal/config"
	"github.com/cryptotrack/cryptotracker/internal/insight"
	"github.com/cryptotrack/cryptotracker/internal/insight/factory"
	"github.com/cryptotrack/cryptotracker/internal/logger"
	"github.com/cryptotrack/cryptotracker/internal/metrics"
	"github.com/cryptotrack/cryptotracker/internal/storage/archive"
	"github.com/cryptotrack/cryptotracker/internal/tracker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CryptoTracker server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
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

	reg := metrics.NewRegistry()

	svc := tracker.New(client, tracker.Options{
		CatalogTTL: cfg.Cache.CatalogTTL,
		HistoryTTL: cfg.Cache.HistoryTTL,
		Metrics:    reg,
		Logger:     log,
	})

	if cfg.Refresh.Enabled {
		refresher, err := tracker.NewRefresher(svc, cfg.Refresh.Interval, log)
		if err != nil {
			return fmt.Errorf("creating catalog refresher: %w", err)
		}
		refresher.Start()
		defer refresher.Stop()
	}

	store, err := buildArchive(cfg.Archive)
	if err != nil {
		return fmt.Errorf("creating archive storage: %w", err)
	}

	var provider insight.Provider
	if cfg.Insight.Provider != "" {
		provider, err = factory.New(cfg.Insight)
		if err != nil {
			return fmt.Errorf("creating insight provider: %w", err)
		}
		log.Info("insight provider enabled", zap.String("provider", provider.Name()))
	}

	log.Info("starting CryptoTracker server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	server, err := api.NewServer(api.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		APIKey:         cfg.Server.APIKey,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		ArchiveBackend: store.Name(),
	}, api.Dependencies{
		Tracker: svc,
		Insight: provider,
		Archive: store,
		Metrics: reg,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down CryptoTracker server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func buildArchive(cfg config.ArchiveConfig) (archive.Storage, error) {
	switch cfg.Type {
	case "", "localfs":
		return archive.NewLocalFS(cfg.Path)
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}
