package tracker

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/cryptotrack/cryptotracker/internal/core"
	"github.com/cryptotrack/cryptotracker/internal/metrics"
)

const catalogCacheKey = "coins:list"

// MarketAPI is the upstream surface the service depends on. Implemented
// by coingecko.Client; tests substitute stubs.
type MarketAPI interface {
	Name() string
	Coins(ctx context.Context) ([]core.Coin, error)
	MarketRange(ctx context.Context, coinID string, from, to time.Time) (core.PriceSeries, error)
}

// Options configures a Service.
type Options struct {
	CatalogTTL time.Duration
	HistoryTTL time.Duration
	Metrics    *metrics.Registry
	Logger     *zap.Logger
}

// Service composes the upstream client with a TTL memoization cache.
// Repeated identical queries within a TTL window are served from memory,
// so UI refreshes do not repeat network calls.
//
// Fetch errors are returned to the caller rather than swallowed here;
// the presentation layer decides between an error banner and an empty
// render. This keeps notification out of the data path.
type Service struct {
	api   MarketAPI
	cache *gocache.Cache

	catalogTTL time.Duration
	historyTTL time.Duration

	metrics *metrics.Registry
	log     *zap.Logger
}

// New creates a tracker service around the given upstream client.
func New(api MarketAPI, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CatalogTTL <= 0 {
		opts.CatalogTTL = time.Hour
	}
	if opts.HistoryTTL <= 0 {
		opts.HistoryTTL = 10 * time.Minute
	}

	return &Service{
		api:        api,
		cache:      gocache.New(opts.CatalogTTL, 2*opts.CatalogTTL),
		catalogTTL: opts.CatalogTTL,
		historyTTL: opts.HistoryTTL,
		metrics:    opts.Metrics,
		log:        opts.Logger,
	}
}

// Catalog returns the full coin catalog, memoized for the catalog TTL.
// The returned slice preserves upstream order.
func (s *Service) Catalog(ctx context.Context) ([]core.Coin, error) {
	if x, found := s.cache.Get(catalogCacheKey); found {
		s.recordCacheHit("catalog")
		return x.([]core.Coin), nil
	}
	s.recordCacheMiss("catalog")

	start := time.Now()
	coins, err := s.api.Coins(ctx)
	s.recordUpstream("coins_list", err, time.Since(start))
	if err != nil {
		s.log.Warn("catalog fetch failed", zap.Error(err))
		return nil, err
	}

	s.cache.Set(catalogCacheKey, coins, s.catalogTTL)
	if s.metrics != nil {
		s.metrics.SetCatalogSize(len(coins))
	}
	s.log.Debug("catalog fetched", zap.Int("coins", len(coins)))
	return coins, nil
}

// RefreshCatalog drops the memoized catalog and fetches it again.
// Used by the background refresher.
func (s *Service) RefreshCatalog(ctx context.Context) error {
	s.cache.Delete(catalogCacheKey)
	_, err := s.Catalog(ctx)
	return err
}

// CoinName resolves a coin id to its display name via the catalog.
// Returns ErrCoinNotFound when the id is not in the catalog.
func (s *Service) CoinName(ctx context.Context, coinID string) (string, error) {
	coins, err := s.Catalog(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range coins {
		if c.ID == coinID {
			return c.Name, nil
		}
	}
	return "", core.WrapError(core.ErrCoinNotFound, fmt.Errorf("id %q", coinID))
}

// History returns the daily USD price series for a coin over [from, to],
// memoized per (coin, from, to) for the history TTL. An empty series
// with a nil error means the range has no data.
func (s *Service) History(ctx context.Context, coinID string, from, to time.Time) (core.PriceSeries, error) {
	if coinID == "" {
		return nil, core.WrapError(core.ErrCoinNotFound, fmt.Errorf("empty coin id"))
	}
	if from.After(to) {
		return nil, core.WrapError(core.ErrInvalidRange,
			fmt.Errorf("from %d after to %d", from.Unix(), to.Unix()))
	}

	key := historyCacheKey(coinID, from, to)
	if x, found := s.cache.Get(key); found {
		s.recordCacheHit("history")
		return x.(core.PriceSeries), nil
	}
	s.recordCacheMiss("history")

	start := time.Now()
	series, err := s.api.MarketRange(ctx, coinID, from, to)
	s.recordUpstream("market_range", err, time.Since(start))
	if err != nil {
		s.log.Warn("history fetch failed",
			zap.String("coin", coinID),
			zap.Error(err))
		return nil, err
	}

	s.cache.Set(key, series, s.historyTTL)
	s.log.Debug("history fetched",
		zap.String("coin", coinID),
		zap.Int("points", len(series)))
	return series, nil
}

func historyCacheKey(coinID string, from, to time.Time) string {
	return fmt.Sprintf("history:%s:%d:%d", coinID, from.Unix(), to.Unix())
}

func (s *Service) recordCacheHit(key string) {
	if s.metrics != nil {
		s.metrics.RecordCacheHit(key)
	}
}

func (s *Service) recordCacheMiss(key string) {
	if s.metrics != nil {
		s.metrics.RecordCacheMiss(key)
	}
}

func (s *Service) recordUpstream(endpoint string, err error, d time.Duration) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordUpstream(endpoint, status, d.Seconds())
}
