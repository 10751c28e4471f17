// Package api contains the JSON API handlers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cryptotrack/cryptotracker/internal/core"
)

// Tracker is the data surface the handlers depend on.
type Tracker interface {
	Catalog(ctx context.Context) ([]core.Coin, error)
	CoinName(ctx context.Context, coinID string) (string, error)
	History(ctx context.Context, coinID string, from, to time.Time) (core.PriceSeries, error)
}

// Handler serves the JSON API.
type Handler struct {
	tracker Tracker
	log     *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(tracker Tracker, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{tracker: tracker, log: log}
}

// defaultRangeDays is used when from/to are absent, mirroring the
// dashboard's initial one-year view.
const defaultRangeDays = 365

// parseRange reads from/to epoch-second query parameters. Missing values
// default to the trailing year. from > to is rejected here so invalid
// selections never reach the upstream.
func parseRange(r *http.Request) (from, to time.Time, err error) {
	now := time.Now().UTC()
	from = now.AddDate(0, 0, -defaultRangeDays)
	to = now

	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		sec, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			return from, to, core.WrapError(core.ErrInvalidRange,
				fmt.Errorf("from: %w", perr))
		}
		from = time.Unix(sec, 0).UTC()
	}
	if v := q.Get("to"); v != "" {
		sec, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			return from, to, core.WrapError(core.ErrInvalidRange,
				fmt.Errorf("to: %w", perr))
		}
		to = time.Unix(sec, 0).UTC()
	}

	if from.After(to) {
		return from, to, core.WrapError(core.ErrInvalidRange,
			fmt.Errorf("from %d after to %d", from.Unix(), to.Unix()))
	}
	return from, to, nil
}

// PricePointView is the wire shape of one daily sample.
type PricePointView struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// SeriesView is the wire shape of a price series.
type SeriesView struct {
	CoinID string           `json:"coin_id"`
	From   int64            `json:"from"`
	To     int64            `json:"to"`
	Points []PricePointView `json:"points"`
	Count  int              `json:"count"`
}

// SummaryView is the wire shape of range statistics. Display fields
// carry the fixed 12-decimal rendering.
type SummaryView struct {
	MaxPrice        float64 `json:"max_price"`
	MaxPriceDisplay string  `json:"max_price_display"`
	MaxDate         string  `json:"max_date"`
	MinPrice        float64 `json:"min_price"`
	MinPriceDisplay string  `json:"min_price_display"`
	MinDate         string  `json:"min_date"`
}

func newSeriesView(coinID string, from, to time.Time, series core.PriceSeries) SeriesView {
	points := make([]PricePointView, 0, len(series))
	for _, p := range series {
		points = append(points, PricePointView{
			Date:  core.FormatDate(p.Date),
			Price: p.Price,
		})
	}
	return SeriesView{
		CoinID: coinID,
		From:   from.Unix(),
		To:     to.Unix(),
		Points: points,
		Count:  len(points),
	}
}

func newSummaryView(sum core.Summary) SummaryView {
	return SummaryView{
		MaxPrice:        sum.MaxPrice,
		MaxPriceDisplay: core.FormatPrice(sum.MaxPrice),
		MaxDate:         core.FormatDate(sum.MaxDate),
		MinPrice:        sum.MinPrice,
		MinPriceDisplay: core.FormatPrice(sum.MinPrice),
		MinDate:         core.FormatDate(sum.MinDate),
	}
}
