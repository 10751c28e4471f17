package tracker

import (
	"github.com/cryptotrack/cryptotracker/internal/core"
)

// Summarize finds the extreme prices of a series. The second return is
// false for an empty series; callers must render the "no data" state
// instead.
//
// Ties keep the first occurrence in series order, for both extremes.
func Summarize(series core.PriceSeries) (core.Summary, bool) {
	if len(series) == 0 {
		return core.Summary{}, false
	}

	sum := core.Summary{
		MaxPrice: series[0].Price,
		MaxDate:  series[0].Date,
		MinPrice: series[0].Price,
		MinDate:  series[0].Date,
	}

	for _, p := range series[1:] {
		if p.Price > sum.MaxPrice {
			sum.MaxPrice = p.Price
			sum.MaxDate = p.Date
		}
		if p.Price < sum.MinPrice {
			sum.MinPrice = p.Price
			sum.MinDate = p.Date
		}
	}

	return sum, true
}
