package core

import (
	"strconv"
	"time"
)

// Coin is the minimal identity record for a tradable asset, as returned
// by the catalog endpoint. Catalog order is preserved end to end.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// IsValid checks if the coin has required fields
func (c Coin) IsValid() bool {
	return c.ID != "" && c.Name != ""
}

// PricePoint is a single daily price sample. Date is midnight UTC:
// upstream millisecond timestamps are truncated to the UTC calendar day.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceSeries is an ordered sequence of price samples, ascending by date
// as delivered by the upstream API. An empty series is the valid
// "no data" value, not an error.
type PriceSeries []PricePoint

// Summary holds the extreme prices of a series and when they occurred.
type Summary struct {
	MaxPrice float64   `json:"max_price"`
	MaxDate  time.Time `json:"max_date"`
	MinPrice float64   `json:"min_price"`
	MinDate  time.Time `json:"min_date"`
}

// DayUTC truncates a millisecond epoch timestamp to its UTC calendar day.
func DayUTC(ms int64) time.Time {
	t := time.UnixMilli(ms).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatPrice renders a price with fixed 12-decimal display precision.
// This is a display contract only; storage stays float64.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 12, 64)
}

// FormatDate renders a point's date as an ISO calendar day.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
