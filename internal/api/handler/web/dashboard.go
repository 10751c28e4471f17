package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cryptotrack/cryptotracker/internal/core"
	"github.com/cryptotrack/cryptotracker/internal/tracker"
)

// Notice levels steer the banner styling in the template.
const (
	noticeInfo  = "info"
	noticeError = "error"
)

// SummaryCard holds the formatted extreme-price metrics.
type SummaryCard struct {
	MaxPrice string
	MaxDate  string
	MinPrice string
	MinDate  string
}

// DashboardData holds data for the dashboard template
type DashboardData struct {
	Title        string
	Coins        []core.Coin
	CoinCount    int
	SelectedID   string
	SelectedName string
	From         string
	To           string

	Notice      string
	NoticeLevel string

	HasData     bool
	ChartLabels template.JS
	ChartPrices template.JS
	Summary     *SummaryCard
}

// Dashboard renders the dashboard page. Fetch failures never fail the
// page: they downgrade to an empty chart plus a notice banner.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	now := time.Now().UTC()
	data := DashboardData{
		Title: "CryptoTracker",
		From:  q.Get("from"),
		To:    q.Get("to"),
	}
	if data.From == "" {
		data.From = core.FormatDate(now.AddDate(0, 0, -365))
	}
	if data.To == "" {
		data.To = core.FormatDate(now)
	}

	coins, err := h.tracker.Catalog(ctx)
	if err != nil {
		h.log.Warn("dashboard catalog fetch failed", zap.Error(err))
		data.Notice = "Error fetching the coins list."
		data.NoticeLevel = noticeError
		h.render(w, "dashboard.html", data)
		return
	}
	data.Coins = coins
	data.CoinCount = len(coins)

	data.SelectedID = q.Get("coin")
	if data.SelectedID == "" && len(coins) > 0 {
		data.SelectedID = coins[0].ID
	}
	for _, c := range coins {
		if c.ID == data.SelectedID {
			data.SelectedName = c.Name
			break
		}
	}

	from, errFrom := time.ParseInLocation("2006-01-02", data.From, time.UTC)
	to, errTo := time.ParseInLocation("2006-01-02", data.To, time.UTC)
	if data.SelectedID == "" || errFrom != nil || errTo != nil || from.After(to) {
		data.Notice = "Please select a cryptocurrency and a valid date range where the start date is not after the end date."
		data.NoticeLevel = noticeInfo
		h.render(w, "dashboard.html", data)
		return
	}

	// Query the full end day, matching the date-input granularity
	toEnd := to.Add(24*time.Hour - time.Second)

	series, err := h.tracker.History(ctx, data.SelectedID, from, toEnd)
	if err != nil {
		h.log.Warn("dashboard history fetch failed",
			zap.String("coin", data.SelectedID),
			zap.Error(err))
		data.Notice = "Error fetching the historical data for " + data.SelectedID + "."
		data.NoticeLevel = noticeError
		h.render(w, "dashboard.html", data)
		return
	}

	if len(series) == 0 {
		data.Notice = "No data available for the selected cryptocurrency and date range."
		data.NoticeLevel = noticeError
		h.render(w, "dashboard.html", data)
		return
	}

	labels := make([]string, 0, len(series))
	prices := make([]float64, 0, len(series))
	for _, p := range series {
		labels = append(labels, core.FormatDate(p.Date))
		prices = append(prices, p.Price)
	}

	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	pricesJSON, err := json.Marshal(prices)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sum, _ := tracker.Summarize(series)

	data.HasData = true
	data.ChartLabels = template.JS(labelsJSON)
	data.ChartPrices = template.JS(pricesJSON)
	data.Summary = &SummaryCard{
		MaxPrice: core.FormatPrice(sum.MaxPrice),
		MaxDate:  core.FormatDate(sum.MaxDate),
		MinPrice: core.FormatPrice(sum.MinPrice),
		MinDate:  core.FormatDate(sum.MinDate),
	}

	h.render(w, "dashboard.html", data)
}
