package core

import (
	"strconv"
	"testing"
	"time"
)

func TestCoin_IsValid(t *testing.T) {
	c := Coin{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}
	if !c.IsValid() {
		t.Error("expected valid coin")
	}

	invalid := Coin{Symbol: "btc"}
	if invalid.IsValid() {
		t.Error("expected invalid coin")
	}
}

func TestDayUTC(t *testing.T) {
	tests := []struct {
		ms       int64
		expected string
	}{
		{1700000000000, "2023-11-14"},
		{1700086400000, "2023-11-15"},
		{0, "1970-01-01"},
		// One millisecond before midnight stays on the same day
		{1700092799999, "2023-11-15"},
	}

	for _, tc := range tests {
		got := DayUTC(tc.ms)
		if FormatDate(got) != tc.expected {
			t.Errorf("DayUTC(%d) = %s, want %s", tc.ms, FormatDate(got), tc.expected)
		}
		if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
			t.Errorf("DayUTC(%d) not truncated to midnight: %v", tc.ms, got)
		}
		if got.Location() != time.UTC {
			t.Errorf("DayUTC(%d) not in UTC", tc.ms)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(105.0); got != "105.000000000000" {
		t.Errorf("FormatPrice(105.0) = %s", got)
	}
	if got := FormatPrice(0.000000000001); got != "0.000000000001" {
		t.Errorf("FormatPrice(1e-12) = %s", got)
	}
}

func TestFormatPrice_RoundTrip(t *testing.T) {
	orig := 68123.456789
	parsed, err := strconv.ParseFloat(FormatPrice(orig), 64)
	if err != nil {
		t.Fatalf("parsing formatted price: %v", err)
	}
	if diff := parsed - orig; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("round trip drifted: %v -> %v", orig, parsed)
	}
}
