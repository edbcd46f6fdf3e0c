package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatRupee(t *testing.T) {
	cases := map[string]string{
		"0":         "Rs. 0.00",
		"999.5":     "Rs. 999.50",
		"1234":      "Rs. 1,234.00",
		"123456.7":  "Rs. 1,23,456.70",
		"1234567":   "Rs. 12,34,567.00",
		"-25000.25": "-Rs. 25,000.25",
	}
	for in, want := range cases {
		if got := FormatRupee(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatRupee(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	if got, err := NormalizeClock("09:30"); err != nil || got != "09:30:00" {
		t.Fatalf("got %q %v", got, err)
	}
	if got, err := NormalizeClock("23:59:10"); err != nil || got != "23:59:10" {
		t.Fatalf("got %q %v", got, err)
	}
	if _, err := NormalizeClock("9.30am"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTodayUsesClock(t *testing.T) {
	orig := Now
	defer func() { Now = orig }()
	Now = func() time.Time { return time.Date(2026, 3, 4, 17, 45, 0, 0, time.Local) }

	if got := FormatDate(Today()); got != "2026-03-04" {
		t.Fatalf("unexpected today %s", got)
	}
}

func TestSplitListAndFilename(t *testing.T) {
	got := SplitList("AC, GPS;; Music System\n")
	if len(got) != 3 || got[2] != "Music System" {
		t.Fatalf("unexpected list %v", got)
	}
	if SafeFilenamePart("BK 12/34") != "BK_1234" {
		t.Fatalf("unexpected filename %q", SafeFilenamePart("BK 12/34"))
	}
}
