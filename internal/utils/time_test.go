package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2025-01-10 ")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.January || got.Day() != 10 {
		t.Fatalf("parsed = %v", got)
	}

	if _, err := ParseDate("10-01-2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	in := "2025-01-10"
	parsed, err := ParseDate(in)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if got := FormatDate(parsed); got != in {
		t.Fatalf("FormatDate = %q, want %q", got, in)
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, time.January, 10, 14, 30, 5, 0, time.Local)
	if got := FormatDateTime(ts); got != "2025-01-10 14:30:05" {
		t.Fatalf("FormatDateTime = %q", got)
	}
}
