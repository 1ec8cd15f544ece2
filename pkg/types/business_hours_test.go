package types

import (
	"testing"
	"time"

	"github.com/Sathishnaik786/Zekto/pkg/enums"
)

func TestBusinessHoursOpenAt(t *testing.T) {
	hours := BusinessHours{
		enums.WeekdayMonday:  {Open: "09:00", Close: "18:00"},
		enums.WeekdaySunday:  {IsClosed: true},
		enums.WeekdayTuesday: {Open: "bogus", Close: "18:00"},
	}

	// 2026-08-31 is a Monday.
	monday := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if !hours.OpenAt(monday) {
		t.Fatalf("expected open during monday window")
	}
	if !hours.OpenAt(monday.Add(6 * time.Hour)) {
		t.Fatalf("expected open at the closing minute")
	}
	if hours.OpenAt(monday.Add(6*time.Hour + time.Minute)) {
		t.Fatalf("expected closed after closing time")
	}

	sunday := time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)
	if hours.OpenAt(sunday) {
		t.Fatalf("expected closed on isClosed day")
	}

	tuesday := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	if hours.OpenAt(tuesday) {
		t.Fatalf("expected malformed window to read as closed")
	}

	wednesday := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	if hours.OpenAt(wednesday) {
		t.Fatalf("expected missing day to read as closed")
	}
}
