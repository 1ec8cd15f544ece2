package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sathishnaik786/Zekto/pkg/enums"
)

// DayHours is one weekday's opening window. Open/Close are "HH:MM" in the
// store's local convention; no timezone math is applied.
type DayHours struct {
	Open     string `json:"open"`
	Close    string `json:"close"`
	IsClosed bool   `json:"isClosed"`
}

// BusinessHours maps weekday to opening window, persisted as JSONB. The
// "currently open" flag is always computed from this document at read time
// and never stored.
type BusinessHours map[enums.Weekday]DayHours

// OpenAt reports whether the store is open at the given instant. Both
// window bounds are inclusive; missing days and malformed windows read
// as closed.
func (b BusinessHours) OpenAt(t time.Time) bool {
	day, ok := b[enums.WeekdayOf(t)]
	if !ok || day.IsClosed {
		return false
	}

	open, okOpen := parseClock(day.Open)
	close, okClose := parseClock(day.Close)
	if !okOpen || !okClose {
		return false
	}

	now := t.Hour()*60 + t.Minute()
	return now >= open && now <= close
}

func parseClock(raw string) (int, bool) {
	parsed, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

// Value marshals the hours into JSON for Postgres.
func (b BusinessHours) Value() (driver.Value, error) {
	if b == nil {
		return "{}", nil
	}
	return json.Marshal(b)
}

// Scan decodes JSONB into the hours map.
func (b *BusinessHours) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}

	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("business hours: unsupported scan type %T", value)
	}

	result := make(BusinessHours)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*b = result
	return nil
}
