package domain

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar day in the deployment's canonical location, formatted
// as YYYY-MM-DD. Days compare correctly as strings.
type Day string

func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}

	return Day(t.In(loc).Format(dayLayout))
}

func ParseDay(raw string) (Day, error) {
	parsed, err := time.Parse(dayLayout, raw)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", raw, err)
	}

	return Day(parsed.Format(dayLayout)), nil
}

func (d Day) AddDays(n int) Day {
	parsed, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return d
	}

	return Day(parsed.AddDate(0, 0, n).Format(dayLayout))
}

func (d Day) String() string {
	return string(d)
}

// CompactCount renders large counters as 1.2k / 3.4M.
func CompactCount(v int64) string {
	return compactNumber(v)
}

func compactNumber(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%d", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}
