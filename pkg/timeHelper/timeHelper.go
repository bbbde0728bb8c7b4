package timehelper

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateString formats the calendar date of t, in t's own location, as 'YYYY-MM-DD'.
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}

// ScheduleSlug formats t as the lowercase 'd-month' path segment used by the
// official schedule pages, e.g. "27-july".
func ScheduleSlug(t time.Time) string {
	return strings.ToLower(t.Format("2-January"))
}

// LoadLocation resolves a timezone name. An empty name or "Local" gives time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
