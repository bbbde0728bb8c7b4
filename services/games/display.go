package games

import (
	"fmt"
	"time"

	timehelper "github.com/nvbf/olympic-feed/pkg/timeHelper"
)

const scheduleBaseURL = "https://olympics.com/en/paris-2024/schedule/"

// TimeUntilStart renders the time left before start as "Nmin" below one
// hour and "Nh" otherwise. Minutes and hours are each truncated from the raw
// duration, so 119 minutes reads "1h".
func TimeUntilStart(start, now time.Time) string {
	d := start.Sub(now)
	minutes := int64(d / time.Minute)
	hours := int64(d / time.Hour)

	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

// TimeSinceEnd is the "ago" counterpart of TimeUntilStart.
func TimeSinceEnd(end, now time.Time) string {
	d := now.Sub(end)
	minutes := int64(d / time.Minute)
	hours := int64(d / time.Hour)

	if minutes < 60 {
		return fmt.Sprintf("%dmin ago", minutes)
	}
	return fmt.Sprintf("%dh ago", hours)
}

// ScheduleLink points at the official results page for the day of ref.
func ScheduleLink(ref time.Time) string {
	return scheduleBaseURL + timehelper.ScheduleSlug(ref)
}
