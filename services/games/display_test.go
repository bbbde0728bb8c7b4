package games

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeUntilStart(t *testing.T) {
	now := time.Date(2024, 7, 27, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		in   time.Duration
		want string
	}{
		{59 * time.Minute, "59min"},
		{59*time.Minute + 59*time.Second, "59min"},
		{60 * time.Minute, "1h"},
		{119 * time.Minute, "1h"},
		{125 * time.Minute, "2h"},
		{0, "0min"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TimeUntilStart(now.Add(c.in), now), c.in.String())
	}
}

func TestTimeSinceEnd(t *testing.T) {
	now := time.Date(2024, 7, 27, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Minute, "30min ago"},
		{3*time.Hour + 10*time.Minute, "3h ago"},
		{61 * time.Minute, "1h ago"},
		{30 * time.Second, "0min ago"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TimeSinceEnd(now.Add(-c.in), now), c.in.String())
	}
}

func TestScheduleLink(t *testing.T) {
	assert.Equal(t,
		"https://olympics.com/en/paris-2024/schedule/3-august",
		ScheduleLink(time.Date(2024, 8, 3, 18, 0, 0, 0, time.UTC)))
}
