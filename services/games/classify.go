package games

import (
	"sort"
	"time"

	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

// Feed is today's events split into three disjoint buckets.
type Feed struct {
	ReferenceTime time.Time        `json:"referenceTime"`
	Date          string           `json:"date"`
	Live          []olympics.Event `json:"live"`
	Upcoming      []olympics.Event `json:"upcoming"`
	Completed     []olympics.Event `json:"completed"`
}

type Counts struct {
	Live      int `json:"live"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
}

func (f *Feed) Counts() Counts {
	return Counts{
		Live:      len(f.Live),
		Upcoming:  len(f.Upcoming),
		Completed: len(f.Completed),
	}
}

// Classify partitions events against ref. The predicates are checked in
// order live, upcoming, completed so a record lands in at most one bucket
// even when its start is after its end. Events that ended without being
// marked finished are dropped.
func Classify(events []olympics.Event, ref time.Time) Feed {
	feed := Feed{
		ReferenceTime: ref,
		Live:          []olympics.Event{},
		Upcoming:      []olympics.Event{},
		Completed:     []olympics.Event{},
	}

	for _, event := range events {
		switch {
		case isLive(event, ref):
			feed.Live = append(feed.Live, event)
		case isUpcoming(event, ref):
			feed.Upcoming = append(feed.Upcoming, event)
		case isCompleted(event, ref):
			event.Competitors = ValidCompetitors(event)
			feed.Completed = append(feed.Completed, event)
		}
	}

	sort.SliceStable(feed.Upcoming, func(i, j int) bool {
		return feed.Upcoming[i].StartDate.Before(feed.Upcoming[j].StartDate.Time)
	})
	sort.SliceStable(feed.Completed, func(i, j int) bool {
		return feed.Completed[i].EndDate.After(feed.Completed[j].EndDate.Time)
	})

	return feed
}

// isLive reports whether ref falls within [start, end], both ends included.
func isLive(event olympics.Event, ref time.Time) bool {
	return !ref.Before(event.StartDate.Time) && !ref.After(event.EndDate.Time)
}

func isUpcoming(event olympics.Event, ref time.Time) bool {
	return event.StartDate.After(ref)
}

func isCompleted(event olympics.Event, ref time.Time) bool {
	return event.EndDate.Before(ref) && event.Status == olympics.StatusFinished
}

// ValidCompetitors returns a copy of the event's competitors that have both a
// name and a flag. The event itself is left untouched.
func ValidCompetitors(event olympics.Event) []olympics.Competitor {
	valid := make([]olympics.Competitor, 0, len(event.Competitors))
	for _, c := range event.Competitors {
		if c.DisplayReady() {
			valid = append(valid, c)
		}
	}
	return valid
}
