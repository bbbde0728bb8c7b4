package games

import (
	"time"

	"github.com/nvbf/olympic-feed/pkg/viewstate"
	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

// EventView is an event with its display labels resolved against the
// feed's reference time.
type EventView struct {
	olympics.Event
	StartsIn string `json:"startsIn,omitempty"`
	EndedAgo string `json:"endedAgo,omitempty"`
}

type Section struct {
	Events  []EventView `json:"events"`
	Total   int         `json:"total"`
	Visible int         `json:"visible"`
	HasMore bool        `json:"hasMore"`
	HasLess bool        `json:"hasLess"`
}

type FeedResponse struct {
	Date          string  `json:"date"`
	ReferenceTime string  `json:"referenceTime"`
	ScheduleLink  string  `json:"scheduleLink"`
	Counts        Counts  `json:"counts"`
	Live          Section `json:"live"`
	Upcoming      Section `json:"upcoming"`
	Completed     Section `json:"completed"`
}

type bucket int

const (
	bucketLive bucket = iota
	bucketUpcoming
	bucketCompleted
)

func newSection(events []olympics.Event, kind bucket, ref time.Time, reveal viewstate.Reveal) Section {
	visible := viewstate.Window(events, reveal)
	views := make([]EventView, 0, len(visible))
	for _, event := range visible {
		view := EventView{Event: event}
		switch kind {
		case bucketUpcoming:
			view.StartsIn = TimeUntilStart(event.StartDate.Time, ref)
		case bucketCompleted:
			view.EndedAgo = TimeSinceEnd(event.EndDate.Time, ref)
		}
		views = append(views, view)
	}
	return Section{
		Events:  views,
		Total:   len(events),
		Visible: len(views),
		HasMore: reveal.HasMore(len(events)),
		HasLess: reveal.HasLess(),
	}
}

// NewFeedResponse renders the feed with live events in full and the
// upcoming and completed lists cut to the given reveal state.
func NewFeedResponse(feed *Feed, reveal viewstate.Reveal) FeedResponse {
	ref := feed.ReferenceTime
	return FeedResponse{
		Date:          feed.Date,
		ReferenceTime: ref.Format(time.RFC3339),
		ScheduleLink:  ScheduleLink(ref),
		Counts:        feed.Counts(),
		Live:          newSection(feed.Live, bucketLive, ref, reveal.All(len(feed.Live))),
		Upcoming:      newSection(feed.Upcoming, bucketUpcoming, ref, reveal),
		Completed:     newSection(feed.Completed, bucketCompleted, ref, reveal),
	}
}
