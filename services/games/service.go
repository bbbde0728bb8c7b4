package games

import (
	"context"
	"log"
	"time"

	"golang.org/x/xerrors"

	"github.com/nvbf/olympic-feed/pkg/metrics"
	timehelper "github.com/nvbf/olympic-feed/pkg/timeHelper"
	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

// EventSource returns every event scheduled on a calendar date.
type EventSource interface {
	FetchEvents(ctx context.Context, date string) ([]olympics.Event, error)
}

type GamesService struct {
	source   EventSource
	location *time.Location
	metrics  *metrics.Metrics
	clock    func() time.Time
}

func NewGamesService(source EventSource, location *time.Location, m *metrics.Metrics) *GamesService {
	if location == nil {
		location = time.Local
	}
	return &GamesService{
		source:   source,
		location: location,
		metrics:  m,
		clock:    time.Now,
	}
}

// Now is the wall clock in the service's location. Callers capture it once
// and pass it to Aggregate.
func (s *GamesService) Now() time.Time {
	return s.clock().In(s.location)
}

// Aggregate fetches every event of ref's calendar date and classifies them
// against ref. A failing page aborts the call and no partial feed is returned.
func (s *GamesService) Aggregate(ctx context.Context, ref time.Time) (*Feed, error) {
	date := timehelper.DateString(ref)

	events, err := s.source.FetchEvents(ctx, date)
	if err != nil {
		log.Printf("Could not aggregate feed for %s: %v\n", date, err)
		return nil, xerrors.Errorf("aggregating feed for %s: %w", date, err)
	}

	feed := Classify(events, ref)
	feed.Date = date

	counts := feed.Counts()
	s.metrics.SetFeed(counts.Live, counts.Upcoming, counts.Completed, ref)
	log.Printf("Feed for %s: %d live, %d upcoming, %d completed (%d fetched)\n",
		date, counts.Live, counts.Upcoming, counts.Completed, len(events))

	return &feed, nil
}
