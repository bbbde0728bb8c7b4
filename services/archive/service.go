package archive

import (
	"context"
	"log"
	"time"

	"golang.org/x/xerrors"

	olympics "github.com/nvbf/olympic-feed/repos/olympics"
	resend "github.com/nvbf/olympic-feed/repos/resend"
	snapshots "github.com/nvbf/olympic-feed/repos/snapshots"
	"github.com/nvbf/olympic-feed/services/games"
)

// Feed is the aggregator snapshots and digests are built from.
type Feed interface {
	Now() time.Time
	Aggregate(ctx context.Context, ref time.Time) (*games.Feed, error)
}

type SnapshotStore interface {
	Save(ctx context.Context, snapshot snapshots.FeedSnapshot) error
	Get(ctx context.Context, id string) (*snapshots.FeedSnapshot, error)
}

type Mailer interface {
	SendDigest(ctx context.Context, to string, digest resend.Digest) error
}

type ArchiveService struct {
	feed   Feed
	store  SnapshotStore
	mailer Mailer
	newID  func() string
}

func NewArchiveService(feed Feed, store SnapshotStore, mailer Mailer) *ArchiveService {
	return &ArchiveService{
		feed:   feed,
		store:  store,
		mailer: mailer,
		newID:  snapshots.NewID,
	}
}

// TakeSnapshot aggregates the feed now and stores the result.
func (s *ArchiveService) TakeSnapshot(ctx context.Context, takenBy string) (*snapshots.FeedSnapshot, error) {
	ref := s.feed.Now()
	feed, err := s.feed.Aggregate(ctx, ref)
	if err != nil {
		return nil, err
	}

	snapshot := NewSnapshot(feed, s.newID(), takenBy)
	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, err
	}
	log.Printf("Stored snapshot %s of %s with %d medal events\n", snapshot.ID, snapshot.Date, len(snapshot.MedalEvents))
	return &snapshot, nil
}

func (s *ArchiveService) Snapshot(ctx context.Context, id string) (*snapshots.FeedSnapshot, error) {
	return s.store.Get(ctx, id)
}

// SendDigest mails the completed medal events of today to email and returns
// how many events it contained.
func (s *ArchiveService) SendDigest(ctx context.Context, email string) (int, error) {
	ref := s.feed.Now()
	feed, err := s.feed.Aggregate(ctx, ref)
	if err != nil {
		return 0, err
	}

	digest := NewDigest(feed)
	if err := s.mailer.SendDigest(ctx, email, digest); err != nil {
		return 0, xerrors.Errorf("mailing digest: %w", err)
	}
	return len(digest.Events), nil
}

// NewSnapshot records the feed's counts and its completed medal events.
func NewSnapshot(feed *games.Feed, id, takenBy string) snapshots.FeedSnapshot {
	counts := feed.Counts()
	snapshot := snapshots.FeedSnapshot{
		ID:          id,
		TakenAt:     feed.ReferenceTime.UTC(),
		TakenBy:     takenBy,
		Date:        feed.Date,
		Live:        counts.Live,
		Upcoming:    counts.Upcoming,
		Completed:   counts.Completed,
		MedalEvents: []snapshots.SnapshotEvent{},
	}

	for _, event := range medalEvents(feed) {
		entry := snapshots.SnapshotEvent{
			ID:          string(event.ID),
			Discipline:  event.DisciplineName,
			Event:       event.EventName,
			Venue:       event.VenueName,
			EndDate:     event.EndDate.UTC(),
			Competitors: []snapshots.SnapshotCompetitor{},
		}
		for _, c := range event.Competitors {
			entry.Competitors = append(entry.Competitors, snapshots.SnapshotCompetitor{
				Country: c.CountryID,
				Name:    c.CompetitorName,
				Outcome: value(c.ResultOutcome),
				Mark:    value(c.ResultMark),
			})
		}
		snapshot.MedalEvents = append(snapshot.MedalEvents, entry)
	}
	return snapshot
}

func NewDigest(feed *games.Feed) resend.Digest {
	digest := resend.Digest{Date: feed.Date}
	for _, event := range medalEvents(feed) {
		entry := resend.DigestEvent{
			Discipline: event.DisciplineName,
			Event:      event.EventName,
			Venue:      event.VenueName,
			EndedAgo:   games.TimeSinceEnd(event.EndDate.Time, feed.ReferenceTime),
		}
		for _, c := range event.Competitors {
			entry.Results = append(entry.Results, resend.DigestResult{
				Country: c.CountryID,
				Name:    c.CompetitorName,
				Outcome: value(c.ResultOutcome),
				Mark:    value(c.ResultMark),
			})
		}
		digest.Events = append(digest.Events, entry)
	}
	return digest
}

// medalEvents returns the completed medal events, most recent first.
func medalEvents(feed *games.Feed) []olympics.Event {
	var out []olympics.Event
	for _, event := range feed.Completed {
		if event.IsMedalEvent {
			out = append(out, event)
		}
	}
	return out
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
