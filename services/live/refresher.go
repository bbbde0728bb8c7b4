package live

import (
	"context"
	"log"
	"time"

	"github.com/nvbf/olympic-feed/pkg/viewstate"
	"github.com/nvbf/olympic-feed/services/games"
)

const (
	MessageFeedUpdated = "FEED_UPDATED"
	MessageFeedFailed  = "FEED_FAILED"

	DefaultInterval = time.Minute

	feedFailed = "Failed to fetch games. Please try again later."
)

// Feed is the aggregator the refresher polls.
type Feed interface {
	Now() time.Time
	Aggregate(ctx context.Context, ref time.Time) (*games.Feed, error)
}

// Refresher rebuilds the feed on a fixed interval and pushes every result
// to the hub. Nothing carries over from one refresh to the next.
type Refresher struct {
	feed     Feed
	hub      *Hub
	interval time.Duration
}

func NewRefresher(feed Feed, hub *Hub, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{feed: feed, hub: hub, interval: interval}
}

// Run refreshes once immediately and then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("Refreshing live feed every %s\n", r.interval)
	for {
		r.Refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Refresh aggregates the feed at the current time and broadcasts the outcome.
func (r *Refresher) Refresh(ctx context.Context) Message {
	msg := r.build(ctx)
	if err := r.hub.Broadcast(ctx, msg); err != nil {
		log.Printf("Could not broadcast %s: %v\n", msg.Type, err)
	}
	return msg
}

func (r *Refresher) build(ctx context.Context) Message {
	feed, err := r.feed.Aggregate(ctx, r.feed.Now())
	if err != nil {
		log.Printf("Live refresh failed: %v\n", err)
		return Message{Type: MessageFeedFailed, Error: feedFailed}
	}

	longest := max(len(feed.Upcoming), len(feed.Completed))
	reveal := viewstate.NewReveal(games.RevealStep).All(longest)
	return Message{Type: MessageFeedUpdated, Payload: games.NewFeedResponse(feed, reveal)}
}
