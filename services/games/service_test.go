package games

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

type fakeSource struct {
	events []olympics.Event
	err    error
	dates  []string
}

func (f *fakeSource) FetchEvents(ctx context.Context, date string) ([]olympics.Event, error) {
	f.dates = append(f.dates, date)
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func TestAggregateUsesReferenceDate(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	source := &fakeSource{events: []olympics.Event{
		event("live", -time.Hour, time.Hour, "Running"),
		event("done", -3*time.Hour, -2*time.Hour, olympics.StatusFinished),
	}}
	svc := NewGamesService(source, paris, nil)

	// 23:30 UTC on the 26th is already the 27th in Paris
	at := time.Date(2024, 7, 26, 23, 30, 0, 0, time.UTC).In(paris)
	feed, err := svc.Aggregate(context.Background(), at)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-07-27"}, source.dates)
	assert.Equal(t, "2024-07-27", feed.Date)
	assert.Equal(t, at, feed.ReferenceTime)
}

func TestAggregatePropagatesFetchFailure(t *testing.T) {
	source := &fakeSource{err: &olympics.FetchError{Path: "/events", Page: 2, Err: errors.New("http 500")}}
	svc := NewGamesService(source, time.UTC, nil)

	feed, err := svc.Aggregate(context.Background(), ref)

	assert.Nil(t, feed)
	assert.ErrorIs(t, err, olympics.ErrFetchFailed)
}

func TestNowUsesServiceLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	svc := NewGamesService(&fakeSource{}, tokyo, nil)
	svc.clock = func() time.Time { return ref }

	assert.Equal(t, tokyo, svc.Now().Location())
	assert.True(t, svc.Now().Equal(ref))
}
