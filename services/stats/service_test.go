package stats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

type fakeSource struct {
	countries    []olympics.Country
	events       []olympics.Event
	countriesErr error
	eventsErr    error

	// both fetches block on this until the other one has started
	started sync.WaitGroup
}

func (f *fakeSource) FetchCountries(ctx context.Context) ([]olympics.Country, error) {
	f.started.Done()
	f.started.Wait()
	return f.countries, f.countriesErr
}

func (f *fakeSource) FetchAllEvents(ctx context.Context) ([]olympics.Event, error) {
	f.started.Done()
	f.started.Wait()
	return f.events, f.eventsErr
}

func newFakeSource() *fakeSource {
	f := &fakeSource{}
	f.started.Add(2)
	return f
}

var countries = []olympics.Country{
	{ID: "USA", Name: "United States", Continent: "AME", GoldMedals: 40, SilverMedals: 44, BronzeMedals: 42, TotalMedals: 126},
	{ID: "CHN", Name: "China", Continent: "ASI", GoldMedals: 40, SilverMedals: 27, BronzeMedals: 24, TotalMedals: 91},
	{ID: "GBR", Name: "Great Britain", Continent: "EUR", GoldMedals: 14, SilverMedals: 22, BronzeMedals: 29, TotalMedals: 65},
	{ID: "FRA", Name: "France", Continent: "EUR", GoldMedals: 16, SilverMedals: 26, BronzeMedals: 22, TotalMedals: 64},
	{ID: "AUS", Name: "Australia", Continent: "OCE", GoldMedals: 18, SilverMedals: 19, BronzeMedals: 16, TotalMedals: 53},
	{ID: "JPN", Name: "Japan", Continent: "ASI", GoldMedals: 20, SilverMedals: 12, BronzeMedals: 13, TotalMedals: 45},
	{ID: "EOR", Name: "Refugee Olympic Team", Continent: "", BronzeMedals: 1, TotalMedals: 1},
	{ID: "ISL", Name: "Iceland", Continent: "EUR"},
}

func TestFetchRunsBothConcurrently(t *testing.T) {
	source := newFakeSource()
	source.countries = countries
	source.events = []olympics.Event{{ID: "1"}, {ID: "2"}}

	done := make(chan struct{})
	var data *Dataset
	var err error
	go func() {
		data, err = NewStatsService(source).Fetch(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fetches did not run concurrently")
	}
	require.NoError(t, err)
	assert.Len(t, data.Countries, len(countries))
	assert.Len(t, data.Events, 2)
}

func TestFetchFailsWhenEitherFails(t *testing.T) {
	failure := &olympics.FetchError{Path: "/events", Page: 4, Err: errors.New("http 503")}

	source := newFakeSource()
	source.countries = countries
	source.eventsErr = failure

	data, err := NewStatsService(source).Fetch(context.Background())

	assert.Nil(t, data)
	assert.ErrorIs(t, err, olympics.ErrFetchFailed)
}

func TestTopCountries(t *testing.T) {
	top := TopCountries(countries, 5)

	require.Len(t, top, 5)
	var ids []string
	for _, c := range top {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"USA", "CHN", "GBR", "FRA", "AUS"}, ids)
	assert.Equal(t, "USA", countries[0].ID)
	assert.Len(t, TopCountries(countries[:2], 5), 2)
}

func TestMedalsByContinent(t *testing.T) {
	assert.Equal(t, []ContinentMedals{
		{Code: "AME", Name: "Americas", Medals: 126},
		{Code: "ASI", Name: "Asia", Medals: 136},
		{Code: "EUR", Name: "Europe", Medals: 129},
		{Code: "OCE", Name: "Oceania", Medals: 53},
	}, MedalsByContinent(countries))
}

func TestMedalDistribution(t *testing.T) {
	assert.Equal(t, Distribution{Gold: 148, Silver: 150, Bronze: 147}, MedalDistribution(countries))
}

func TestContinentName(t *testing.T) {
	assert.Equal(t, "Africa", ContinentName("AFR"))
	assert.Equal(t, "ANT", ContinentName("ANT"))
}

func TestEventCounts(t *testing.T) {
	events := []olympics.Event{
		{DisciplineName: "Athletics", IsMedalEvent: true},
		{DisciplineName: "Athletics"},
		{DisciplineName: "Rowing", IsMedalEvent: true},
		{DisciplineName: ""},
	}

	assert.Equal(t, 2, MedalEventCount(events))
	assert.Equal(t, 2, DisciplineCount(events))
}

type stubStats struct{ err error }

func (s stubStats) Summary(ctx context.Context) (*Summary, error) {
	if s.err != nil {
		return nil, s.err
	}
	summary := Summarize(&Dataset{Countries: countries})
	return &summary, nil
}

func TestSummaryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, c := range []struct {
		err  error
		code int
	}{
		{nil, http.StatusOK},
		{&olympics.FetchError{Path: "/countries", Page: 1, Err: errors.New("x")}, http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	} {
		router := gin.New()
		NewHTTPHandler(HTTPOptions{Service: stubStats{err: c.err}, Router: router.Group("/stats/v1")})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/v1/summary", nil))
		assert.Equal(t, c.code, w.Code)
	}
}
