package stats

import (
	"context"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

const topCountries = 5

// Source is the part of the API client the stats need.
type Source interface {
	FetchCountries(ctx context.Context) ([]olympics.Country, error)
	FetchAllEvents(ctx context.Context) ([]olympics.Event, error)
}

type StatsService struct {
	source Source
}

func NewStatsService(source Source) *StatsService {
	return &StatsService{source: source}
}

// Fetch loads countries and events concurrently and waits for both. If
// either fails the whole fetch fails.
func (s *StatsService) Fetch(ctx context.Context) (*Dataset, error) {
	var data Dataset

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		countries, err := s.source.FetchCountries(gCtx)
		if err != nil {
			return xerrors.Errorf("fetching countries: %w", err)
		}
		data.Countries = countries
		return nil
	})

	g.Go(func() error {
		events, err := s.source.FetchAllEvents(gCtx)
		if err != nil {
			return xerrors.Errorf("fetching events: %w", err)
		}
		data.Events = events
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("Could not fetch stats data: %v\n", err)
		return nil, err
	}
	return &data, nil
}

// Summary fetches the dataset and reduces it.
func (s *StatsService) Summary(ctx context.Context) (*Summary, error) {
	data, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	summary := Summarize(data)
	return &summary, nil
}

func Summarize(data *Dataset) Summary {
	return Summary{
		TopCountries:      TopCountries(data.Countries, topCountries),
		MedalsByContinent: MedalsByContinent(data.Countries),
		Distribution:      MedalDistribution(data.Countries),
		Countries:         len(data.Countries),
		Events:            len(data.Events),
		MedalEvents:       MedalEventCount(data.Events),
		Disciplines:       DisciplineCount(data.Events),
	}
}

// TopCountries returns the n countries with the most medals. Ties keep API order.
func TopCountries(countries []olympics.Country, n int) []olympics.Country {
	sorted := make([]olympics.Country, len(countries))
	copy(sorted, countries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalMedals > sorted[j].TotalMedals
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MedalsByContinent sums total medals per continent code, skipping countries
// without a continent or without medals. The result is ordered by code.
func MedalsByContinent(countries []olympics.Country) []ContinentMedals {
	totals := map[string]int{}
	for _, c := range countries {
		if c.Continent == "" || c.TotalMedals <= 0 {
			continue
		}
		totals[c.Continent] += c.TotalMedals
	}

	out := make([]ContinentMedals, 0, len(totals))
	for code, medals := range totals {
		out = append(out, ContinentMedals{Code: code, Name: ContinentName(code), Medals: medals})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}

func MedalDistribution(countries []olympics.Country) Distribution {
	var d Distribution
	for _, c := range countries {
		d.Gold += c.GoldMedals
		d.Silver += c.SilverMedals
		d.Bronze += c.BronzeMedals
	}
	return d
}

var continentNames = map[string]string{
	"AME": "Americas",
	"ASI": "Asia",
	"EUR": "Europe",
	"OCE": "Oceania",
	"AFR": "Africa",
}

// ContinentName expands a continent code, falling back to the code itself.
func ContinentName(code string) string {
	if name, ok := continentNames[code]; ok {
		return name
	}
	return code
}

func MedalEventCount(events []olympics.Event) int {
	n := 0
	for _, e := range events {
		if e.IsMedalEvent {
			n++
		}
	}
	return n
}

func DisciplineCount(events []olympics.Event) int {
	seen := map[string]struct{}{}
	for _, e := range events {
		if e.DisciplineName != "" {
			seen[e.DisciplineName] = struct{}{}
		}
	}
	return len(seen)
}
