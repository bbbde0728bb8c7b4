package medals

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"github.com/nvbf/olympic-feed/pkg/viewstate"
	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

// CountrySource returns the full medal table.
type CountrySource interface {
	FetchCountries(ctx context.Context) ([]olympics.Country, error)
}

type MedalsService struct {
	source CountrySource
}

func NewMedalsService(source CountrySource) *MedalsService {
	return &MedalsService{source: source}
}

// Countries fetches every page of the medal table in API order.
func (s *MedalsService) Countries(ctx context.Context) ([]olympics.Country, error) {
	countries, err := s.source.FetchCountries(ctx)
	if err != nil {
		return nil, xerrors.Errorf("fetching medal table: %w", err)
	}
	return countries, nil
}

// Table computes the visible page of the medal table for view: countries
// whose name contains the search term (case-insensitive), cut to the
// requested page, and that page ordered by rank.
func Table(countries []olympics.Country, view viewstate.TableView) TablePage {
	term := strings.ToLower(strings.TrimSpace(view.Search))

	filtered := make([]olympics.Country, 0, len(countries))
	for _, c := range countries {
		if strings.Contains(strings.ToLower(c.Name), term) {
			filtered = append(filtered, c)
		}
	}

	page, start, end := view.Bounds(len(filtered))
	rows := make([]olympics.Country, end-start)
	copy(rows, filtered[start:end])

	sort.SliceStable(rows, func(i, j int) bool {
		if view.Direction == viewstate.Descending {
			return rows[i].Rank > rows[j].Rank
		}
		return rows[i].Rank < rows[j].Rank
	})

	return TablePage{
		Rows:           rows,
		Page:           page,
		TotalPages:     view.TotalPages(len(filtered)),
		Matching:       len(filtered),
		TotalCountries: len(countries),
		Search:         view.Search,
		Direction:      view.Direction,
	}
}
