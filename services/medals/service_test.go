package medals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvbf/olympic-feed/pkg/viewstate"
	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

type fakeSource struct {
	countries []olympics.Country
	err       error
}

func (f fakeSource) FetchCountries(ctx context.Context) ([]olympics.Country, error) {
	return f.countries, f.err
}

func table(n int) []olympics.Country {
	var countries []olympics.Country
	for i := 1; i <= n; i++ {
		countries = append(countries, olympics.Country{
			ID:   fmt.Sprintf("C%02d", i),
			Name: fmt.Sprintf("Country %02d", i),
			Rank: i,
		})
	}
	return countries
}

func rowIDs(page TablePage) []string {
	var out []string
	for _, r := range page.Rows {
		out = append(out, r.ID)
	}
	return out
}

func TestTablePaging(t *testing.T) {
	countries := table(45)

	first := Table(countries, viewstate.NewTableView())
	assert.Len(t, first.Rows, 20)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 45, first.TotalCountries)

	last := Table(countries, viewstate.NewTableView().WithPage(3))
	assert.Equal(t, []string{"C41", "C42", "C43", "C44", "C45"}, rowIDs(last))
}

func TestTableSearchIsCaseInsensitive(t *testing.T) {
	countries := []olympics.Country{
		{ID: "NOR", Name: "Norway", Rank: 18},
		{ID: "KOR", Name: "Republic of Korea", Rank: 8},
		{ID: "PRK", Name: "DPR Korea", Rank: 68},
		{ID: "USA", Name: "United States", Rank: 1},
	}

	page := Table(countries, viewstate.NewTableView().WithSearch("KOREA"))

	assert.Equal(t, []string{"KOR", "PRK"}, rowIDs(page))
	assert.Equal(t, 2, page.Matching)
	assert.Equal(t, 4, page.TotalCountries)
}

func TestTableSortsPageByRank(t *testing.T) {
	countries := []olympics.Country{
		{ID: "B", Name: "B", Rank: 2},
		{ID: "C", Name: "C", Rank: 3},
		{ID: "A", Name: "A", Rank: 1},
	}

	asc := Table(countries, viewstate.NewTableView())
	desc := Table(countries, viewstate.NewTableView().Toggle())

	assert.Equal(t, []string{"A", "B", "C"}, rowIDs(asc))
	assert.Equal(t, []string{"C", "B", "A"}, rowIDs(desc))
	// input order untouched
	assert.Equal(t, "B", countries[0].ID)
}

func TestTableNoMatches(t *testing.T) {
	page := Table(table(5), viewstate.NewTableView().WithSearch("atlantis"))

	assert.Empty(t, page.Rows)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.Page)
}

func TestCountriesWrapsFetchFailure(t *testing.T) {
	svc := NewMedalsService(fakeSource{err: &olympics.FetchError{Path: "/countries", Page: 3, Err: errors.New("eof")}})

	_, err := svc.Countries(context.Background())
	assert.ErrorIs(t, err, olympics.ErrFetchFailed)
}

func TestTableHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHTTPHandler(HTTPOptions{
		Service: NewMedalsService(fakeSource{countries: table(25)}),
		Router:  router.Group("/medals/v1"),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/medals/v1/table?page=2&sort=desc", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var page TablePage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, []string{"C25", "C24", "C23", "C22", "C21"}, rowIDs(page))
	assert.Equal(t, viewstate.Descending, page.Direction)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/medals/v1/table?page=two", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTableHandlerFetchFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHTTPHandler(HTTPOptions{
		Service: NewMedalsService(fakeSource{err: &olympics.FetchError{Path: "/countries", Page: 1, Err: errors.New("timeout")}}),
		Router:  router.Group("/medals/v1"),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/medals/v1/countries", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
