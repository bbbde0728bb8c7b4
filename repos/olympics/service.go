package olympics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nvbf/olympic-feed/pkg/metrics"
)

const DefaultBaseURL = "https://apis.codante.io/olympic-games"

// ErrFetchFailed is reported for every failed page request, whatever the page.
var ErrFetchFailed = errors.New("fetch failed")

// FetchError describes the page request that aborted a collection fetch.
type FetchError struct {
	Path string
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: %s page %d: %v", e.Path, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// Options configures the API client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	PerPage   int
	Timeout   time.Duration
	UserAgent string
	Metrics   *metrics.Metrics
}

// Service is a client for the Olympic Games REST API.
type Service struct {
	baseURL   string
	perPage   int
	userAgent string
	client    *http.Client
	metrics   *metrics.Metrics
}

// NewService creates a new API client.
func NewService(opts Options) *Service {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Service{
		baseURL:   baseURL,
		perPage:   opts.PerPage,
		userAgent: opts.UserAgent,
		client:    &http.Client{Timeout: timeout},
		metrics:   opts.Metrics,
	}
}

// FetchEvents returns every event scheduled on the given calendar date (YYYY-MM-DD).
func (s *Service) FetchEvents(ctx context.Context, date string) ([]Event, error) {
	query := url.Values{}
	query.Set("date", date)
	return fetchAll[Event](ctx, s, "/events", query)
}

// FetchAllEvents returns every event of the games regardless of date.
func (s *Service) FetchAllEvents(ctx context.Context) ([]Event, error) {
	return fetchAll[Event](ctx, s, "/events", url.Values{})
}

func (s *Service) FetchCountries(ctx context.Context) ([]Country, error) {
	return fetchAll[Country](ctx, s, "/countries", url.Values{})
}

// fetchAll requests page 1, then pages 2, 3, ... one at a time until the
// page number reaches the last_page the API reports. Any failing page aborts
// the whole fetch and nothing collected so far is returned.
func fetchAll[T any](ctx context.Context, s *Service, path string, query url.Values) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		resp, err := fetchPage[T](ctx, s, path, query, page)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Data...)

		if page >= resp.Meta.LastPage {
			break
		}
	}
	log.Printf("Fetched %d items from %s\n", len(all), path)
	return all, nil
}

func fetchPage[T any](ctx context.Context, s *Service, path string, query url.Values, page int) (*Page[T], error) {
	start := time.Now()
	status := "error"
	defer func() { s.metrics.ObserveRequest(path, status, time.Since(start)) }()

	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	if s.perPage > 0 {
		q.Set("per_page", strconv.Itoa(s.perPage))
	}
	apiURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &FetchError{Path: path, Page: page, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	response, err := s.client.Do(req)
	if err != nil {
		log.Printf("API request failed: %v", err)
		return nil, &FetchError{Path: path, Page: page, Err: err}
	}
	defer response.Body.Close()

	status = strconv.Itoa(response.StatusCode)
	if response.StatusCode/100 != 2 {
		log.Printf("API request for %s page %d returned %d", path, page, response.StatusCode)
		return nil, &FetchError{Path: path, Page: page, Err: fmt.Errorf("http %d", response.StatusCode)}
	}

	var apiResponse Page[T]
	if err := json.NewDecoder(response.Body).Decode(&apiResponse); err != nil {
		log.Printf("Failed to parse API response for %s page %d: %v", path, page, err)
		status = "malformed"
		return nil, &FetchError{Path: path, Page: page, Err: err}
	}
	return &apiResponse, nil
}
