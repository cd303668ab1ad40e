package limitless

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Limitless throttles aggressive clients; one request every 4 seconds keeps
// us under the limit. Burst 2 lets a tournament's standings and pairings
// requests go out together before the pacing kicks in.
const (
	requestInterval = 4 * time.Second
	requestBurst    = 2
)

// APIError is returned for non-2xx responses from the Limitless API.
type APIError struct {
	StatusCode int
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("limitless api: status %d for %s", e.StatusCode, e.Path)
}

// APIClient is the HTTP client for the Limitless tournament API.
type APIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	BaseURL    string
}

// Option configures the client.
type Option func(*APIClient)

// WithRateInterval overrides the pacing between requests.
func WithRateInterval(d time.Duration) Option {
	return func(c *APIClient) {
		c.limiter = rate.NewLimiter(rate.Every(d), requestBurst)
	}
}

// NewClient creates a new Limitless client.
func NewClient(baseURL string, opts ...Option) LimitlessClient {
	c := &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(requestInterval), requestBurst),
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure APIClient implements the LimitlessClient interface.
var _ LimitlessClient = (*APIClient)(nil)

func (c *APIClient) fetchJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	reqURL := c.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Requesting from Limitless API", "url", reqURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("Received non-OK HTTP status from Limitless API", "status", resp.StatusCode, "path", path)
		return &APIError{StatusCode: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, err)
	}
	return nil
}

// GetTournaments fetches the tournament list matching the given filters.
func (c *APIClient) GetTournaments(ctx context.Context, params *ListParams) ([]Tournament, error) {
	values := url.Values{}
	if params != nil {
		if params.Game != "" {
			values.Set("game", params.Game)
		}
		if params.OrganizerID != "" {
			values.Set("organizerId", params.OrganizerID)
		}
		if params.Limit > 0 {
			values.Set("limit", strconv.Itoa(params.Limit))
		}
	}

	var tournaments []Tournament
	if err := c.fetchJSON(ctx, "/tournaments", values, &tournaments); err != nil {
		return nil, err
	}
	log.Info("Fetched tournament list", "count", len(tournaments))
	return tournaments, nil
}

// GetStandings fetches the final standings for one tournament.
func (c *APIClient) GetStandings(ctx context.Context, tournamentID string) ([]Standing, error) {
	var standings []Standing
	if err := c.fetchJSON(ctx, "/tournaments/"+tournamentID+"/standings", nil, &standings); err != nil {
		return nil, err
	}
	return standings, nil
}

// GetPairings fetches all round pairings for one tournament.
func (c *APIClient) GetPairings(ctx context.Context, tournamentID string) ([]Pairing, error) {
	var pairings []Pairing
	if err := c.fetchJSON(ctx, "/tournaments/"+tournamentID+"/pairings", nil, &pairings); err != nil {
		return nil, err
	}
	return pairings, nil
}
