package adsb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// MaxRadiusNM is the largest point-query radius the API accepts.
const MaxRadiusNM = 250.0

// Client queries an airplanes.live compatible API.
// Requests are rate limited; the public service allows 1 request/second.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a feed client.
// baseURL should be "https://api.airplanes.live/v2" (or custom for testing);
// requestsPerSecond caps the API call rate (0 means 1 req/s).
func NewClient(baseURL string, requestsPerSecond float64) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// GetAircraft returns all aircraft within a radius of a point.
// Uses the /point/[lat]/[lon]/[radius] endpoint; the radius is capped
// at MaxRadiusNM. Blocks on the rate limiter until a request is allowed
// or the context is done.
func (c *Client) GetAircraft(ctx context.Context, centerLat, centerLon, radiusNM float64) ([]Aircraft, error) {
	if radiusNM > MaxRadiusNM {
		radiusNM = MaxRadiusNM
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/point/%.4f/%.4f/%.0f", c.baseURL, centerLat, centerLon, radiusNM)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aircraft data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	aircraft := make([]Aircraft, 0, len(apiResp.Aircraft))
	for _, ac := range apiResp.Aircraft {
		aircraft = append(aircraft, convertFeedAircraft(ac))
	}
	return aircraft, nil
}

// RateLimitError reports an HTTP 429 from the feed.
type RateLimitError struct {
	StatusCode int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded, retry after %v", e.RetryAfter)
	}
	return "rate limit exceeded"
}

func parseRetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

// feedResponse is the JSON envelope of a point query.
type feedResponse struct {
	Aircraft []feedAircraft `json:"ac"`
	Total    int            `json:"total"`
	Now      float64        `json:"now"`
}

// feedAircraft is one aircraft in the API response.
// Field documentation: https://airplanes.live/adsb-field-explanations/
type feedAircraft struct {
	Hex          string   `json:"hex"`
	Flight       *string  `json:"flight"`
	Registration *string  `json:"r"`
	Type         *string  `json:"t"`
	Category     *string  `json:"category"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`

	// AltBaro can be a number or the string "ground"
	AltBaro any `json:"alt_baro"`

	// AltGeom can be a number or the string "ground"
	AltGeom any `json:"alt_geom"`

	Gs    *float64 `json:"gs"`
	Track *float64 `json:"track"`
}

func convertFeedAircraft(ac feedAircraft) Aircraft {
	out := Aircraft{
		Hex:          ac.Hex,
		Flight:       ac.Flight,
		Registration: ac.Registration,
		Type:         ac.Type,
		Category:     ac.Category,
		Latitude:     ac.Lat,
		Longitude:    ac.Lon,
		GroundSpeed:  ac.Gs,
		Track:        ac.Track,
	}

	// Prefer geometric (GPS) altitude over barometric.
	if alt := parseAltitude(ac.AltGeom); alt != nil {
		out.Altitude = alt
	} else if alt := parseAltitude(ac.AltBaro); alt != nil {
		out.Altitude = alt
	}

	return out
}

// parseAltitude handles the altitude fields' mixed typing: a JSON number,
// or the string "ground" which maps to zero feet.
func parseAltitude(v any) *float64 {
	switch alt := v.(type) {
	case float64:
		return &alt
	case string:
		if alt == "ground" {
			zero := 0.0
			return &zero
		}
	}
	return nil
}
