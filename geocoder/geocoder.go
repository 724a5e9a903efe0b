// Package geocoder resolves free-text addresses to coordinates via the
// OpenCage forward-geocoding API.
package geocoder

import (
	"context"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.opencagedata.com"

// countryCode scopes every lookup to India
const countryCode = "in"

// Coordinates is one resolved latitude/longitude pair
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves an address to coordinates. Resolve returns nil both when
// the provider finds nothing and when the lookup fails for any reason, so a
// slow or broken provider never fails the caller's write path.
type Geocoder interface {
	Resolve(ctx context.Context, address string) *Coordinates
}

// Client is a Geocoder backed by the OpenCage HTTP API
type Client struct {
	http   *resty.Client
	apiKey string
}

type opencageResponse struct {
	TotalResults int `json:"total_results"`
	Results      []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

// New creates a Client against the production OpenCage endpoint
func New(apiKey string) *Client {
	return NewWithBaseURL(apiKey, defaultBaseURL)
}

// NewWithBaseURL creates a Client against the given endpoint, used by tests
// to point at a stub server
func NewWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

// Resolve issues one lookup for the given address, requesting a single
// candidate result. Provider errors and zero-result answers both yield nil.
func (c *Client) Resolve(ctx context.Context, address string) *Coordinates {
	var out opencageResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":           address,
			"key":         c.apiKey,
			"countrycode": countryCode,
			"limit":       "1",
		}).
		SetResult(&out).
		Get("/geocode/v1/json")
	if err != nil {
		zap.S().Warnw("geocoding request failed", "address", address, "error", err)
		return nil
	}
	if !resp.IsSuccess() {
		zap.S().Warnw("geocoding provider returned an error", "address", address, "status", resp.StatusCode())
		return nil
	}
	if out.TotalResults == 0 || len(out.Results) == 0 {
		return nil
	}

	geometry := out.Results[0].Geometry
	return &Coordinates{Latitude: geometry.Lat, Longitude: geometry.Lng}
}
