// Package freeipapi resolves IP addresses to locations via the free IP API
// (https://freeipapi.com).
package freeipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"minibank/internal/geolocation/models"
)

// DefaultTimeout bounds a single lookup request.
const DefaultTimeout = 10 * time.Second

// payload is the subset of the freeipapi response we use.
type payload struct {
	CountryName string   `json:"countryName"`
	CityName    string   `json:"cityName"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Client calls the freeipapi JSON endpoint.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a Client for the given base URL, e.g.
// "https://freeipapi.com/api/json". A non-positive timeout falls back to
// DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// GetLocationByIP fetches the location for ip.
func (c *Client) GetLocationByIP(ctx context.Context, ip models.IPAddress) (models.Geolocation, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Geolocation{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return models.Geolocation{}, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Geolocation{}, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return models.Geolocation{}, fmt.Errorf("decode response: %w", err)
	}
	if p.Latitude == nil || p.Longitude == nil {
		return models.Geolocation{}, fmt.Errorf("incomplete response from %s", url)
	}

	return models.Geolocation{
		Country:   p.CountryName,
		City:      p.CityName,
		Latitude:  *p.Latitude,
		Longitude: *p.Longitude,
	}, nil
}
