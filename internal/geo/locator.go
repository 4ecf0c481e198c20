// Package geo resolves the host's current position. The dashboard only needs
// coordinates good enough to seed a city-scale forecast, so an IP-based
// lookup stands in for precise positioning.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Position is a resolved geographic position.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator resolves the current position of the host.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// IPLocator resolves a coarse position from the machine's public IP
// via ip-api.com. No API key required.
type IPLocator struct {
	baseURL string
	client  *http.Client
}

func NewIPLocator(client *http.Client) *IPLocator {
	return &IPLocator{
		baseURL: "http://ip-api.com/json",
		client:  client,
	}
}

func (l *IPLocator) Locate(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return Position{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("geo: lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("geo: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Position{}, fmt.Errorf("geo: decode response: %w", err)
	}

	if payload.Status != "success" {
		return Position{}, fmt.Errorf("geo: lookup returned status %q", payload.Status)
	}

	return Position{Latitude: payload.Lat, Longitude: payload.Lon}, nil
}
