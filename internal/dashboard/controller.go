package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/maxfalkovich/web-lab4-weather/internal/geo"
	"github.com/maxfalkovich/web-lab4-weather/internal/locations"
	"github.com/maxfalkovich/web-lab4-weather/internal/store"
	"github.com/maxfalkovich/web-lab4-weather/internal/weather"
)

// Validation failures for manual city entry. Surfaced as inline field-level
// text, never as a status banner.
var (
	ErrEmptyCity     = errors.New("enter a city name")
	ErrUnknownCity   = errors.New("city must be chosen from the list")
	ErrDuplicateCity = errors.New("city already added")
)

// Status banner messages.
const (
	msgAddCity        = "Add a city to see the forecast."
	msgRefreshing     = "Refreshing weather..."
	msgUpdated        = "Weather updated."
	msgAllFailed      = "Failed to load weather data. Check your connection."
	msgSomeFailed     = "Some cities failed to load: %s."
	msgLocating       = "Requesting your location..."
	msgGeoFailed      = "Could not determine your location. Add a city from the list."
	msgGeoUnavailable = "Geolocation is not available. Add a city manually."
)

// geoLocationName is the display name of the geolocation-derived primary.
const geoLocationName = "Current location"

// Controller coordinates the state, persistence, geolocation, and weather
// fetches. It owns every mutation of the application state.
type Controller struct {
	state      *State
	store      store.StateStore
	fetcher    weather.Fetcher
	locator    geo.Locator
	geoTimeout time.Duration
}

func NewController(
	state *State,
	stateStore store.StateStore,
	fetcher weather.Fetcher,
	locator geo.Locator,
	geoTimeout time.Duration,
) *Controller {
	if geoTimeout <= 0 {
		geoTimeout = 8 * time.Second
	}
	return &Controller{
		state:      state,
		store:      stateStore,
		fetcher:    fetcher,
		locator:    locator,
		geoTimeout: geoTimeout,
	}
}

// State exposes the owned application state for read-only consumers.
func (c *Controller) State() *State {
	return c.state
}

// Bootstrap restores persisted locations and either refreshes immediately or
// falls back to geolocation when nothing is stored yet.
func (c *Controller) Bootstrap(ctx context.Context) {
	c.state.Restore(c.store.Restore())

	if len(c.state.Locations()) > 0 {
		c.RefreshAll(ctx)
		return
	}
	c.Geolocate(ctx)
}

// AddCity validates a manually entered city name against the catalog and, on
// success, installs it (as primary if none exists yet), persists the location
// list, and refreshes weather for everything.
func (c *Controller) AddCity(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCity
	}

	matched, ok := locations.FindByName(name)
	if !ok {
		return ErrUnknownCity
	}

	loc := matched
	loc.ID = matched.Name
	loc.Source = locations.SourceManual

	if !c.state.InstallIfAbsent(loc) {
		return ErrDuplicateCity
	}
	c.persist()
	c.RefreshAll(ctx)
	return nil
}

// Geolocate resolves the current position and installs it as the primary
// location, overwriting any existing primary. Failure surfaces an error
// banner; there is no automatic retry.
func (c *Controller) Geolocate(ctx context.Context) {
	if c.locator == nil {
		c.state.SetStatus(msgGeoUnavailable, StatusError)
		return
	}

	c.state.SetStatus(msgLocating, StatusInfo)

	geoCtx, cancel := context.WithTimeout(ctx, c.geoTimeout)
	pos, err := c.locator.Locate(geoCtx)
	cancel()
	if err != nil {
		log.Printf("dashboard: geolocation failed: %v", err)
		c.state.SetStatus(msgGeoFailed, StatusError)
		return
	}

	c.state.SetPrimary(locations.Location{
		ID:        locations.GeoID,
		Name:      geoLocationName,
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Source:    locations.SourceGeo,
	})
	c.persist()
	c.RefreshAll(ctx)
}

// RefreshAll fetches forecasts for every known location concurrently,
// joining on all of them regardless of individual failures, then classifies
// the outcome into a status banner. Successful fetches replace the snapshot
// under the location key; failed ones leave any previous snapshot untouched.
//
// Overlapping invocations are not coalesced or cancelled: both proceed and
// the last writer wins per location key.
func (c *Controller) RefreshAll(ctx context.Context) {
	locs := c.state.Locations()
	if len(locs) == 0 {
		c.state.SetStatus(msgAddCity, StatusInfo)
		return
	}

	c.state.SetStatus(msgRefreshing, StatusInfo)

	snaps := make([]weather.Snapshot, len(locs))
	errs := make([]error, len(locs))

	var wg sync.WaitGroup
	for i, loc := range locs {
		wg.Add(1)
		go func(i int, loc locations.Location) {
			defer wg.Done()
			snaps[i], errs[i] = c.fetcher.Fetch(ctx, loc)
		}(i, loc)
	}
	wg.Wait()

	var failed []string
	for i, loc := range locs {
		if errs[i] != nil {
			log.Printf("dashboard: fetch failed for %s: %v", loc.Name, errs[i])
			failed = append(failed, loc.Name)
			continue
		}
		c.state.SetSnapshot(loc.Key(), snaps[i])
	}

	switch {
	case len(failed) == 0:
		c.state.SetStatus(msgUpdated, StatusInfo)
	case len(failed) == len(locs):
		c.state.SetStatus(msgAllFailed, StatusError)
	default:
		c.state.SetStatus(fmt.Sprintf(msgSomeFailed, strings.Join(failed, ", ")), StatusError)
	}
}

func (c *Controller) persist() {
	if err := c.store.Save(c.state.Persisted()); err != nil {
		log.Printf("dashboard: failed to persist state: %v", err)
	}
}
