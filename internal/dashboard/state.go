package dashboard

import (
	"strings"
	"sync"

	"github.com/maxfalkovich/web-lab4-weather/internal/locations"
	"github.com/maxfalkovich/web-lab4-weather/internal/store"
	"github.com/maxfalkovich/web-lab4-weather/internal/weather"
)

// StatusKind distinguishes informational banners from error banners.
type StatusKind string

const (
	StatusInfo  StatusKind = "info"
	StatusError StatusKind = "error"
)

// Status is the single banner shown above the cards. An empty message means
// no banner.
type Status struct {
	Message string     `json:"message"`
	Kind    StatusKind `json:"kind"`
}

// State owns the in-memory dashboard state: the primary location, the ordered
// list of additional cities, the transient weather-by-key map, and the
// current status banner. All access goes through the mutex; callers receive
// copies.
type State struct {
	mu      sync.RWMutex
	primary *locations.Location
	cities  []locations.Location
	weather map[string]weather.Snapshot
	status  Status
}

func NewState() *State {
	return &State{
		weather: make(map[string]weather.Snapshot),
	}
}

// Restore replaces the location list with a persisted one. Weather snapshots
// are not persisted and start empty.
func (s *State) Restore(p store.PersistedState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.primary = p.Primary
	s.cities = append([]locations.Location(nil), p.Cities...)
}

// Persisted returns the payload to write to storage.
func (s *State) Persisted() store.PersistedState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var primary *locations.Location
	if s.primary != nil {
		p := *s.primary
		primary = &p
	}
	return store.PersistedState{
		Primary: primary,
		Cities:  append([]locations.Location(nil), s.cities...),
	}
}

// Locations returns the full location list, primary first, in render order.
func (s *State) Locations() []locations.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]locations.Location, 0, len(s.cities)+1)
	if s.primary != nil {
		list = append(list, *s.primary)
	}
	return append(list, s.cities...)
}

// SetPrimary installs loc as the primary location, overwriting any existing
// primary.
func (s *State) SetPrimary(loc locations.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.primary = &loc
}

// InstallIfAbsent makes loc the primary if none exists yet, otherwise
// appends it to the additional cities. It reports false without installing
// when a location with the same name (case-insensitive) is already present.
// Check and insert share one critical section so concurrent adds of the
// same city cannot both pass the duplicate check.
func (s *State) InstallIfAbsent(loc locations.Location) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasLocationNamedLocked(loc.Name) {
		return false
	}
	if s.primary == nil {
		s.primary = &loc
		return true
	}
	s.cities = append(s.cities, loc)
	return true
}

// hasLocationNamedLocked must be called with s.mu held.
func (s *State) hasLocationNamedLocked(name string) bool {
	if s.primary != nil && strings.EqualFold(s.primary.Name, name) {
		return true
	}
	for _, c := range s.cities {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// SetSnapshot stores a fetched snapshot under the location key.
func (s *State) SetSnapshot(key string, snap weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.weather[key] = snap
}

// Snapshots returns a copy of the weather-by-key map.
func (s *State) Snapshots() map[string]weather.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]weather.Snapshot, len(s.weather))
	for k, v := range s.weather {
		out[k] = v
	}
	return out
}

// SetStatus replaces the status banner.
func (s *State) SetStatus(message string, kind StatusKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = Status{Message: message, Kind: kind}
}

// Status returns the current status banner.
func (s *State) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}
