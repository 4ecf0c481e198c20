package weather

import (
	"context"

	"github.com/maxfalkovich/web-lab4-weather/internal/locations"
)

// Fetcher abstracts a forecast data source (e.g. Open-Meteo).
type Fetcher interface {
	Fetch(ctx context.Context, loc locations.Location) (Snapshot, error)
}
