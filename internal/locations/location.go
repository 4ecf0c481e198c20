package locations

// Source tells where a location came from.
type Source string

const (
	SourceGeo    Source = "geo"
	SourceManual Source = "manual"
)

// GeoID is the fixed id of the geolocation-derived primary location.
const GeoID = "geo"

// Location represents a logical place for which we track weather.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Source    Source  `json:"source"`
}

// Key returns the identifier used to associate weather snapshots with this
// location. Manually added entries use their name as id.
func (l Location) Key() string {
	if l.ID != "" {
		return l.ID
	}
	return l.Name
}
