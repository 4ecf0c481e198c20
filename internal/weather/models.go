package weather

// CurrentWeather is the provider's current-conditions record, passed through
// as-is alongside the daily forecast.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

// DailyForecast holds daily aggregates as parallel arrays aligned by index
// to Time. Fetch implementations must reject responses whose arrays
// disagree in length before a snapshot is stored.
type DailyForecast struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weathercode"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	WindSpeedMax     []float64 `json:"windspeed_10m_max"`
}

// Days returns the number of forecast days available.
func (d DailyForecast) Days() int {
	return len(d.Time)
}

// Snapshot is one fetched forecast result for a location, holding current
// conditions plus the daily aggregate.
type Snapshot struct {
	Current CurrentWeather `json:"current"`
	Daily   DailyForecast  `json:"daily"`
}
