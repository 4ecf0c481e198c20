package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/maxfalkovich/web-lab4-weather/internal/locations"
	"github.com/maxfalkovich/web-lab4-weather/internal/weather"
)

// dailyFields is the fixed list of daily aggregates we request.
const dailyFields = "weathercode,temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max"

var errMalformedDaily = errors.New("daily arrays have mismatched lengths")

// OpenMeteoProvider implements the weather.Fetcher interface for Open-Meteo.
// Open-Meteo requires no API key.
type OpenMeteoProvider struct {
	baseURL string
	client  *http.Client
	days    int
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, forecastDays int) *OpenMeteoProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if forecastDays <= 0 {
		forecastDays = 3
	}

	return &OpenMeteoProvider{
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  client,
		days:    forecastDays,
		circuit: cb,
	}
}

// Fetch requests current conditions plus the daily aggregate for the given
// location. The provider resolves the timezone itself. A response whose daily
// arrays disagree in length is rejected as a decode failure rather than
// stored.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc locations.Location) (weather.Snapshot, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	values.Set("daily", dailyFields)
	values.Set("current_weather", "true")
	values.Set("forecast_days", strconv.Itoa(p.days))
	values.Set("timezone", "auto")

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return weather.Snapshot{}, err
	}

	resp, err := doRequest(ctx, p.client, p.circuit, req)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("openmeteo: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather weather.CurrentWeather `json:"current_weather"`
		Daily          weather.DailyForecast  `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("openmeteo: decode response: %w", err)
	}

	if err := validateDaily(payload.Daily); err != nil {
		return weather.Snapshot{}, fmt.Errorf("openmeteo: decode response: %w", err)
	}

	return weather.Snapshot{
		Current: payload.CurrentWeather,
		Daily:   payload.Daily,
	}, nil
}

// validateDaily checks the invariant the card renderer relies on: every
// daily array is aligned by index to Time.
func validateDaily(d weather.DailyForecast) error {
	n := len(d.Time)
	if len(d.WeatherCode) != n ||
		len(d.TemperatureMax) != n ||
		len(d.TemperatureMin) != n ||
		len(d.PrecipitationSum) != n ||
		len(d.WindSpeedMax) != n {
		return errMalformedDaily
	}
	return nil
}
