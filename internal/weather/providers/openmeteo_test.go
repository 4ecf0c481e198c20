package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maxfalkovich/web-lab4-weather/internal/locations"
)

const forecastPayload = `{
	"current_weather": {"temperature": 11.3, "windspeed": 14.2, "weathercode": 2, "time": "2026-09-01T12:00"},
	"daily": {
		"time": ["2026-09-01", "2026-09-02", "2026-09-03"],
		"weathercode": [0, 61, 3],
		"temperature_2m_max": [20.1, 17.4, 15.0],
		"temperature_2m_min": [10.2, 9.1, 8.4],
		"precipitation_sum": [0, 4.2, 1.1],
		"windspeed_10m_max": [12.4, 18.0, 22.3]
	}
}`

func TestFetchBuildsForecastRequest(t *testing.T) {
	var query map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastPayload))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), 3)
	p.baseURL = srv.URL

	loc := locations.Location{Name: "Москва", Latitude: 55.7558, Longitude: 37.6176}
	snap, err := p.Fetch(context.Background(), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if query["latitude"] != "55.7558" || query["longitude"] != "37.6176" {
		t.Fatalf("coordinates not forwarded: %v", query)
	}
	if query["daily"] != dailyFields {
		t.Fatalf("unexpected daily fields: %q", query["daily"])
	}
	if query["current_weather"] != "true" || query["forecast_days"] != "3" || query["timezone"] != "auto" {
		t.Fatalf("missing fixed parameters: %v", query)
	}

	if snap.Current.Temperature != 11.3 {
		t.Fatalf("current temperature not decoded: %+v", snap.Current)
	}
	if snap.Daily.Days() != 3 || snap.Daily.TemperatureMax[1] != 17.4 || snap.Daily.WeatherCode[1] != 61 {
		t.Fatalf("daily forecast not decoded: %+v", snap.Daily)
	}
}

func TestFetchRejectsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try later", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), 3)
	p.baseURL = srv.URL

	if _, err := p.Fetch(context.Background(), locations.Location{Name: "Сочи"}); err == nil {
		t.Fatalf("expected an error for a 503 response")
	}
}

func TestFetchRejectsMismatchedDailyArrays(t *testing.T) {
	// Three dates but only one minimum temperature: storing this would make
	// the card renderer index out of range on every render.
	payload := `{
		"current_weather": {"temperature": 11.3, "windspeed": 14.2, "weathercode": 2, "time": "2026-09-01T12:00"},
		"daily": {
			"time": ["2026-09-01", "2026-09-02", "2026-09-03"],
			"weathercode": [0, 61, 3],
			"temperature_2m_max": [20.1, 17.4, 15.0],
			"temperature_2m_min": [10.2],
			"precipitation_sum": [0, 4.2, 1.1],
			"windspeed_10m_max": [12.4, 18.0, 22.3]
		}
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), 3)
	p.baseURL = srv.URL

	_, err := p.Fetch(context.Background(), locations.Location{Name: "Москва"})
	if err == nil {
		t.Fatalf("expected an error for mismatched daily arrays")
	}
	if !errors.Is(err, errMalformedDaily) {
		t.Fatalf("expected a daily-shape error, got %v", err)
	}
}

func TestFetchRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), 3)
	p.baseURL = srv.URL

	if _, err := p.Fetch(context.Background(), locations.Location{Name: "Сочи"}); err == nil {
		t.Fatalf("expected a decode error")
	}
}
