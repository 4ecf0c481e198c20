package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/maxfalkovich/web-lab4-weather/internal/dashboard"
	"github.com/maxfalkovich/web-lab4-weather/internal/locations"
	"github.com/maxfalkovich/web-lab4-weather/internal/store"
	"github.com/maxfalkovich/web-lab4-weather/internal/weather"
)

type okFetcher struct{}

func (okFetcher) Fetch(context.Context, locations.Location) (weather.Snapshot, error) {
	return weather.Snapshot{
		Daily: weather.DailyForecast{
			Time:             []string{"2026-09-01"},
			WeatherCode:      []int{0},
			TemperatureMax:   []float64{20},
			TemperatureMin:   []float64{10},
			PrecipitationSum: []float64{0},
			WindSpeedMax:     []float64{12},
		},
	}, nil
}

type nopStore struct{}

func (nopStore) Save(store.PersistedState) error { return nil }
func (nopStore) Restore() store.PersistedState   { return store.PersistedState{} }
func (nopStore) Close() error                    { return nil }

func newTestApp() (*fiber.App, *dashboard.Controller) {
	app := fiber.New()
	ctrl := dashboard.NewController(dashboard.NewState(), nopStore{}, okFetcher{}, nil, time.Second)
	RegisterRoutes(app, ctrl)
	return app, ctrl
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestAddCityValidationErrors(t *testing.T) {
	app, _ := newTestApp()

	// Missing name should be rejected with field-level text.
	resp := postJSON(t, app, "/api/v1/cities", `{}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}

	// A city outside the catalog is rejected too.
	resp = postJSON(t, app, "/api/v1/cities", `{"name":"Atlantis"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}

	var body struct {
		Error   bool   `json:"error"`
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !body.Error || body.Field != "city" || body.Message == "" {
		t.Fatalf("expected a field-level error, got %+v", body)
	}
}

func TestAddCityThenDashboard(t *testing.T) {
	app, _ := newTestApp()

	resp := postJSON(t, app, "/api/v1/cities", `{"name":"Москва"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Status *struct {
			Message string `json:"message"`
			Kind    string `json:"kind"`
		} `json:"status"`
		Cards []struct {
			Name    string `json:"name"`
			Loading bool   `json:"loading"`
		} `json:"cards"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if len(body.Cards) != 1 || body.Cards[0].Name != "Москва" || body.Cards[0].Loading {
		t.Fatalf("expected a loaded card for the added city, got %+v", body.Cards)
	}
	if body.Status == nil || body.Status.Kind != "info" {
		t.Fatalf("expected an info banner after a clean refresh, got %+v", body.Status)
	}
}

func TestDuplicateCityRejected(t *testing.T) {
	app, _ := newTestApp()

	if resp := postJSON(t, app, "/api/v1/cities", `{"name":"Сочи"}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first add failed with %d", resp.StatusCode)
	}
	resp := postJSON(t, app, "/api/v1/cities", `{"name":"сочи"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestSuggestionsReturnsCatalog(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cities/suggestions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Cities []string `json:"cities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Cities) != len(locations.SuggestedCities) {
		t.Fatalf("expected %d suggestions, got %d", len(locations.SuggestedCities), len(body.Cities))
	}
}

func TestRefreshEmptyStateShowsAddCityBanner(t *testing.T) {
	app, _ := newTestApp()

	resp := postJSON(t, app, "/api/v1/refresh", ``)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Status *struct {
			Message string `json:"message"`
			Kind    string `json:"kind"`
		} `json:"status"`
		Cards []json.RawMessage `json:"cards"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Cards) != 0 {
		t.Fatalf("expected zero cards, got %d", len(body.Cards))
	}
	if body.Status == nil || body.Status.Kind != "info" {
		t.Fatalf("empty state must show an informational banner, got %+v", body.Status)
	}
}
