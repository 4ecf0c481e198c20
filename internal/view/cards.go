// Package view builds the read-only view models the API serves: the status
// banner and the per-location forecast cards. It derives everything from the
// current state and never mutates it.
package view

import (
	"fmt"
	"math"
	"time"

	"github.com/maxfalkovich/web-lab4-weather/internal/dashboard"
	"github.com/maxfalkovich/web-lab4-weather/internal/locations"
	"github.com/maxfalkovich/web-lab4-weather/internal/weather"
)

// maxForecastDays caps how many daily rows a card shows, regardless of how
// many days the provider returned.
const maxForecastDays = 3

// Card is the view model for one location.
type Card struct {
	Name        string        `json:"name"`
	SourceLabel string        `json:"sourceLabel"`
	Loading     bool          `json:"loading"`
	Days        []ForecastDay `json:"days,omitempty"`
}

// ForecastDay is one daily row on a card.
type ForecastDay struct {
	Label         string  `json:"label"`
	AvgTemp       string  `json:"avgTemp"`
	TempMin       int     `json:"tempMin"`
	TempMax       int     `json:"tempMax"`
	Precipitation float64 `json:"precipitationMm"`
	WindSpeed     int     `json:"windSpeedKmh"`
	Description   string  `json:"description"`
}

// Banner is the view model for the status area.
type Banner struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Icon    string `json:"icon"`
}

// StatusBanner converts the current status into its banner view model.
// An empty message yields no banner.
func StatusBanner(s dashboard.Status) *Banner {
	if s.Message == "" {
		return nil
	}
	icon := "ℹ️"
	if s.Kind == dashboard.StatusError {
		icon = "⚠️"
	}
	return &Banner{Message: s.Message, Kind: string(s.Kind), Icon: icon}
}

// BuildCards produces one card per location, in the given order. Locations
// without a snapshot yet render as loading placeholders. Snapshots for
// locations not in locs are ignored.
func BuildCards(locs []locations.Location, byKey map[string]weather.Snapshot) []Card {
	cards := make([]Card, 0, len(locs))

	for _, loc := range locs {
		card := Card{
			Name:        loc.Name,
			SourceLabel: sourceLabel(loc.Source),
		}

		snap, ok := byKey[loc.Key()]
		if !ok {
			card.Loading = true
			cards = append(cards, card)
			continue
		}

		days := snap.Daily.Days()
		if days > maxForecastDays {
			days = maxForecastDays
		}

		for i := 0; i < days; i++ {
			min := snap.Daily.TemperatureMin[i]
			max := snap.Daily.TemperatureMax[i]

			card.Days = append(card.Days, ForecastDay{
				Label:         DayLabel(i, snap.Daily.Time[i]),
				AvgTemp:       fmt.Sprintf("%d°", int(math.Round((min+max)/2))),
				TempMin:       int(math.Round(min)),
				TempMax:       int(math.Round(max)),
				Precipitation: snap.Daily.PrecipitationSum[i],
				WindSpeed:     int(math.Round(snap.Daily.WindSpeedMax[i])),
				Description:   DescribeWeather(snap.Daily.WeatherCode[i]),
			})
		}

		cards = append(cards, card)
	}

	return cards
}

// DayLabel labels a forecast row by its position: the first row is always
// "Today" and the second "Tomorrow"; later rows show weekday and date.
func DayLabel(index int, date string) string {
	switch index {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}

	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Monday, Jan 2")
}

func sourceLabel(src locations.Source) string {
	if src == locations.SourceGeo {
		return "Geolocation"
	}
	return "Added manually"
}
