package view

// weatherDescriptions maps WMO weather codes (as used by Open-Meteo) to
// display text.
var weatherDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mostly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Light rain",
	63: "Rain",
	65: "Heavy rain",
	71: "Light snow",
	73: "Snow",
	75: "Heavy snow",
	80: "Rain showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
}

// DescribeWeather returns display text for a weather code, falling back to
// "Unknown weather" for unmapped codes.
func DescribeWeather(code int) string {
	if desc, ok := weatherDescriptions[code]; ok {
		return desc
	}
	return "Unknown weather"
}
