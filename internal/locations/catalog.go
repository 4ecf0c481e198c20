package locations

import "strings"

// SuggestedCities is the fixed catalog manual entries are validated against.
// It doubles as the autocomplete source for the add-city form, which keeps
// free-text geocoding out of the picture entirely.
var SuggestedCities = []Location{
	{Name: "Москва", Latitude: 55.7558, Longitude: 37.6176},
	{Name: "Санкт-Петербург", Latitude: 59.9386, Longitude: 30.3141},
	{Name: "Новосибирск", Latitude: 55.0084, Longitude: 82.9357},
	{Name: "Екатеринбург", Latitude: 56.8389, Longitude: 60.6057},
	{Name: "Казань", Latitude: 55.7963, Longitude: 49.1088},
	{Name: "Нижний Новгород", Latitude: 56.2965, Longitude: 43.9361},
	{Name: "Самара", Latitude: 53.1959, Longitude: 50.1008},
	{Name: "Сочи", Latitude: 43.5855, Longitude: 39.7231},
	{Name: "Владивосток", Latitude: 43.1155, Longitude: 131.8855},
	{Name: "Краснодар", Latitude: 45.0355, Longitude: 38.9753},
	{Name: "Калининград", Latitude: 54.7104, Longitude: 20.4522},
}

// FindByName looks up a catalog entry case-insensitively.
func FindByName(name string) (Location, bool) {
	for _, c := range SuggestedCities {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Location{}, false
}

// Names returns the catalog city names in catalog order.
func Names() []string {
	names := make([]string, 0, len(SuggestedCities))
	for _, c := range SuggestedCities {
		names = append(names, c.Name)
	}
	return names
}
