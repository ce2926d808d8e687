// Package lang provides the localized string catalog for table headers
// and popup labels. Lookups that miss resolve to the English fallback,
// then to the empty string; a missing key is never fatal.
package lang

// catalogs maps locale -> dotted key path -> display string.
var catalogs = map[string]map[string]string{
	"en": {
		"table.head.flag":         "",
		"table.head.registration": "Reg",
		"table.head.flight":       "Flight",
		"table.head.altitude":     "Altitude",
		"table.head.speed":        "Speed",
		"table.head.distance":     "Distance",
		"table.head.track":        "Track",
		"table.head.hex":          "Hex",
		"table.head.icon":         "",
		"popup.registration":      "Registration",
		"popup.altitude":          "Altitude",
		"popup.speed":             "Ground speed",
		"popup.distance":          "Distance",
		"popup.track":             "Track",
		"popup.route":             "Route",
		"popup.type":              "Aircraft type",
	},
	"nl": {
		"table.head.registration": "Reg",
		"table.head.flight":       "Vlucht",
		"table.head.altitude":     "Hoogte",
		"table.head.speed":        "Snelheid",
		"table.head.distance":     "Afstand",
		"table.head.track":        "Koers",
		"popup.registration":      "Registratie",
		"popup.altitude":          "Hoogte",
		"popup.speed":             "Grondsnelheid",
		"popup.distance":          "Afstand",
		"popup.track":             "Koers",
		"popup.route":             "Route",
		"popup.type":              "Vliegtuigtype",
	},
	"de": {
		"table.head.registration": "Reg",
		"table.head.flight":       "Flug",
		"table.head.altitude":     "Höhe",
		"table.head.speed":        "Tempo",
		"table.head.distance":     "Distanz",
		"table.head.track":        "Kurs",
		"popup.registration":      "Registrierung",
		"popup.altitude":          "Höhe",
		"popup.speed":             "Geschwindigkeit",
		"popup.distance":          "Distanz",
		"popup.track":             "Kurs",
		"popup.route":             "Route",
		"popup.type":              "Flugzeugtyp",
	},
}

// DefaultLocale is used when a locale has no catalog at all.
const DefaultLocale = "en"

// Lookup returns the display string for a dotted key path in the given
// locale. Falls back to the default locale, then to "".
func Lookup(locale, path string) string {
	if cat, ok := catalogs[locale]; ok {
		if s, ok := cat[path]; ok {
			return s
		}
	}
	if locale != DefaultLocale {
		if s, ok := catalogs[DefaultLocale][path]; ok {
			return s
		}
	}
	return ""
}

// Supported reports whether a locale has its own catalog.
func Supported(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}
