package card

import (
	"strings"

	"github.com/mtilvans/flightboard/pkg/aircraftdb"
	"github.com/mtilvans/flightboard/pkg/coordinates"
	"github.com/mtilvans/flightboard/pkg/flags"
	"github.com/mtilvans/flightboard/pkg/hass"
)

// Aircraft is one normalized, derived aircraft entity. It is rebuilt
// from the raw record on every render cycle and never mutated after
// construction.
type Aircraft struct {
	// Hex is the transponder address, the stable row identifier
	Hex string

	// Flight is the callsign, "" when unknown
	Flight string

	// Registration is the airframe registration, "" when unknown
	Registration string

	// Altitude in feet; nil when not reported
	Altitude *float64

	// Speed is ground speed in knots; nil when not reported
	Speed *float64

	// Track in degrees, normalized to [0, 360); nil when not reported
	Track *float64

	// Latitude/Longitude in decimal degrees; nil when no position
	Latitude  *float64
	Longitude *float64

	// Distance from the reference point in the card's unit;
	// nil when no reference point or no position
	Distance *float64

	// Flag is the country flag asset path derived from the hex
	// address allocation, "" when unresolvable
	Flag string

	// Icon is the presentation icon key, never empty
	Icon string
}

// GenericIcon is the icon fallback for aircraft whose category and type
// resolve to nothing, including while the type reference is still loading.
const GenericIcon = "generic"

// Normalize maps one raw record into an Aircraft. The mapping is total:
// absent fields become nil or "", never an error, so one malformed
// record cannot prevent the rest of the list from rendering. Pure apart
// from the read-only type reference lookup; records may be normalized
// in any order.
func Normalize(raw hass.RawAircraft, dist *DistanceService) Aircraft {
	ac := Aircraft{
		Hex:       strings.ToLower(strings.TrimSpace(raw.Hex)),
		Altitude:  raw.Altitude,
		Speed:     raw.Speed,
		Latitude:  raw.Latitude,
		Longitude: raw.Longitude,
		Icon:      GenericIcon,
	}

	if raw.Flight != nil {
		ac.Flight = strings.TrimSpace(*raw.Flight)
	}
	if raw.Registration != nil {
		ac.Registration = strings.TrimSpace(*raw.Registration)
	}
	if raw.Track != nil {
		t := coordinates.NormalizeTrack(*raw.Track)
		ac.Track = &t
	}

	ac.Distance = dist.DistanceTo(raw.Latitude, raw.Longitude)

	if path, ok := flags.AssetPath(ac.Hex); ok {
		ac.Flag = path
	}
	ac.Icon = deriveIcon(raw)

	return ac
}

// NormalizeAll maps a raw record list, preserving input order.
func NormalizeAll(raws []hass.RawAircraft, dist *DistanceService) []Aircraft {
	list := make([]Aircraft, 0, len(raws))
	for _, raw := range raws {
		list = append(list, Normalize(raw, dist))
	}
	return list
}

// FilterVisible removes aircraft hidden by the row filters. Survivors
// keep their relative order; the actual render order is established by
// the sorter, not here. Filtering is idempotent.
func FilterVisible(list []Aircraft, cfg Config) []Aircraft {
	if !cfg.Hide.WithOutFlight {
		return list
	}
	out := make([]Aircraft, 0, len(list))
	for _, ac := range list {
		if ac.Flight == "" {
			continue
		}
		out = append(out, ac)
	}
	return out
}

// deriveIcon picks an icon key from the type reference when it has
// loaded, then from the ADS-B emitter category, then falls back to the
// generic icon. The reference loading in the background never blocks a
// render; it just means category-or-generic until it arrives.
func deriveIcon(raw hass.RawAircraft) string {
	if raw.AircraftType != nil {
		if e, ok := aircraftdb.LookupType(strings.ToUpper(*raw.AircraftType)); ok {
			return e.Icon
		}
	}
	if raw.Category != nil {
		if icon, ok := categoryIcon(strings.ToUpper(*raw.Category)); ok {
			return icon
		}
	}
	return GenericIcon
}

// categoryIcon maps ADS-B emitter categories (A0-D7) to icon keys.
func categoryIcon(category string) (string, bool) {
	switch category {
	case "A1", "A2", "A3", "A4", "A5":
		return "jet", true
	case "A6":
		return "fast", true
	case "A7":
		return "heli", true
	case "B1":
		return "glider", true
	case "B2":
		return "balloon", true
	case "B4":
		return "uav", true
	default:
		return "", false
	}
}
