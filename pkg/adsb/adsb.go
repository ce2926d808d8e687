// Package adsb fetches live aircraft from an airplanes.live style API
// and converts the results into the host entity state the flight table
// card consumes. This is host-side plumbing: the card itself never does
// network I/O.
package adsb

import (
	"strconv"
	"strings"

	"github.com/mtilvans/flightboard/pkg/hass"
)

// Aircraft is one aircraft as reported by the feed.
// Optional fields are pointers; nil means not reported.
type Aircraft struct {
	// Hex is the 24-bit ICAO address
	Hex string

	// Flight is the callsign
	Flight *string

	// Registration is the airframe registration
	Registration *string

	// Latitude/Longitude in decimal degrees
	Latitude  *float64
	Longitude *float64

	// Altitude in feet
	Altitude *float64

	// GroundSpeed in knots
	GroundSpeed *float64

	// Track in degrees (0-360)
	Track *float64

	// Category is the ADS-B emitter category (A0-D7)
	Category *string

	// Type is the ICAO type designator
	Type *string
}

// EntityState packages a fetched aircraft list as a host entity state,
// the same shape a dashboard integration would push. The aircraft land
// in the named attribute as a sequence of attribute bags.
func EntityState(entityID, attribute string, aircraft []Aircraft) hass.State {
	list := make([]any, 0, len(aircraft))
	for _, ac := range aircraft {
		bag := map[string]any{"hex": strings.ToLower(ac.Hex)}
		putString(bag, "flight", ac.Flight)
		putString(bag, "registration", ac.Registration)
		putFloat(bag, "latitude", ac.Latitude)
		putFloat(bag, "longitude", ac.Longitude)
		putFloat(bag, "altitude", ac.Altitude)
		putFloat(bag, "speed", ac.GroundSpeed)
		putFloat(bag, "track", ac.Track)
		putString(bag, "category", ac.Category)
		putString(bag, "aircraft_type", ac.Type)
		list = append(list, bag)
	}

	return hass.State{
		EntityID: entityID,
		State:    strconv.Itoa(len(aircraft)),
		Attributes: map[string]any{
			attribute: list,
		},
	}
}

func putString(bag map[string]any, key string, v *string) {
	if v != nil {
		bag[key] = strings.TrimSpace(*v)
	}
}

func putFloat(bag map[string]any, key string, v *float64) {
	if v != nil {
		bag[key] = *v
	}
}
