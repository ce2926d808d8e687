// Package hass models the slice of dashboard host state the flight table
// card consumes: entity states with free-form attribute bags, and the raw
// aircraft records carried inside them.
package hass

import (
	"strconv"

	"github.com/mtilvans/flightboard/pkg/coordinates"
)

// State is a single entity state as pushed by the dashboard host.
type State struct {
	// EntityID identifies the entity (e.g. "sensor.planes", "zone.home")
	EntityID string

	// State is the entity's primary state value
	State string

	// Attributes is the entity's attribute bag. Attribute values
	// arrive as decoded JSON: strings, float64s, bools, maps, slices.
	Attributes map[string]any
}

// StateMap holds one render cycle's host state, keyed by entity ID.
type StateMap map[string]State

// Get returns the state for an entity ID.
func (m StateMap) Get(entityID string) (State, bool) {
	s, ok := m[entityID]
	return s, ok
}

// Coordinates extracts a geographic position from the entity's
// latitude/longitude attributes. Returns ok=false when either
// attribute is absent or not numeric.
func (s State) Coordinates() (coordinates.Geographic, bool) {
	lat := attrFloat(s.Attributes, "latitude")
	lon := attrFloat(s.Attributes, "longitude")
	if lat == nil || lon == nil {
		return coordinates.Geographic{}, false
	}
	pos := coordinates.Geographic{Latitude: *lat, Longitude: *lon}
	return pos, pos.Valid()
}

// AircraftList extracts the raw aircraft records from the named attribute.
// The attribute is expected to hold a sequence of objects; entries that are
// not objects are skipped, and absent fields inside an object decode to nil.
// A malformed entry never prevents the remaining entries from decoding.
func (s State) AircraftList(attribute string) []RawAircraft {
	seq, ok := s.Attributes[attribute].([]any)
	if !ok {
		return nil
	}

	records := make([]RawAircraft, 0, len(seq))
	for _, entry := range seq {
		bag, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, DecodeRawAircraft(bag))
	}
	return records
}

// attrFloat reads an attribute as a float, coercing the numeric
// representations JSON decoding can produce.
func attrFloat(attrs map[string]any, key string) *float64 {
	v, ok := attrs[key]
	if !ok {
		return nil
	}
	return toFloat(v)
}

func toFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return &f
		}
	}
	return nil
}

func toString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}
