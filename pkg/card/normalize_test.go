package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtilvans/flightboard/pkg/aircraftdb"
	"github.com/mtilvans/flightboard/pkg/hass"
)

func str(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	dist := NewDistanceService("zone.home", zoneState(52.0, 4.0), UnitKilometers)

	raw := hass.RawAircraft{
		Hex:          " 484AA3 ",
		Flight:       str(" KL123 "),
		Registration: str("PH-BXA"),
		Altitude:     f64(3000),
		Speed:        f64(240),
		Track:        f64(365),
		Latitude:     f64(52.1),
		Longitude:    f64(4.1),
	}

	ac := Normalize(raw, dist)

	assert.Equal(t, "484aa3", ac.Hex)
	assert.Equal(t, "KL123", ac.Flight)
	assert.Equal(t, "PH-BXA", ac.Registration)
	require.NotNil(t, ac.Track)
	assert.Equal(t, 5.0, *ac.Track)
	require.NotNil(t, ac.Distance)
	assert.Greater(t, *ac.Distance, 0.0)
	assert.Equal(t, "flags/nl.svg", ac.Flag)
}

func TestNormalizeEmptyRecord(t *testing.T) {
	// A record with nothing in it must still normalize cleanly.
	dist := NewDistanceService("", nil, UnitKilometers)

	ac := Normalize(hass.RawAircraft{}, dist)

	assert.Empty(t, ac.Hex)
	assert.Empty(t, ac.Flight)
	assert.Empty(t, ac.Registration)
	assert.Nil(t, ac.Altitude)
	assert.Nil(t, ac.Speed)
	assert.Nil(t, ac.Track)
	assert.Nil(t, ac.Distance)
	assert.Empty(t, ac.Flag)
	assert.Equal(t, GenericIcon, ac.Icon)
}

func TestNormalizeFlagUnresolvable(t *testing.T) {
	dist := NewDistanceService("", nil, UnitKilometers)
	ac := Normalize(hass.RawAircraft{Hex: "ffffff"}, dist)
	assert.Empty(t, ac.Flag)
}

func TestDeriveIconFromCategory(t *testing.T) {
	dist := NewDistanceService("", nil, UnitKilometers)

	tests := []struct {
		category string
		want     string
	}{
		{"A3", "jet"},
		{"a3", "jet"}, // case-insensitive
		{"A7", "heli"},
		{"B1", "glider"},
		{"B2", "balloon"},
		{"C1", GenericIcon}, // unmapped category
	}

	for _, tt := range tests {
		ac := Normalize(hass.RawAircraft{Hex: "abc123", Category: str(tt.category)}, dist)
		assert.Equal(t, tt.want, ac.Icon, "category %s", tt.category)
	}
}

func TestDeriveIconFromTypeReference(t *testing.T) {
	aircraftdb.Preload()
	deadline := time.Now().Add(2 * time.Second)
	for !aircraftdb.Loaded() {
		if time.Now().After(deadline) {
			t.Fatal("type reference load did not complete")
		}
		time.Sleep(5 * time.Millisecond)
	}

	dist := NewDistanceService("", nil, UnitKilometers)
	ac := Normalize(hass.RawAircraft{Hex: "abc123", AircraftType: str("b738")}, dist)
	assert.Equal(t, "jet", ac.Icon)

	// Unknown designator falls through to category, then generic.
	ac = Normalize(hass.RawAircraft{Hex: "abc123", AircraftType: str("ZZZZ")}, dist)
	assert.Equal(t, GenericIcon, ac.Icon)
}

func TestFilterVisible(t *testing.T) {
	list := []Aircraft{
		{Hex: "aaa", Flight: "KL123"},
		{Hex: "bbb"},
		{Hex: "ccc", Flight: "BA456"},
	}

	hide := Config{Hide: HideOptions{WithOutFlight: true}}
	filtered := FilterVisible(list, hide)
	require.Len(t, filtered, 2)
	assert.Equal(t, "aaa", filtered[0].Hex)
	assert.Equal(t, "ccc", filtered[1].Hex)

	// Idempotence: filtering a filtered list changes nothing.
	assert.Equal(t, filtered, FilterVisible(filtered, hide))

	show := Config{Hide: HideOptions{WithOutFlight: false}}
	assert.Len(t, FilterVisible(list, show), 3)
}
