package card

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtilvans/flightboard/pkg/coordinates"
	"github.com/mtilvans/flightboard/pkg/hass"
)

func f64(v float64) *float64 { return &v }

func zoneState(lat, lon float64) hass.StateMap {
	return hass.StateMap{
		"zone.home": hass.State{
			EntityID:   "zone.home",
			Attributes: map[string]any{"latitude": lat, "longitude": lon},
		},
	}
}

func TestDistanceServiceUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		zone  string
		state hass.StateMap
	}{
		{"no zone configured", "", zoneState(52.0, 4.0)},
		{"zone absent from state", "zone.work", zoneState(52.0, 4.0)},
		{"zone without coordinates", "zone.home", hass.StateMap{
			"zone.home": hass.State{EntityID: "zone.home"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDistanceService(tt.zone, tt.state, UnitKilometers)
			assert.False(t, svc.Available())
			assert.Nil(t, svc.DistanceTo(f64(52.1), f64(4.1)))
			assert.Nil(t, svc.BearingTo(f64(52.1), f64(4.1)))
		})
	}
}

func TestDistanceToMissingCoordinates(t *testing.T) {
	svc := NewDistanceService("zone.home", zoneState(52.0, 4.0), UnitKilometers)
	require.True(t, svc.Available())

	assert.Nil(t, svc.DistanceTo(nil, f64(4.1)))
	assert.Nil(t, svc.DistanceTo(f64(52.1), nil))
	assert.Nil(t, svc.DistanceTo(f64(math.NaN()), f64(4.1)))
	assert.Nil(t, svc.DistanceTo(f64(52.1), f64(math.NaN())))
}

func TestDistanceToCorrectness(t *testing.T) {
	svc := NewDistanceService("zone.home", zoneState(52.0, 4.0), UnitKilometers)

	same := svc.DistanceTo(f64(52.0), f64(4.0))
	require.NotNil(t, same)
	assert.InDelta(t, 0.0, *same, 1e-9)

	// Antipode of the reference point: half the great-circle circumference.
	anti := svc.DistanceTo(f64(-52.0), f64(-176.0))
	require.NotNil(t, anti)
	assert.InDelta(t, math.Pi*coordinates.EarthRadiusKm, *anti, 0.001)

	// Symmetry under swapping reference and target.
	swapped := NewDistanceService("zone.home", zoneState(52.1, 4.1), UnitKilometers)
	d1 := svc.DistanceTo(f64(52.1), f64(4.1))
	d2 := swapped.DistanceTo(f64(52.0), f64(4.0))
	require.NotNil(t, d1)
	require.NotNil(t, d2)
	assert.InDelta(t, *d1, *d2, 1e-9)
	assert.GreaterOrEqual(t, *d1, 0.0)
}

func TestDistanceUnitFixedPerInstance(t *testing.T) {
	km := NewDistanceService("zone.home", zoneState(52.0, 4.0), UnitKilometers)
	mi := NewDistanceService("zone.home", zoneState(52.0, 4.0), UnitMiles)

	dKm := km.DistanceTo(f64(52.5), f64(4.5))
	dMi := mi.DistanceTo(f64(52.5), f64(4.5))
	require.NotNil(t, dKm)
	require.NotNil(t, dMi)
	assert.InDelta(t, *dKm*coordinates.KmToMiles, *dMi, 1e-9)
	assert.Equal(t, UnitMiles, mi.Unit())
}

func TestBearingTo(t *testing.T) {
	svc := NewDistanceService("zone.home", zoneState(52.0, 4.0), UnitKilometers)

	north := svc.BearingTo(f64(53.0), f64(4.0))
	require.NotNil(t, north)
	assert.InDelta(t, 0.0, *north, 0.01)
}
