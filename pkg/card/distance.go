package card

import (
	"math"

	"github.com/mtilvans/flightboard/pkg/coordinates"
	"github.com/mtilvans/flightboard/pkg/hass"
)

// Unit is the distance unit a DistanceService reports in.
// One unit is fixed per service instance.
type Unit string

const (
	UnitKilometers Unit = "km"
	UnitMiles      Unit = "mi"
)

// DistanceService computes great-circle distance and bearing between a
// fixed reference point and aircraft positions. Constructed once per
// render cycle from the host's live zone state; unavailable when no
// reference point is configured or the zone exposes no coordinates.
type DistanceService struct {
	origin    coordinates.Geographic
	unit      Unit
	available bool
}

// NewDistanceService resolves the zone entity in the host state and
// builds a service around its coordinates. A service built from an empty
// zone name, an absent entity, or an entity without usable coordinates
// reports itself unavailable and returns nil for every distance.
func NewDistanceService(zone string, state hass.StateMap, unit Unit) *DistanceService {
	svc := &DistanceService{unit: unit}
	if zone == "" {
		return svc
	}
	entity, ok := state.Get(zone)
	if !ok {
		return svc
	}
	pos, ok := entity.Coordinates()
	if !ok {
		return svc
	}
	svc.origin = pos
	svc.available = true
	return svc
}

// Available reports whether distances can be computed at all.
func (s *DistanceService) Available() bool {
	return s.available
}

// Unit returns the service's fixed distance unit.
func (s *DistanceService) Unit() Unit {
	return s.unit
}

// DistanceTo returns the great-circle distance from the reference point
// to (lat, lon) in the service's unit. Returns nil when the service is
// unavailable or either coordinate is missing or NaN. The result is not
// rounded; formatting is the caller's concern.
func (s *DistanceService) DistanceTo(lat, lon *float64) *float64 {
	target, ok := s.target(lat, lon)
	if !ok {
		return nil
	}

	d := coordinates.DistanceKilometers(s.origin, target)
	if s.unit == UnitMiles {
		d *= coordinates.KmToMiles
	}
	return &d
}

// BearingTo returns the initial bearing in degrees from the reference
// point to (lat, lon), or nil under the same conditions as DistanceTo.
func (s *DistanceService) BearingTo(lat, lon *float64) *float64 {
	target, ok := s.target(lat, lon)
	if !ok {
		return nil
	}
	b := coordinates.Bearing(s.origin, target)
	return &b
}

func (s *DistanceService) target(lat, lon *float64) (coordinates.Geographic, bool) {
	if !s.available || lat == nil || lon == nil {
		return coordinates.Geographic{}, false
	}
	if math.IsNaN(*lat) || math.IsNaN(*lon) {
		return coordinates.Geographic{}, false
	}
	target := coordinates.Geographic{Latitude: *lat, Longitude: *lon}
	return target, target.Valid()
}
