package coordinates

import "math"

// Constants for coordinate calculations
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// EarthRadiusKm is the Earth's mean radius in kilometers (WGS84)
	EarthRadiusKm = 6371.0

	// KmToMiles converts kilometers to statute miles
	KmToMiles = 0.621371

	// KmToNauticalMiles converts kilometers to nautical miles (1 nm = 1.852 km)
	KmToNauticalMiles = 1.0 / 1.852
)

// Geographic represents a position on Earth's surface.
// Uses the WGS84 coordinate system (same as GPS).
type Geographic struct {
	// Latitude in decimal degrees (-90 to +90)
	// Positive = North, Negative = South
	Latitude float64

	// Longitude in decimal degrees (-180 to +180)
	// Positive = East, Negative = West
	Longitude float64
}

// Valid reports whether the position holds usable coordinates.
// NaN in either component marks an absent field and makes the
// position unusable.
func (g Geographic) Valid() bool {
	return !math.IsNaN(g.Latitude) && !math.IsNaN(g.Longitude) &&
		g.Latitude >= -90 && g.Latitude <= 90 &&
		g.Longitude >= -180 && g.Longitude <= 180
}

// DistanceKilometers calculates the great-circle distance between two points.
// Uses the Haversine formula for accuracy over short and long distances.
// The result is always non-negative.
func DistanceKilometers(from, to Geographic) float64 {
	lat1Rad := from.Latitude * DegreesToRadians
	lon1Rad := from.Longitude * DegreesToRadians
	lat2Rad := to.Latitude * DegreesToRadians
	lon2Rad := to.Longitude * DegreesToRadians

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	// Haversine formula
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceMiles calculates the great-circle distance in statute miles.
func DistanceMiles(from, to Geographic) float64 {
	return DistanceKilometers(from, to) * KmToMiles
}

// DistanceNauticalMiles calculates the great-circle distance in nautical miles.
func DistanceNauticalMiles(from, to Geographic) float64 {
	return DistanceKilometers(from, to) * KmToNauticalMiles
}

// Bearing calculates the initial bearing (forward azimuth) from one point to another.
// Uses spherical trigonometry to calculate the bearing along a great circle.
// Returns bearing in degrees (0-360), where 0/360 = North, 90 = East, 180 = South, 270 = West.
func Bearing(from, to Geographic) float64 {
	lat1 := from.Latitude * DegreesToRadians
	lon1 := from.Longitude * DegreesToRadians
	lat2 := to.Latitude * DegreesToRadians
	lon2 := to.Longitude * DegreesToRadians

	dLon := lon2 - lon1
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	bearing := math.Atan2(y, x) * RadiansToDegrees

	// Normalize to 0-360
	if bearing < 0 {
		bearing += 360
	}

	return bearing
}

// NormalizeTrack ensures a ground track is in the range [0, 360).
func NormalizeTrack(track float64) float64 {
	t := math.Mod(track, 360.0)
	if t < 0 {
		t += 360.0
	}
	return t
}
