package hass

// RawAircraft is one tracked aircraft as reported in the host entity's
// attribute bag. Every field except Hex is optional; nil marks an absent
// or unusable value.
type RawAircraft struct {
	// Hex is the 24-bit ICAO transponder address (e.g. "484aa3")
	Hex string

	// Flight is the callsign/flight number
	Flight *string

	// Registration is the airframe registration (e.g. "PH-BXA")
	Registration *string

	// Altitude in feet
	Altitude *float64

	// Speed is ground speed in knots
	Speed *float64

	// Track is the ground track in degrees (0-360)
	Track *float64

	// Latitude in decimal degrees
	Latitude *float64

	// Longitude in decimal degrees
	Longitude *float64

	// Category is the ADS-B emitter category (A0-D7)
	Category *string

	// AircraftType is the ICAO type designator (e.g. "B738")
	AircraftType *string
}

// DecodeRawAircraft decodes one attribute-bag entry into a RawAircraft.
// The decode is total: unexpected types and absent keys produce nil
// fields, never an error. Numeric fields accept both JSON numbers and
// numeric strings because host integrations are inconsistent about
// attribute typing.
func DecodeRawAircraft(bag map[string]any) RawAircraft {
	var ac RawAircraft
	if hex := toString(bag["hex"]); hex != nil {
		ac.Hex = *hex
	}
	ac.Flight = toString(bag["flight"])
	ac.Registration = toString(bag["registration"])
	ac.Altitude = toFloat(bag["altitude"])
	ac.Speed = toFloat(bag["speed"])
	ac.Track = toFloat(bag["track"])
	ac.Latitude = toFloat(bag["latitude"])
	ac.Longitude = toFloat(bag["longitude"])
	ac.Category = toString(bag["category"])
	ac.AircraftType = toString(bag["aircraft_type"])
	return ac
}
