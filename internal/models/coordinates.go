package models

import "math"

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// Coordinates represents a geographical point defined by its longitude and latitude (WGS84).
type Coordinates struct {
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
}

// DistanceTo returns the haversine great-circle distance to other, in meters.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	lat1 := c.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - c.Latitude) * math.Pi / 180
	dLon := (other.Longitude - c.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Rounding can push a slightly above 1 for antipodal points.
	a = math.Min(1, a)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(a))
}
