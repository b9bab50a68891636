package models

// Location is either a point or missing. It is resolved once when a provider
// record is ingested so nothing downstream looks at raw geometry fields.
type Location struct {
	point Coordinates
	valid bool
}

// PointAt returns a Location holding c.
func PointAt(c Coordinates) Location {
	return Location{point: c, valid: true}
}

// MissingLocation returns a Location without a usable coordinate.
func MissingLocation() Location {
	return Location{}
}

// Point returns the coordinate and whether the location is usable.
func (l Location) Point() (Coordinates, bool) {
	return l.point, l.valid
}

// RawCandidate is an unprocessed facility-like record from a geodata source.
type RawCandidate struct {
	ID       int64             // ID is assigned by the provider.
	Location Location          // Location of the node, or of the centre of a way/relation.
	Tags     map[string]string // Tags as published by the provider.
}
