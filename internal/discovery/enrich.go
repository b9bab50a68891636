package discovery

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/creche/internal/models"
)

const (
	// UnnamedFacility labels candidates published without a name.
	UnnamedFacility = "Structure Petite Enfance"

	// WalkingSpeedKmh is the constant pace behind walking estimates. Estimates
	// are straight-line and therefore approximate.
	WalkingSpeedKmh = 4.5

	infoSearchURL     = "https://www.google.com/search"
	directionsBaseURL = "https://www.google.com/maps/dir/"
)

// Enrich derives a Facility from a candidate relative to origin. The candidate
// must carry a point location, which Dedupe guarantees.
func Enrich(origin models.ResolvedAddress, candidate models.RawCandidate) models.Facility {
	point, _ := candidate.Location.Point()
	name := FacilityName(candidate.Tags)
	distance := int(origin.Coordinates.DistanceTo(point))

	return models.Facility{
		ID:             candidate.ID,
		Name:           name,
		Classification: Classify(name),
		DistanceMeters: distance,
		WalkMinutes:    WalkMinutes(distance),
		Coordinates:    point,
		InfoLink:       InfoLink(name, origin.Label),
		DirectionsLink: DirectionsLink(origin.Coordinates, point),
	}
}

// FacilityName returns the name tag, or UnnamedFacility when it is absent or blank.
func FacilityName(tags map[string]string) string {
	if name := strings.TrimSpace(tags["name"]); name != "" {
		return name
	}

	return UnnamedFacility
}

// Classify reports Micro when name contains "micro" in any case.
func Classify(name string) models.Classification {
	if strings.Contains(strings.ToLower(name), "micro") {
		return models.ClassificationMicro
	}

	return models.ClassificationStandard
}

// WalkMinutes converts a distance in meters into rounded minutes at WalkingSpeedKmh.
func WalkMinutes(distanceMeters int) int {
	km := float64(distanceMeters) / 1000

	return int(math.Round(km / WalkingSpeedKmh * 60))
}

// InfoLink builds a web search for the facility name followed by the last
// word of the resolved label, usually the city.
func InfoLink(name, label string) string {
	terms := name
	if fields := strings.Fields(label); len(fields) > 0 {
		terms += " " + fields[len(fields)-1]
	}

	return infoSearchURL + "?" + url.Values{"q": {terms}}.Encode()
}

// DirectionsLink builds a walking directions URL from origin to destination.
func DirectionsLink(origin, destination models.Coordinates) string {
	params := url.Values{}
	params.Set("api", "1")
	params.Set("origin", formatLatLon(origin))
	params.Set("destination", formatLatLon(destination))
	params.Set("travelmode", "walking")

	return directionsBaseURL + "?" + params.Encode()
}

func formatLatLon(c models.Coordinates) string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
