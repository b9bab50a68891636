package models

// Classification separates micro-crèches from other childcare structures.
type Classification string

const (
	// ClassificationStandard is any facility not recognised as a micro-crèche.
	ClassificationStandard Classification = "Standard"
	// ClassificationMicro is a facility whose name mentions "micro".
	ClassificationMicro Classification = "Micro"
)

// Facility is an enriched childcare location relative to a search origin.
type Facility struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
	DistanceMeters int            `json:"distance_meters"`
	WalkMinutes    int            `json:"walk_minutes"`
	Coordinates    Coordinates    `json:"coordinates"`
	InfoLink       string         `json:"info_link"`
	DirectionsLink string         `json:"directions_link"`
}
