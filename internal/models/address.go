package models

// ResolvedAddress is the best match returned by a geocoding provider for a free-text address.
type ResolvedAddress struct {
	Coordinates        // Coordinates of the match.
	Label       string `json:"label"` // Label is the provider's canonical form of the address.
}
