package constants

// Directions providers
const (
	DirectionsProviderGoogle    = "google"
	DirectionsProviderOSRM      = "osrm"
	DirectionsProviderHaversine = "haversine"
	DirectionsProviderNetwork   = "network"
)

// Location providers
const (
	PlacesProviderGoogle = "google"
	PlacesProviderFile   = "file"
)

// Source labels stamped on locations
const (
	SourceGoogle = "google"
	SourceFile   = "file"
)
