// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Coordinate is a geographic position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point converts the coordinate to an orb point (lng, lat order).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// String formats the coordinate as "lat,lng", the form the directions APIs accept.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// CoordinateFromPoint converts an orb point back to a coordinate.
func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{Lat: p.Lat(), Lng: p.Lon()}
}

// VertexKey is the identity of a location inside a graph.
// Two locations with the same coordinate pair are the same vertex, whatever their names.
type VertexKey struct {
	Lat float64
	Lng float64
}

// Location is a point of interest that can be part of a crawl.
type Location struct {
	Coordinate
	Name string `json:"name"`

	RawRating float64 `json:"raw_rating"` // Rating as reported by the provider
	Quality   float64 `json:"quality"`    // Effective score used as the vertex weight

	Source     string  `json:"source"`      // Originating provider, e.g. "google"
	DistanceKm float64 `json:"distance_km"` // Distance from the search centre

	PlaceID          string `json:"place_id,omitempty"`
	Address          string `json:"address,omitempty"`
	UserRatingsTotal int    `json:"user_ratings_total,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	Website          string `json:"website,omitempty"`
	PhotoReference   string `json:"photo_reference,omitempty"`
	IncidentCount    int    `json:"incident_count,omitempty"`
}

// Key returns the vertex identity of the location.
func (l Location) Key() VertexKey {
	return VertexKey{Lat: l.Lat, Lng: l.Lng}
}

// SameVertex reports whether both locations share a coordinate pair.
func (l Location) SameVertex(other Location) bool {
	return l.Key() == other.Key()
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%.2f)", l.Name, l.RawRating)
}
