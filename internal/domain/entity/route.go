package entity

import "time"

// Route is a simple path through the graph together with its accumulated weight.
// Routes are produced by the enumerator and never mutated afterwards.
type Route struct {
	Stops  []Location
	Weight float64
}

// Len returns the number of stops on the route.
func (r Route) Len() int {
	return len(r.Stops)
}

// Stop is the compact representation of a location inside a crawl payload.
type Stop struct {
	Name   string     `json:"name"`
	Loc    Coordinate `json:"loc"`
	Rating float64    `json:"rating"`
}

// StopFromLocation builds the payload stop for a location.
func StopFromLocation(loc Location) Stop {
	return Stop{
		Name:   loc.Name,
		Loc:    loc.Coordinate,
		Rating: loc.RawRating,
	}
}

// Segment is one walking leg between two consecutive stops.
type Segment struct {
	From           Stop          `json:"start_node"`
	To             Stop          `json:"end_node"`
	Duration       time.Duration `json:"-"`
	DurationMin    int           `json:"time"`     // whole minutes
	DistanceMeters int           `json:"distance"` // meters
	Path           []Coordinate  `json:"route"`
}

// Crawl is a selected route with its per-segment walking directions.
type Crawl struct {
	Stops               []Stop    `json:"stops"`
	Segments            []Segment `json:"segments"`
	Weight              float64   `json:"weight"`
	TotalDurationMin    int       `json:"total_time"`
	TotalDistanceMeters int       `json:"total_distance"`
}
