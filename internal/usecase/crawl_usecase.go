package usecase

import (
	"context"

	"crawl/internal/domain/entity"
)

// PlanInput describes one crawl request
type PlanInput struct {
	Centre        entity.Coordinate
	RadiusKm      float64 // 0 uses the configured search radius
	LowestQuality bool    // Also plan for the worst-rated crawl instead of the best
}

// CrawlResult is the payload of a planned crawl
type CrawlResult struct {
	Best       *entity.Crawl     `json:"best"`
	Worst      *entity.Crawl     `json:"worst,omitempty"`
	Candidates []entity.Location `json:"candidates"`
	Considered int               `json:"routes_considered"`
}

// CrawlUsecase defines the interface for crawl planning use cases
type CrawlUsecase interface {
	// Plan searches for locations around the centre and returns the best and worst crawls
	// through them. Returns ErrNoItinerary when no route of valid length exists.
	Plan(ctx context.Context, input PlanInput) (*CrawlResult, error)
}
