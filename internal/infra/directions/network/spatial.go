package network

import (
	"context"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// GridIndex is a grid-based nearest-node index over the network nodes
type GridIndex struct {
	nodes       []Node
	grid        map[gridKey][]int // grid cell -> node indices
	cellSizeKm  float64
	cellSizeLat float64 // cell size in latitude degrees
	cellSizeLng float64 // cell size in longitude degrees
	minLat      float64
	maxLat      float64
	minLng      float64
	maxLng      float64
}

type gridKey struct {
	latCell int
	lngCell int
}

const kmPerDegreeLat = 111.32

// NewGridIndex creates an empty index with cells of roughly cellSizeKm on each side
func NewGridIndex(cellSizeKm float64) *GridIndex {
	if cellSizeKm <= 0 {
		cellSizeKm = 0.25
	}

	return &GridIndex{
		grid:       make(map[gridKey][]int),
		cellSizeKm: cellSizeKm,
	}
}

// Build indexes nodes. Longitude cells are scaled to the latitude of the extract's midpoint.
func (g *GridIndex) Build(nodes []Node) {
	g.nodes = nodes
	g.grid = make(map[gridKey][]int)

	if len(nodes) == 0 {
		return
	}

	g.minLat, g.maxLat = nodes[0].Lat, nodes[0].Lat
	g.minLng, g.maxLng = nodes[0].Lng, nodes[0].Lng

	for _, node := range nodes {
		g.minLat = min(g.minLat, node.Lat)
		g.maxLat = max(g.maxLat, node.Lat)
		g.minLng = min(g.minLng, node.Lng)
		g.maxLng = max(g.maxLng, node.Lng)
	}

	midLat := (g.minLat + g.maxLat) / 2 * math.Pi / 180
	g.cellSizeLat = g.cellSizeKm / kmPerDegreeLat
	g.cellSizeLng = g.cellSizeKm / (kmPerDegreeLat * math.Max(math.Cos(midLat), 0.01))

	for idx, node := range nodes {
		key := g.key(node.Lat, node.Lng)
		g.grid[key] = append(g.grid[key], idx)
	}
}

// Nearest returns the index of the node closest to (lat, lng), or false when the index is empty
func (g *GridIndex) Nearest(lat, lng float64) (int, bool) {
	if len(g.nodes) == 0 {
		return -1, false
	}

	centre := g.key(lat, lng)
	idx, _ := g.search(context.Background(), lat, lng, centre, g.maxSearchRing(centre))

	return idx, idx >= 0
}

// NearestWithin is Nearest restricted to nodes within maxKm. Points whose distance to the
// bounding box already exceeds maxKm are rejected without scanning, and the ring search
// stops at ctx cancellation.
func (g *GridIndex) NearestWithin(ctx context.Context, lat, lng, maxKm float64) (int, bool, error) {
	if len(g.nodes) == 0 || maxKm <= 0 {
		return -1, false, nil
	}
	if g.boundsDistanceKm(lat, lng) > maxKm {
		return -1, false, nil
	}

	centre := g.key(lat, lng)
	rings := min(g.maxSearchRing(centre), int(math.Ceil(maxKm/(g.cellSizeKm*0.9)))+1)

	idx, err := g.search(ctx, lat, lng, centre, rings)
	if err != nil {
		return -1, false, err
	}

	return idx, idx >= 0, nil
}

func (g *GridIndex) search(ctx context.Context, lat, lng float64, centre gridKey, rings int) (int, error) {
	bestIdx := -1
	bestDistSq := math.MaxFloat64

	for ring := 0; ring <= rings; ring++ {
		if err := ctx.Err(); err != nil {
			return -1, err
		}

		g.searchRing(lat, lng, centre, ring, &bestIdx, &bestDistSq)

		if bestIdx >= 0 && g.ringLowerBoundSq(ring+1) >= bestDistSq {
			break
		}
	}

	return bestIdx, nil
}

// boundsDistanceKm is the great-circle distance from (lat, lng) to the node bounding box,
// 0 inside it. No node is closer than this.
func (g *GridIndex) boundsDistanceKm(lat, lng float64) float64 {
	clamped := orb.Point{
		math.Min(math.Max(lng, g.minLng), g.maxLng),
		math.Min(math.Max(lat, g.minLat), g.maxLat),
	}

	return geo.DistanceHaversine(orb.Point{lng, lat}, clamped) / 1000
}

// Node returns the node at idx
func (g *GridIndex) Node(idx int) (Node, bool) {
	if idx < 0 || idx >= len(g.nodes) {
		return Node{}, false
	}

	return g.nodes[idx], true
}

// Size returns the number of indexed nodes
func (g *GridIndex) Size() int {
	return len(g.nodes)
}

func (g *GridIndex) key(lat, lng float64) gridKey {
	return gridKey{
		latCell: int(math.Floor((lat - g.minLat) / g.cellSizeLat)),
		lngCell: int(math.Floor((lng - g.minLng) / g.cellSizeLng)),
	}
}

// searchRing scans the cells on the perimeter of the ring around centre
func (g *GridIndex) searchRing(lat, lng float64, centre gridKey, ring int, bestIdx *int, bestDistSq *float64) {
	scan := func(dLat, dLng int) {
		cell := gridKey{latCell: centre.latCell + dLat, lngCell: centre.lngCell + dLng}
		for _, idx := range g.grid[cell] {
			node := g.nodes[idx]
			if distSq := squaredDistance(lat, lng, node.Lat, node.Lng); distSq < *bestDistSq {
				*bestDistSq = distSq
				*bestIdx = idx
			}
		}
	}

	if ring == 0 {
		scan(0, 0)

		return
	}

	// Top and bottom rows, then the side columns without their corners
	for dLng := -ring; dLng <= ring; dLng++ {
		scan(-ring, dLng)
		scan(ring, dLng)
	}
	for dLat := -ring + 1; dLat < ring; dLat++ {
		scan(dLat, -ring)
		scan(dLat, ring)
	}
}

// maxSearchRing is the ring that covers the whole bounding box from centre, which may lie outside it
func (g *GridIndex) maxSearchRing(centre gridKey) int {
	latCells := int(math.Ceil((g.maxLat - g.minLat) / g.cellSizeLat))
	lngCells := int(math.Ceil((g.maxLng - g.minLng) / g.cellSizeLng))

	reach := max(latCells, lngCells)
	reach = max(reach, abs(centre.latCell)+latCells, abs(centre.lngCell)+lngCells)

	return reach + 1
}

// ringLowerBoundSq is the smallest squared distance from any point in the centre cell to
// a cell in the given ring. It is shrunk by 10% since longitude scaling varies over the extract.
func (g *GridIndex) ringLowerBoundSq(ring int) float64 {
	if ring <= 1 {
		return 0
	}

	gap := float64(ring-1) * math.Min(g.cellSizeLat, g.cellSizeLng) * 0.9

	return gap * gap
}

// squaredDistance compares nodes in degree space, scaled so longitude is not overweighted
func squaredDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat2 - lat1
	dLng := (lng2 - lng1) * math.Cos((lat1+lat2)/2*math.Pi/180)

	return dLat*dLat + dLng*dLng
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
