// Package rating rescales raw provider ratings onto a common quality scale.
package rating

const (
	DefaultCeiling = 5.0
	DefaultWeight  = 1.0
	DefaultOffset  = 0.0
)

// Options configures the normalizer.
// After min-max rescaling onto [0, Ceiling] every score is transformed to score*Weight - Offset.
type Options struct {
	Ceiling float64
	Weight  float64
	Offset  float64
}

// DefaultOptions returns a plain [0, 5] rescale with no affine adjustment.
func DefaultOptions() Options {
	return Options{
		Ceiling: DefaultCeiling,
		Weight:  DefaultWeight,
		Offset:  DefaultOffset,
	}
}

// Normalize maps the minimum score to 0 and the maximum to opts.Ceiling, interpolating
// linearly in between. When every score is equal all outputs are set to the ceiling.
func Normalize(scores []float64, opts Options) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		lo = min(lo, s)
		hi = max(hi, s)
	}

	span := hi - lo
	for i, s := range scores {
		scaled := opts.Ceiling
		if span > 0 {
			scaled = (s - lo) / span * opts.Ceiling
		}
		out[i] = scaled*opts.Weight - opts.Offset
	}

	return out
}
