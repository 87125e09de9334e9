package scoring

import "math"

// Dimension names shared by scores, weights, and reports.
const (
	DimCompleteness = "completeness"
	DimUniqueness   = "uniqueness"
	DimConsistency  = "consistency"
	DimValidity     = "validity"
	DimTimeliness   = "timeliness"
)

// requiredDims are always scored; timeliness is the only optional one.
var requiredDims = []string{DimCompleteness, DimUniqueness, DimConsistency, DimValidity}

// Scores maps dimension name to an integer score in [0,100].
type Scores map[string]int

// Weights maps dimension name to a non-negative relative weight. Weights
// need not sum to 1; the composite engine normalizes.
type Weights map[string]float64

// DefaultWeights returns the stock weight distribution.
func DefaultWeights() Weights {
	return Weights{
		DimCompleteness: 0.25,
		DimUniqueness:   0.20,
		DimConsistency:  0.15,
		DimValidity:     0.25,
		DimTimeliness:   0.15,
	}
}

// Composite is the result of one weighting run. It is a plain value,
// never mutated after construction.
type Composite struct {
	Dimensions Scores `json:"dimensions" yaml:"dimensions"`
	DQS        int    `json:"dqs" yaml:"dqs"`
}

// weightTolerance is how far a weight total may drift from 1.0 before the
// engine renormalizes.
const weightTolerance = 0.001

// ComputeDQS folds dimension scores into a single Data Quality Score.
// The contract is "always returns a number": missing or out-of-range
// required scores count as 0, a nil weight map means defaults, an
// all-zero weight map yields DQS 0, and nothing ever errors.
//
// Timeliness is special-cased: when the score map carries no usable
// timeliness value but its weight is configured, that weight is folded
// back into the four required weights in proportion to their existing
// shares. Other absent weights are simply 0; only timeliness
// redistributes.
func ComputeDQS(dims Scores, weights Weights) Composite {
	if weights == nil {
		weights = DefaultWeights()
	}

	vals := make(map[string]float64, len(requiredDims)+1)
	for _, d := range requiredDims {
		if v, ok := dims[d]; ok && v >= 0 && v <= 100 {
			vals[d] = float64(v)
		} else {
			vals[d] = 0
		}
	}

	tv, ok := dims[DimTimeliness]
	hasTimeliness := ok && tv >= 0 && tv <= 100

	active := make(map[string]float64, len(requiredDims)+1)
	for _, d := range requiredDims {
		active[d] = nonNegative(weights[d])
	}
	timelinessWeight := nonNegative(weights[DimTimeliness])
	if hasTimeliness {
		vals[DimTimeliness] = float64(tv)
		active[DimTimeliness] = timelinessWeight
	}

	total := 0.0
	for _, w := range active {
		total += w
	}

	// Fold an unused timeliness weight back into the required dimensions,
	// scaled by their relative shares.
	if !hasTimeliness && timelinessWeight > 0 && total > 0 {
		scale := (total + timelinessWeight) / total
		for d := range active {
			active[d] *= scale
		}
		total += timelinessWeight
	}

	result := Composite{Dimensions: copyScores(dims)}
	if total == 0 {
		return result
	}
	if math.Abs(total-1) > weightTolerance {
		for d := range active {
			active[d] /= total
		}
	}

	weighted := 0.0
	for d, w := range active {
		weighted += vals[d] * w
	}
	result.DQS = clampScore(roundScore(weighted))
	return result
}

func nonNegative(w float64) float64 {
	if w < 0 {
		return 0
	}
	return w
}

func copyScores(s Scores) Scores {
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
