package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDQSDefaults(t *testing.T) {
	t.Run("perfect scores", func(t *testing.T) {
		dims := Scores{
			DimCompleteness: 100,
			DimUniqueness:   100,
			DimConsistency:  100,
			DimValidity:     100,
			DimTimeliness:   100,
		}
		result := ComputeDQS(dims, nil)
		assert.Equal(t, 100, result.DQS)
		assert.Equal(t, dims, result.Dimensions)
	})

	t.Run("weighted mix", func(t *testing.T) {
		dims := Scores{
			DimCompleteness: 100,
			DimUniqueness:   100,
			DimConsistency:  100,
			DimValidity:     100,
			DimTimeliness:   30,
		}
		// 0.85*100 + 0.15*30 = 89.5, rounds to 90.
		assert.Equal(t, 90, ComputeDQS(dims, nil).DQS)
	})

	t.Run("empty dimensions", func(t *testing.T) {
		result := ComputeDQS(Scores{}, nil)
		assert.Equal(t, 0, result.DQS)
		assert.Empty(t, result.Dimensions)

		result = ComputeDQS(nil, nil)
		assert.Equal(t, 0, result.DQS)
		assert.NotNil(t, result.Dimensions)
		assert.Empty(t, result.Dimensions)
	})

	t.Run("out of range scores count as zero", func(t *testing.T) {
		dims := Scores{
			DimCompleteness: 150,
			DimUniqueness:   -5,
			DimConsistency:  100,
			DimValidity:     100,
			DimTimeliness:   100,
		}
		// completeness and uniqueness drop to 0:
		// 0.15*100 + 0.25*100 + 0.15*100 = 55.
		assert.Equal(t, 55, ComputeDQS(dims, nil).DQS)
	})
}

func TestComputeDQSTimelinessRedistribution(t *testing.T) {
	dims := Scores{
		DimCompleteness: 80,
		DimUniqueness:   80,
		DimConsistency:  80,
		DimValidity:     80,
	}

	t.Run("equal scores stay put under default weights", func(t *testing.T) {
		assert.Equal(t, 80, ComputeDQS(dims, nil).DQS)
	})

	t.Run("equal scores stay put under any equal weights", func(t *testing.T) {
		weights := Weights{
			DimCompleteness: 2,
			DimUniqueness:   2,
			DimConsistency:  2,
			DimValidity:     2,
			DimTimeliness:   5,
		}
		assert.Equal(t, 80, ComputeDQS(dims, weights).DQS)
	})

	t.Run("redistribution preserves relative shares", func(t *testing.T) {
		skewed := Scores{
			DimCompleteness: 100,
			DimUniqueness:   0,
			DimConsistency:  0,
			DimValidity:     0,
		}
		// Default weights renormalized over the four required dims:
		// completeness share 0.25/0.85 = 0.2941, so DQS = 29.
		assert.Equal(t, 29, ComputeDQS(skewed, nil).DQS)
	})

	t.Run("timeliness out of range triggers redistribution", func(t *testing.T) {
		withBadTimeliness := copyScores(dims)
		withBadTimeliness[DimTimeliness] = 999
		assert.Equal(t, 80, ComputeDQS(withBadTimeliness, nil).DQS)
	})
}

func TestComputeDQSCustomWeights(t *testing.T) {
	dims := Scores{
		DimCompleteness: 60,
		DimUniqueness:   100,
		DimConsistency:  40,
		DimValidity:     80,
		DimTimeliness:   20,
	}

	t.Run("unnormalized weights match the normalized equivalent", func(t *testing.T) {
		doubled := Weights{
			DimCompleteness: 0.50,
			DimUniqueness:   0.40,
			DimConsistency:  0.30,
			DimValidity:     0.50,
			DimTimeliness:   0.30,
		}
		assert.Equal(t, ComputeDQS(dims, DefaultWeights()).DQS, ComputeDQS(dims, doubled).DQS)
	})

	t.Run("omitted weight contributes nothing and is not redistributed", func(t *testing.T) {
		weights := Weights{DimCompleteness: 1}
		assert.Equal(t, 60, ComputeDQS(dims, weights).DQS)
	})

	t.Run("all zero weights yield zero", func(t *testing.T) {
		result := ComputeDQS(dims, Weights{})
		assert.Equal(t, 0, result.DQS)
	})

	t.Run("negative weights count as zero", func(t *testing.T) {
		weights := Weights{
			DimCompleteness: 1,
			DimUniqueness:   -3,
		}
		assert.Equal(t, 60, ComputeDQS(dims, weights).DQS)
	})
}

func TestComputeDQSDoesNotMutateInput(t *testing.T) {
	dims := Scores{DimCompleteness: 70, DimValidity: 90}
	weights := Weights{DimCompleteness: 0.5, DimValidity: 0.5}

	first := ComputeDQS(dims, weights)
	second := ComputeDQS(dims, weights)

	require.Equal(t, first, second)
	assert.Equal(t, Scores{DimCompleteness: 70, DimValidity: 90}, dims)
	assert.Equal(t, Weights{DimCompleteness: 0.5, DimValidity: 0.5}, weights)

	// The result holds a copy, not the caller's map.
	first.Dimensions[DimCompleteness] = 0
	assert.Equal(t, 70, dims[DimCompleteness])
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range DefaultWeights() {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, weightTolerance)
}
