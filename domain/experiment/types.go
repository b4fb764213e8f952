package experiment

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/qichaozhao/ab-testing/domain/core"
)

// VarianceType selects the variance model used for sample sizing
type VarianceType string

const (
	// VarianceBinomial models per-subject conversion outcomes (0/1)
	VarianceBinomial VarianceType = "binomial"
	// VarianceContinuous models a continuous metric with known sigma
	VarianceContinuous VarianceType = "continuous"
)

// TestParams holds the statistical parameters of an A/B test design.
// Immutable after construction; Validate rejects unusable values before
// any computation runs.
type TestParams struct {
	Significance float64      // alpha, probability of a false positive
	Power        float64      // 1-beta, probability of detecting a true effect
	MDE          float64      // minimum detectable effect (absolute)
	BaselineRate float64      // p1, control-group conversion rate
	Sigma        float64      // metric std dev, continuous variance only
	Variance     VarianceType // binomial or continuous
	Tails        int          // 1 or 2
}

// Validate fails fast on any parameter the sizing formulas cannot accept
func (p TestParams) Validate() error {
	if p.Significance <= 0 || p.Significance >= 1 {
		return core.NewInvalidArgumentError("significance", "must be in (0, 1)")
	}
	if p.Power <= 0 || p.Power >= 1 {
		return core.NewInvalidArgumentError("power", "must be in (0, 1)")
	}
	if p.MDE == 0 || math.IsNaN(p.MDE) || math.IsInf(p.MDE, 0) {
		return core.NewInvalidArgumentError("mde", "must be nonzero and finite")
	}
	if p.Tails != 1 && p.Tails != 2 {
		return core.ErrInvalidTail
	}
	switch p.Variance {
	case VarianceBinomial:
		if p.BaselineRate < 0 || p.BaselineRate > 1 {
			return core.NewInvalidArgumentError("baseline rate", "must be in [0, 1]")
		}
	case VarianceContinuous:
		if p.Sigma <= 0 {
			return core.ErrMissingSigma
		}
	default:
		return core.ErrUnknownVarianceType
	}
	return nil
}

// Outcomes is an ordered sequence of binary per-subject results (0 or 1).
// Immutable once generated; length is fixed at creation.
type Outcomes []int

// NewOutcomes validates that every value is binary
func NewOutcomes(values []int) (Outcomes, error) {
	for _, v := range values {
		if v != 0 && v != 1 {
			return nil, core.ErrNonBinaryOutcome
		}
	}
	return Outcomes(values), nil
}

// Frequencies counts the zeros and ones in the sequence
func (o Outcomes) Frequencies() FrequencyPair {
	ones := 0
	for _, v := range o {
		if v == 1 {
			ones++
		}
	}
	return FrequencyPair{Zeros: len(o) - ones, Ones: ones}
}

// Floats converts the sequence for numeric libraries expecting float64
func (o Outcomes) Floats() []float64 {
	out := make([]float64, len(o))
	for i, v := range o {
		out[i] = float64(v)
	}
	return out
}

// CTR returns the empirical click-through rate (proportion of ones)
func (o Outcomes) CTR() (float64, error) {
	if len(o) == 0 {
		return 0, core.ErrEmptyOutcomeSequence
	}
	return stats.Mean(o.Floats())
}

// FrequencyPair holds the category counts of an outcome sequence
type FrequencyPair struct {
	Zeros int
	Ones  int
}

// Total returns the number of subjects behind the counts
func (f FrequencyPair) Total() int {
	return f.Zeros + f.Ones
}

// Counts returns the pair in category order (zeros first)
func (f FrequencyPair) Counts() [2]float64 {
	return [2]float64{float64(f.Zeros), float64(f.Ones)}
}

// Proportions returns the per-category shares of the total
func (f FrequencyPair) Proportions() [2]float64 {
	total := float64(f.Total())
	if total == 0 {
		return [2]float64{}
	}
	return [2]float64{float64(f.Zeros) / total, float64(f.Ones) / total}
}
