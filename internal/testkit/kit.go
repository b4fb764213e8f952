package testkit

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/qichaozhao/ab-testing/domain/experiment"
)

// Reference run counts: a 5000-subject control at 4.24% against a
// 5000-subject treatment at 5.78%, the documented strong-effect scenario.
const (
	ReferenceGroupSize    = 5000
	ReferenceExpectedOnes = 212 // 4.24%
	ReferenceObservedOnes = 289 // 5.78%
)

// FixedOutcomes builds an outcome sequence with exactly the given number of
// ones. Tests use fixed counts rather than re-drawn randomness so reference
// results stay deterministic.
func FixedOutcomes(n, ones int) experiment.Outcomes {
	outcomes := make(experiment.Outcomes, n)
	for i := 0; i < ones; i++ {
		outcomes[i] = 1
	}
	return outcomes
}

// ReferenceGroups returns the observed and expected groups of the reference run
func ReferenceGroups() (observed, expected experiment.Outcomes) {
	observed = FixedOutcomes(ReferenceGroupSize, ReferenceObservedOnes)
	expected = FixedOutcomes(ReferenceGroupSize, ReferenceExpectedOnes)
	return observed, expected
}

// StaticOutcomeReader implements the OutcomeReaderPort interface over fixed
// in-memory columns
type StaticOutcomeReader map[string]experiment.Outcomes

// ReadOutcomes returns the requested fixture columns
func (r StaticOutcomeReader) ReadOutcomes(columns ...string) (map[string]experiment.Outcomes, error) {
	out := make(map[string]experiment.Outcomes, len(columns))
	for _, col := range columns {
		outcomes, ok := r[col]
		if !ok {
			return nil, fmt.Errorf("column %q not found", col)
		}
		out[col] = outcomes
	}
	return out, nil
}

// RNGAdapter implements the RNGPort interface for testing
type RNGAdapter struct{}

// SeededStream creates a deterministic random number generator for a named operation
func (r *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed)), nil
}

// Stream ignores the run identifier so a test's draws depend only on the
// seed and the group name
func (r *RNGAdapter) Stream(ctx context.Context, runID, group string, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	for _, c := range group {
		seed += int64(c)
	}
	return rand.New(rand.NewSource(seed)), nil
}
