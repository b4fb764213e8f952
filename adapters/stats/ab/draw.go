package ab

import (
	"math/rand"

	"github.com/qichaozhao/ab-testing/domain/core"
	"github.com/qichaozhao/ab-testing/domain/experiment"
)

// SampleDrawer generates Bernoulli-distributed outcome sequences from an
// injected random source, so callers can seed draws deterministically.
type SampleDrawer struct {
	rng *rand.Rand
}

// NewSampleDrawer creates a drawer bound to the given random source
func NewSampleDrawer(rng *rand.Rand) *SampleDrawer {
	return &SampleDrawer{rng: rng}
}

// Draw returns n independent binary outcomes with success probability p.
// Each trial succeeds when a uniform value in [0,1) lands at or below p;
// the boundary is inclusive on the success side so seeded fixtures
// reproduce bit for bit.
func (d *SampleDrawer) Draw(p float64, n int) (experiment.Outcomes, error) {
	if p < 0 || p > 1 {
		return nil, core.NewInvalidArgumentError("p", "must be in [0, 1]")
	}
	if n < 0 {
		return nil, core.NewInvalidArgumentError("n", "must be nonnegative")
	}

	outcomes := make(experiment.Outcomes, n)
	for i := 0; i < n; i++ {
		if d.rng.Float64() <= p {
			outcomes[i] = 1
		}
	}
	return outcomes, nil
}
