package ab

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/qichaozhao/ab-testing/domain/core"
	"github.com/qichaozhao/ab-testing/internal/testkit"
)

// TestEstimatePower_ReferenceScenario: the documented fixed-count run is a
// strong effect, so achieved power approaches 1.
func TestEstimatePower_ReferenceScenario(t *testing.T) {
	observed, expected := testkit.ReferenceGroups()

	power, err := NewPowerEstimator().EstimatePower(observed, expected)
	if err != nil {
		t.Fatalf("EstimatePower failed: %v", err)
	}
	if power < 0 || power > 1 {
		t.Fatalf("Power %f outside [0, 1]", power)
	}
	if power < 0.999 {
		t.Errorf("Expected power ~1.0 for the reference effect, got %f", power)
	}
}

// TestEstimatePower_NullEffect: a group against itself has zero
// noncentrality, so the rejection probability collapses to alpha.
func TestEstimatePower_NullEffect(t *testing.T) {
	group := testkit.FixedOutcomes(1000, 40)

	power, err := NewPowerEstimator().EstimatePower(group, group)
	if err != nil {
		t.Fatalf("EstimatePower failed: %v", err)
	}
	if math.Abs(power-0.05) > 1e-9 {
		t.Errorf("Expected power == alpha (0.05) under the null, got %f", power)
	}
}

func TestEstimatePower_Failures(t *testing.T) {
	observed := testkit.FixedOutcomes(100, 5)

	if _, err := NewPowerEstimator().EstimatePower(observed, testkit.FixedOutcomes(100, 0)); !core.IsDivisionByZeroError(err) {
		t.Errorf("Expected division-by-zero error for zero expected count, got %v", err)
	}
	if _, err := NewPowerEstimator().EstimatePower(nil, observed); err != core.ErrEmptyOutcomeSequence {
		t.Errorf("Expected empty-sequence error, got %v", err)
	}
	if _, err := NewPowerEstimatorAt(1.5); !core.IsInvalidArgumentError(err) {
		t.Errorf("Expected invalid-argument error for alpha=1.5, got %v", err)
	}
}

// TestNoncentralChiSquaredCDF_OneDFClosedForm cross-checks the series
// against the exact one-degree-of-freedom form: with lambda = mu^2, the
// noncentral chi-square is the square of a unit normal shifted by mu, so
// F(x) = Phi(sqrt(x)-mu) - Phi(-sqrt(x)-mu).
func TestNoncentralChiSquaredCDF_OneDFClosedForm(t *testing.T) {
	cases := []struct{ x, lambda float64 }{
		{0.5, 0.1},
		{1, 1},
		{3.84, 5},
		{3.84, 29.2},
		{10, 29.2},
		{50, 29.2},
		{120, 100},
	}

	for _, tc := range cases {
		mu := math.Sqrt(tc.lambda)
		want := distuv.UnitNormal.CDF(math.Sqrt(tc.x)-mu) - distuv.UnitNormal.CDF(-math.Sqrt(tc.x)-mu)
		got := noncentralChiSquaredCDF(tc.x, 1, tc.lambda)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("CDF(%f; 1, %f) = %g, closed form gives %g", tc.x, tc.lambda, got, want)
		}
	}
}

func TestNoncentralChiSquaredCDF_Edges(t *testing.T) {
	if got := noncentralChiSquaredCDF(0, 1, 5); got != 0 {
		t.Errorf("CDF at x=0 should be 0, got %f", got)
	}
	central := distuv.ChiSquared{K: 1}.CDF(3.84)
	if got := noncentralChiSquaredCDF(3.84, 1, 0); math.Abs(got-central) > 1e-12 {
		t.Errorf("Zero noncentrality should reduce to the central CDF: got %f, want %f", got, central)
	}

	prev := 0.0
	for _, x := range []float64{1, 5, 20, 40, 80} {
		got := noncentralChiSquaredCDF(x, 1, 29.2)
		if got < prev {
			t.Errorf("CDF not monotone at x=%f: %f < %f", x, got, prev)
		}
		prev = got
	}
}
