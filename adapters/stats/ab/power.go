package ab

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/qichaozhao/ab-testing/domain/core"
	"github.com/qichaozhao/ab-testing/domain/experiment"
)

// defaultAlpha is the rejection threshold used when the caller does not
// supply one; it matches the conventional 5% significance level.
const defaultAlpha = 0.05

// PowerEstimator approximates the statistical power achieved by an observed
// effect size and sample size via the noncentral chi-square distribution.
type PowerEstimator struct {
	alpha float64
}

// NewPowerEstimator creates a power estimator at the default 0.05 level
func NewPowerEstimator() *PowerEstimator {
	return &PowerEstimator{alpha: defaultAlpha}
}

// NewPowerEstimatorAt creates a power estimator at a caller-chosen level
func NewPowerEstimatorAt(alpha float64) (*PowerEstimator, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, core.NewInvalidArgumentError("alpha", "must be in (0, 1)")
	}
	return &PowerEstimator{alpha: alpha}, nil
}

// EstimatePower returns the probability of rejecting the null hypothesis
// given the divergence between the observed and expected groups.
//
// The noncentrality parameter is lambda = n * Σ (oᵢ-eᵢ)²/eᵢ over the
// category proportions, with n the observed group's length. The groups are
// assumed equal-sized; for equal groups lambda coincides with the
// count-based chi-square statistic. Power is the upper tail of the
// noncentral chi-square distribution (1 df, noncentrality lambda) beyond
// the central chi-square critical value at the estimator's alpha.
func (e *PowerEstimator) EstimatePower(observed, expected experiment.Outcomes) (float64, error) {
	if len(observed) == 0 || len(expected) == 0 {
		return 0, core.ErrEmptyOutcomeSequence
	}

	pObs := observed.Frequencies().Proportions()
	pExp := expected.Frequencies().Proportions()

	divergence := 0.0
	for i := range pExp {
		if pExp[i] == 0 {
			return 0, core.NewZeroExpectedCountError(i)
		}
		divergence += math.Pow(pObs[i]-pExp[i], 2) / pExp[i]
	}

	lambda := float64(len(observed)) * divergence
	critical := distuv.ChiSquared{K: degreesOfFreedom}.Quantile(1 - e.alpha)

	power := 1 - noncentralChiSquaredCDF(critical, degreesOfFreedom, lambda)
	return math.Min(math.Max(power, 0), 1), nil
}

// noncentralChiSquaredCDF evaluates the CDF of the noncentral chi-square
// distribution with k degrees of freedom and noncentrality lambda at x.
//
// gonum's distuv has no noncentral chi-square, so the CDF is built from its
// standard mixture representation: a Poisson(lambda/2)-weighted sum of
// central chi-square CDFs with k+2j degrees of freedom. Weights are
// computed in log space and the summation starts at the Poisson mode so
// large noncentralities neither underflow nor require the full series.
func noncentralChiSquaredCDF(x, k, lambda float64) float64 {
	if x <= 0 {
		return 0
	}
	if lambda <= 0 {
		return distuv.ChiSquared{K: k}.CDF(x)
	}

	half := lambda / 2
	logWeight := func(j int) float64 {
		lg, _ := math.Lgamma(float64(j) + 1)
		return -half + float64(j)*math.Log(half) - lg
	}
	term := func(j int) (weight, contribution float64) {
		w := math.Exp(logWeight(j))
		return w, w * distuv.ChiSquared{K: k + 2*float64(j)}.CDF(x)
	}

	const tol = 1e-16
	mode := int(half)

	sum := 0.0
	// Downward from the mode; weights decay monotonically in this direction.
	for j := mode; j >= 0; j-- {
		w, c := term(j)
		sum += c
		if w < tol {
			break
		}
	}
	// Upward past the mode until the remaining Poisson mass is negligible.
	for j := mode + 1; ; j++ {
		w, c := term(j)
		sum += c
		if w < tol {
			break
		}
	}

	return math.Min(math.Max(sum, 0), 1)
}
