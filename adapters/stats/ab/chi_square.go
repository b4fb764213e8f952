package ab

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/qichaozhao/ab-testing/domain/core"
	"github.com/qichaozhao/ab-testing/domain/experiment"
)

// chi-square categories: conversion / non-conversion
const degreesOfFreedom = 1

// TestResult pairs the chi-square statistic with its p-value
type TestResult struct {
	Statistic float64
	PValue    float64
}

// SignificanceTester compares the outcome-frequency distribution of an
// observed group against an expected group with a one-degree-of-freedom
// chi-square test.
type SignificanceTester struct{}

// NewSignificanceTester creates a new significance tester
func NewSignificanceTester() *SignificanceTester {
	return &SignificanceTester{}
}

// Test computes the power-divergence statistic Σ(O-E)²/E over the zero and
// one categories of the two groups, and the p-value from the chi-square
// distribution with 1 degree of freedom. The groups need not be equal
// length. Fails when any expected category count is zero.
func (t *SignificanceTester) Test(observed, expected experiment.Outcomes) (TestResult, error) {
	stat, err := t.statistic(observed, expected)
	if err != nil {
		return TestResult{}, err
	}

	chiDist := distuv.ChiSquared{K: degreesOfFreedom}
	return TestResult{
		Statistic: stat,
		PValue:    1 - chiDist.CDF(stat),
	}, nil
}

// statistic computes the raw chi-square statistic from category counts
func (t *SignificanceTester) statistic(observed, expected experiment.Outcomes) (float64, error) {
	fObs := observed.Frequencies().Counts()
	fExp := expected.Frequencies().Counts()

	stat := 0.0
	for i := range fExp {
		if fExp[i] == 0 {
			return 0, core.NewZeroExpectedCountError(i)
		}
		stat += math.Pow(fObs[i]-fExp[i], 2) / fExp[i]
	}
	return stat, nil
}
