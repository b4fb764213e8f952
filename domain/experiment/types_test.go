package experiment

import (
	"math"
	"testing"

	"github.com/qichaozhao/ab-testing/domain/core"
)

func TestTestParams_Validate(t *testing.T) {
	valid := TestParams{
		Significance: 0.05,
		Power:        0.8,
		MDE:          0.01,
		BaselineRate: 0.04,
		Variance:     VarianceBinomial,
		Tails:        2,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Valid params rejected: %v", err)
	}

	invalid := []struct {
		name   string
		mutate func(*TestParams)
	}{
		{"significance zero", func(p *TestParams) { p.Significance = 0 }},
		{"significance one", func(p *TestParams) { p.Significance = 1 }},
		{"power zero", func(p *TestParams) { p.Power = 0 }},
		{"mde zero", func(p *TestParams) { p.MDE = 0 }},
		{"mde nan", func(p *TestParams) { p.MDE = math.NaN() }},
		{"three tails", func(p *TestParams) { p.Tails = 3 }},
		{"unknown variance", func(p *TestParams) { p.Variance = "gaussianish" }},
		{"negative baseline", func(p *TestParams) { p.BaselineRate = -0.1 }},
		{"continuous without sigma", func(p *TestParams) { p.Variance = VarianceContinuous; p.Sigma = 0 }},
	}

	for _, tc := range invalid {
		params := valid
		tc.mutate(&params)
		if err := params.Validate(); !core.IsInvalidArgumentError(err) {
			t.Errorf("%s: expected invalid-argument error, got %v", tc.name, err)
		}
	}
}

func TestOutcomes_Frequencies(t *testing.T) {
	outcomes, err := NewOutcomes([]int{0, 1, 1, 0, 0, 1})
	if err != nil {
		t.Fatalf("NewOutcomes failed: %v", err)
	}

	freq := outcomes.Frequencies()
	if freq.Zeros != 3 || freq.Ones != 3 {
		t.Errorf("Expected 3/3 counts, got %d/%d", freq.Zeros, freq.Ones)
	}
	if freq.Total() != 6 {
		t.Errorf("Expected total 6, got %d", freq.Total())
	}

	props := freq.Proportions()
	if props[0] != 0.5 || props[1] != 0.5 {
		t.Errorf("Expected proportions 0.5/0.5, got %v", props)
	}
}

func TestOutcomes_CTR(t *testing.T) {
	outcomes := Outcomes{0, 0, 0, 1}
	ctr, err := outcomes.CTR()
	if err != nil {
		t.Fatalf("CTR failed: %v", err)
	}
	if ctr != 0.25 {
		t.Errorf("Expected CTR 0.25, got %f", ctr)
	}

	if _, err := (Outcomes{}).CTR(); err != core.ErrEmptyOutcomeSequence {
		t.Errorf("Expected empty-sequence error, got %v", err)
	}
}

func TestNewOutcomes_RejectsNonBinary(t *testing.T) {
	if _, err := NewOutcomes([]int{0, 1, 2}); !core.IsInvalidArgumentError(err) {
		t.Errorf("Expected invalid-argument error for value 2, got %v", err)
	}
}

func TestFrequencyPair_EmptyProportions(t *testing.T) {
	props := FrequencyPair{}.Proportions()
	if props[0] != 0 || props[1] != 0 {
		t.Errorf("Expected zero proportions for empty pair, got %v", props)
	}
}
