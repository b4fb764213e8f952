package app

import (
	"context"
	"fmt"
	"time"

	"github.com/qichaozhao/ab-testing/adapters/stats/ab"
	"github.com/qichaozhao/ab-testing/domain/core"
	"github.com/qichaozhao/ab-testing/domain/experiment"
	"github.com/qichaozhao/ab-testing/ports"
)

// ExperimentService runs the full A/B evaluation workflow: size the test,
// draw both groups, then compute significance and achieved power.
type ExperimentService struct {
	estimator *ab.SampleSizeEstimator
	tester    *ab.SignificanceTester
	power     *ab.PowerEstimator
	rngPort   ports.RNGPort
}

// ExperimentRequest defines the inputs for a deterministic simulated experiment
type ExperimentRequest struct {
	Params        experiment.TestParams
	TreatmentRate float64               // true conversion rate of the treatment group
	Seed          int64                 // base seed for both group draws
	RunID         core.RunID            // optional, will be generated if empty
	SampleSize    int                   // optional override; 0 sizes from Params
}

// ExperimentReport contains the complete output of one experiment run
type ExperimentReport struct {
	RunID         core.RunID `json:"run_id"`
	RequiredSize  float64    `json:"required_size"`
	DrawnPerGroup int        `json:"drawn_per_group"`
	ControlCTR    float64    `json:"control_ctr"`
	TreatmentCTR  float64    `json:"treatment_ctr"`
	Statistic     float64    `json:"statistic"`
	PValue        float64    `json:"p_value"`
	AchievedPower float64    `json:"achieved_power"`
	RuntimeMs     int64      `json:"runtime_ms"`
}

// NewExperimentService creates an experiment service
func NewExperimentService(rngPort ports.RNGPort) *ExperimentService {
	return &ExperimentService{
		estimator: ab.NewSampleSizeEstimator(),
		tester:    ab.NewSignificanceTester(),
		power:     ab.NewPowerEstimator(),
		rngPort:   rngPort,
	}
}

// Run executes the sizing, drawing and evaluation stages in sequence
func (s *ExperimentService) Run(ctx context.Context, req ExperimentRequest) (*ExperimentReport, error) {
	startTime := time.Now()

	runID := req.RunID
	if runID == "" {
		runID = core.RunID(core.NewID())
	}

	required, err := s.estimator.Estimate(req.Params)
	if err != nil {
		return nil, fmt.Errorf("sizing failed: %w", err)
	}

	n := req.SampleSize
	if n == 0 {
		n = int(required) + 1
	}

	control, err := s.drawGroup(ctx, runID, "control", req.Params.BaselineRate, n, req.Seed)
	if err != nil {
		return nil, err
	}
	treatment, err := s.drawGroup(ctx, runID, "treatment", req.TreatmentRate, n, req.Seed)
	if err != nil {
		return nil, err
	}

	report, err := s.Evaluate(treatment, control)
	if err != nil {
		return nil, err
	}

	report.RunID = runID
	report.RequiredSize = required
	report.DrawnPerGroup = n
	report.RuntimeMs = time.Since(startTime).Milliseconds()
	return report, nil
}

// Evaluate computes CTRs, significance and power for already-drawn groups.
// The observed (treatment) group is tested against the expected (control)
// group's frequency distribution.
func (s *ExperimentService) Evaluate(observed, expected experiment.Outcomes) (*ExperimentReport, error) {
	observedCTR, err := observed.CTR()
	if err != nil {
		return nil, fmt.Errorf("observed group: %w", err)
	}
	expectedCTR, err := expected.CTR()
	if err != nil {
		return nil, fmt.Errorf("expected group: %w", err)
	}

	result, err := s.tester.Test(observed, expected)
	if err != nil {
		return nil, fmt.Errorf("significance test failed: %w", err)
	}

	power, err := s.power.EstimatePower(observed, expected)
	if err != nil {
		return nil, fmt.Errorf("power estimation failed: %w", err)
	}

	return &ExperimentReport{
		ControlCTR:    expectedCTR,
		TreatmentCTR:  observedCTR,
		Statistic:     result.Statistic,
		PValue:        result.PValue,
		AchievedPower: power,
	}, nil
}

// EvaluateRecorded loads recorded outcome columns through the reader port
// and evaluates them like a freshly drawn experiment
func (s *ExperimentService) EvaluateRecorded(reader ports.OutcomeReaderPort, observedColumn, expectedColumn string) (*ExperimentReport, error) {
	groups, err := reader.ReadOutcomes(observedColumn, expectedColumn)
	if err != nil {
		return nil, fmt.Errorf("loading outcomes: %w", err)
	}
	return s.Evaluate(groups[observedColumn], groups[expectedColumn])
}

// drawGroup draws one group's outcomes from a run-scoped RNG stream
func (s *ExperimentService) drawGroup(ctx context.Context, runID core.RunID, group string, rate float64, n int, seed int64) (experiment.Outcomes, error) {
	rng, err := s.rngPort.Stream(ctx, runID.String(), group, seed)
	if err != nil {
		return nil, fmt.Errorf("rng stream for %s group: %w", group, err)
	}

	outcomes, err := ab.NewSampleDrawer(rng).Draw(rate, n)
	if err != nil {
		return nil, fmt.Errorf("drawing %s group: %w", group, err)
	}
	return outcomes, nil
}
