package pk

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Result is one complete evaluation: input echo, raw kinetics, and the
// classification. Created once per request, immutable, consumed by
// pk/report and the HTTP layer.
type Result struct {
	Input    PatientInput
	Kinetics Kinetics
	Evaluation
}

// FormattedValues carries the display strings for the printable report.
// All numerics are fixed to 2 decimal places here, at the boundary; the
// Kinetics fields stay full precision. HalfLife is empty for continuous
// infusion, which has no terminal half-life to report.
type FormattedValues struct {
	Cmax     string
	Cmin     string
	AUC      string
	HalfLife string
}

// Formatted renders the result's numerics for display.
func (r *Result) Formatted() FormattedValues {
	f := FormattedValues{
		Cmax: format2(r.Kinetics.Cmax),
		Cmin: format2(r.Kinetics.Cmin),
		AUC:  format2(r.Kinetics.AUC),
	}
	if !r.Kinetics.Profile.Continuous {
		f.HalfLife = format2(r.Kinetics.HalfLife)
	}
	return f
}

// TimePoints returns the curve's time axis.
func (r *Result) TimePoints() []float64 {
	ts := make([]float64, len(r.Kinetics.Curve))
	for i, p := range r.Kinetics.Curve {
		ts[i] = p.Time
	}
	return ts
}

// Concentrations returns the curve's concentration axis, index-aligned
// with TimePoints.
func (r *Result) Concentrations() []float64 {
	cs := make([]float64, len(r.Kinetics.Curve))
	for i, p := range r.Kinetics.Curve {
		cs[i] = p.Concentration
	}
	return cs
}

// format2 fixes a value to exactly two decimals, half-up.
func format2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Run executes the full pipeline for one request: validation, clearance
// estimation, simulation, evaluation. The only failure mode is
// ErrInvalidInput; all formulas are total over validated inputs.
func (e *Engine) Run(in PatientInput) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	clearance, err := EstimateClearance(in.Weight, in.AgeValue, in.AgeUnit, in.Creatinine)
	if err != nil {
		return nil, err
	}
	kinetics, err := Simulate(in, clearance)
	if err != nil {
		return nil, fmt.Errorf("simulating %s: %w", in.Antibiotic, err)
	}
	return &Result{
		Input:      in,
		Kinetics:   *kinetics,
		Evaluation: e.Evaluate(in, kinetics),
	}, nil
}
