package pk

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every precondition failure (non-positive
// weight, creatinine, dose, or interval, or an unknown antibiotic).
// Callers match it with errors.Is and present the message to the user.
var ErrInvalidInput = errors.New("invalid input")

// AgeUnit selects how PatientInput.AgeValue is interpreted.
type AgeUnit string

const (
	AgeDays   AgeUnit = "days"
	AgeMonths AgeUnit = "months"
	AgeYears  AgeUnit = "years"
)

// Antibiotic identifies a drug regimen supported by the engine.
type Antibiotic string

const (
	VancomycinIntermittent Antibiotic = "vancomycin_intermittent"
	VancomycinContinuous   Antibiotic = "vancomycin_continuous"
	Gentamicin             Antibiotic = "gentamicin"
	Amikacin               Antibiotic = "amikacin"
	Tobramycin             Antibiotic = "tobramycin"
)

// LevelType describes when a measured serum level was drawn relative to the
// dosing interval.
type LevelType string

const (
	LevelPeak   LevelType = "peak"
	LevelTrough LevelType = "trough"
	LevelRandom LevelType = "random"
)

// PatientInput groups everything one evaluation request needs. Name and
// RecordID are metadata echoed into the report; they are never persisted.
//
// MeasuredLevel, LevelType, and RandomTime describe an optional measured
// serum level overlaid on the curve. RandomTime is required only when
// LevelType is LevelRandom; if it is missing or negative the overlay point
// is silently omitted (the measurement never feeds back into the kinetics).
type PatientInput struct {
	Name     string
	RecordID string

	Weight     float64 // kg
	AgeValue   float64
	AgeUnit    AgeUnit
	Creatinine float64 // mg/dL

	Antibiotic Antibiotic
	Dose       float64 // mg per administration (mg/day for continuous infusion)
	Interval   float64 // h, ignored for continuous infusion

	MeasuredLevel *float64 // µg/mL
	LevelType     LevelType
	RandomTime    *float64 // h after dose start, for LevelType == LevelRandom
}

// Validate enforces the positivity invariants shared by the whole pipeline.
// Presence/parsing of form fields is the caller's job; only numeric
// preconditions are checked here.
func (in PatientInput) Validate() error {
	if in.Weight <= 0 {
		return fmt.Errorf("%w: weight must be > 0 kg, got %v", ErrInvalidInput, in.Weight)
	}
	if in.Creatinine <= 0 {
		return fmt.Errorf("%w: creatinine must be > 0 mg/dL, got %v", ErrInvalidInput, in.Creatinine)
	}
	if in.Dose <= 0 {
		return fmt.Errorf("%w: dose must be > 0 mg, got %v", ErrInvalidInput, in.Dose)
	}
	if in.Interval <= 0 {
		return fmt.Errorf("%w: interval must be > 0 h, got %v", ErrInvalidInput, in.Interval)
	}
	switch in.AgeUnit {
	case AgeDays, AgeMonths, AgeYears:
	default:
		return fmt.Errorf("%w: unknown age unit %q", ErrInvalidInput, in.AgeUnit)
	}
	if _, ok := ProfileFor(in.Antibiotic); !ok {
		return fmt.Errorf("%w: unknown antibiotic %q", ErrInvalidInput, in.Antibiotic)
	}
	return nil
}
