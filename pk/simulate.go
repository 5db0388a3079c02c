package pk

import (
	"fmt"
	"math"
)

// Point is one sample of the concentration-time curve. It crosses the
// rendering boundary as-is, hence the JSON tags.
type Point struct {
	Time          float64 `json:"time"`          // h since dose start
	Concentration float64 `json:"concentration"` // µg/mL
}

// Kinetics is the raw simulation output for one dosing interval, full
// precision. Formatting to display strings happens at the boundary
// (Result.Formatted), never here.
type Kinetics struct {
	Profile        Profile
	Clearance      float64 // mL/min
	ClearanceLphKg float64 // normalized, L/h/kg
	Ke             float64 // h⁻¹
	HalfLife       float64 // h; 0 for continuous infusion (not reported)
	Cmax           float64 // µg/mL; steady-state level for continuous infusion
	Cmin           float64 // µg/mL
	AUC            float64 // mg·h/L over 24 h
	Curve          []Point
	Overlay        *Point // measured level, display only
}

const curveStep = 0.5 // h between curve samples

// Simulate runs the closed-form one-compartment model for a single dosing
// interval. clearance is the estimated creatinine clearance in mL/min.
// The measured level, when present and complete, becomes a display-only
// overlay point; it never feeds back into Ke, Cmax, or AUC.
func Simulate(in PatientInput, clearance float64) (*Kinetics, error) {
	if in.Dose <= 0 {
		return nil, fmt.Errorf("%w: dose must be > 0 mg, got %v", ErrInvalidInput, in.Dose)
	}
	if in.Interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be > 0 h, got %v", ErrInvalidInput, in.Interval)
	}
	prof, ok := ProfileFor(in.Antibiotic)
	if !ok {
		return nil, fmt.Errorf("%w: unknown antibiotic %q", ErrInvalidInput, in.Antibiotic)
	}

	k := &Kinetics{Profile: prof, Clearance: clearance}
	k.ClearanceLphKg = clearance / 1000 * 60 / in.Weight
	k.Ke = prof.Ke(k.ClearanceLphKg)

	dosePerKg := in.Dose / in.Weight
	if prof.Continuous {
		// Dose is mg/day; report the steady-state level as both Cmax and Cmin.
		k.AUC = (dosePerKg / 24) / (k.Ke * prof.Vd) * 24
		css := k.AUC / 24
		k.Cmax, k.Cmin = css, css
	} else {
		k.HalfLife = math.Ln2 / k.Ke
		k.Cmax = dosePerKg / (prof.Vd * (1 - math.Exp(-k.Ke*prof.InfusionTime)))
		k.Cmin = k.Cmax * math.Exp(-k.Ke*(in.Interval-prof.InfusionTime))
		k.AUC = (dosePerKg / in.Interval) / (k.Ke * prof.Vd) * 24
	}

	k.Curve = sampleCurve(prof, k.Ke, k.Cmax, dosePerKg, curveWindow(prof, in.Interval))
	k.Overlay = overlayPoint(in, prof)
	return k, nil
}

// curveWindow returns the time span covered by the curve: one dosing
// interval, or a fixed 24 h window for continuous infusion (the interval
// field is ignored for that regimen).
func curveWindow(prof Profile, interval float64) float64 {
	if prof.Continuous {
		return 24
	}
	return interval
}

// sampleCurve samples one dosing-interval snapshot every 0.5 h, not a
// multi-dose steady-state curve. During the infusion the concentration
// follows dosePerKg/(Vd·(1−e^(−Ke·t))); afterwards it decays from Cmax.
// The expression is singular at t=0, so that sample is pinned to zero
// (no drug on board before the infusion starts); continuity at
// t = InfusionTime is exact.
func sampleCurve(prof Profile, ke, cmax, dosePerKg, window float64) []Point {
	n := int(math.Ceil(window / curveStep))
	curve := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) * curveStep
		var c float64
		switch {
		case i == 0:
			c = 0
		case t <= prof.InfusionTime:
			c = dosePerKg / (prof.Vd * (1 - math.Exp(-ke*t)))
		default:
			c = cmax * math.Exp(-ke*(t-prof.InfusionTime))
		}
		curve = append(curve, Point{Time: t, Concentration: c})
	}
	return curve
}

// overlayPoint places the measured level on the time axis. An incomplete
// measurement (random draw without a non-negative draw time, or a
// non-positive level) yields no point; this is deliberately silent and
// non-fatal.
func overlayPoint(in PatientInput, prof Profile) *Point {
	if in.MeasuredLevel == nil || *in.MeasuredLevel <= 0 {
		return nil
	}
	var t float64
	switch in.LevelType {
	case LevelPeak:
		t = prof.InfusionTime
	case LevelTrough:
		t = in.Interval - 0.1
	case LevelRandom:
		if in.RandomTime == nil || *in.RandomTime < 0 {
			return nil
		}
		t = *in.RandomTime
	default:
		return nil
	}
	return &Point{Time: t, Concentration: *in.MeasuredLevel}
}
