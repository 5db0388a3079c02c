package pk

import "fmt"

// Age-to-days conversion factors.
const (
	daysPerMonth = 30.42
	daysPerYear  = 365.25
)

// Schwartz-family coefficients by pediatric age band.
const (
	kNeonateEarly = 0.33  // <= 7 days
	kNeonateLate  = 0.45  // 8-28 days
	kInfant       = 0.55  // age given in months
	kChild        = 0.413 // age given in years, < 18
)

// EstimateClearance returns the estimated renal creatinine clearance in
// mL/min for the given demographics. Pediatric patients (neonates, any age
// in months, or under 18 years) use a Schwartz-family estimate from a
// length approximation; everyone else uses Cockcroft-Gault. The result is
// clamped to zero, never negative.
func EstimateClearance(weight, ageValue float64, unit AgeUnit, creatinine float64) (float64, error) {
	if weight <= 0 {
		return 0, fmt.Errorf("%w: weight must be > 0 kg, got %v", ErrInvalidInput, weight)
	}
	if creatinine <= 0 {
		return 0, fmt.Errorf("%w: creatinine must be > 0 mg/dL, got %v", ErrInvalidInput, creatinine)
	}

	ageInDays := ageValue
	switch unit {
	case AgeMonths:
		ageInDays = ageValue * daysPerMonth
	case AgeYears:
		ageInDays = ageValue * daysPerYear
	}

	pediatric := ageInDays <= 28 || unit == AgeMonths || (unit == AgeYears && ageValue < 18)

	var clearance float64
	if pediatric {
		k := kChild
		switch {
		case ageInDays <= 7:
			k = kNeonateEarly
		case ageInDays <= 28:
			k = kNeonateLate
		case unit == AgeMonths:
			k = kInfant
		}
		clearance = k * estimateHeight(ageValue, unit) / creatinine
	} else {
		ageYears := ageValue
		switch unit {
		case AgeMonths:
			ageYears = ageValue / 12
		case AgeDays:
			ageYears = ageValue / daysPerYear
		}
		// Cockcroft-Gault
		clearance = (140 - ageYears) * weight / (72 * creatinine)
	}

	if clearance < 0 {
		clearance = 0
	}
	return clearance, nil
}

// estimateHeight approximates patient length in cm from age alone, for the
// Schwartz estimate when no measured height is available.
func estimateHeight(ageValue float64, unit AgeUnit) float64 {
	growth := 0.1 // cm per day
	switch unit {
	case AgeMonths:
		growth = 1
	case AgeYears:
		growth = 12
	}
	return 50 + ageValue*growth
}
