package pk

// Profile holds the fixed one-compartment parameters for one antibiotic.
// Ke comes from a population regression on normalized clearance:
// Ke = KeSlope*crCl + KeIntercept, crCl in L/h/kg.
type Profile struct {
	Vd           float64 // volume of distribution, L/kg
	InfusionTime float64 // h
	KeSlope      float64
	KeIntercept  float64
	Continuous   bool // 24 h continuous infusion, no terminal half-life
}

// profiles is the drug dispatch table. Adding an antibiotic means adding a
// row here and a row to the therapeutic-range table; no code changes.
var profiles = map[Antibiotic]Profile{
	VancomycinIntermittent: {Vd: 0.7, InfusionTime: 1, KeSlope: 0.00083, KeIntercept: 0.0044},
	VancomycinContinuous:   {Vd: 0.7, InfusionTime: 24, KeSlope: 0.00083, KeIntercept: 0.0044, Continuous: true},
	Gentamicin:             {Vd: 0.25, InfusionTime: 0.5, KeSlope: 0.0029, KeIntercept: 0.01},
	Tobramycin:             {Vd: 0.25, InfusionTime: 0.5, KeSlope: 0.0029, KeIntercept: 0.01},
	Amikacin:               {Vd: 0.25, InfusionTime: 0.5, KeSlope: 0.0029, KeIntercept: 0.01},
}

// ProfileFor returns the fixed PK profile for an antibiotic.
func ProfileFor(ab Antibiotic) (Profile, bool) {
	p, ok := profiles[ab]
	return p, ok
}

// Ke evaluates the elimination-rate regression for a normalized clearance
// in L/h/kg. Always positive because KeIntercept > 0 and crCl >= 0.
func (p Profile) Ke(crClLphKg float64) float64 {
	return p.KeSlope*crClLphKg + p.KeIntercept
}

// IsVancomycin reports whether the antibiotic is evaluated against the
// shared vancomycin AUC exposure band.
func IsVancomycin(ab Antibiotic) bool {
	return ab == VancomycinIntermittent || ab == VancomycinContinuous
}
