package pk

// Range is an inclusive concentration band in µg/mL (mg·h/L for AUC).
type Range struct {
	Low  float64
	High float64
}

// Contains reports whether v falls inside the band, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// TherapeuticRange holds the published target bands for one antibiotic.
// Intermittent regimens carry Peak and Trough; continuous vancomycin
// carries only Steady.
type TherapeuticRange struct {
	Peak   *Range
	Trough *Range
	Steady *Range
}

// RangeTable is the process-wide therapeutic-range configuration. It is
// assembled once at startup (built-in defaults, optionally overridden from
// ranges.yaml) and never mutated afterwards.
type RangeTable struct {
	// AUC is the 24 h exposure band shared by both vancomycin regimens.
	AUC   Range
	Drugs map[Antibiotic]TherapeuticRange
}

func band(low, high float64) *Range {
	return &Range{Low: low, High: high}
}

// DefaultRanges returns a fresh copy of the built-in therapeutic-range
// table. Each call returns an independent map so a caller applying YAML
// overrides never touches another Engine's table.
func DefaultRanges() RangeTable {
	return RangeTable{
		AUC: Range{Low: 400, High: 600},
		Drugs: map[Antibiotic]TherapeuticRange{
			VancomycinIntermittent: {Peak: band(30, 40), Trough: band(10, 20)},
			VancomycinContinuous:   {Steady: band(20, 25)},
			Gentamicin:             {Peak: band(5, 10), Trough: band(0.5, 2)},
			Tobramycin:             {Peak: band(5, 10), Trough: band(0.5, 2)},
			Amikacin:               {Peak: band(20, 30), Trough: band(1, 8)},
		},
	}
}
