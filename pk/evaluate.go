package pk

import (
	"fmt"
	"math"
)

// Status classifies a regimen against its therapeutic ranges. The strings
// are the fixed user-facing labels and must not be translated or reworded.
type Status string

const (
	StatusInsufficient  Status = "Insuficiente"
	StatusExcessive     Status = "Excessiva"
	StatusAdequate      Status = "Adequada"
	StatusOutsideSteady Status = "Fora da faixa estável"
)

// Evaluation is the classification outcome plus an adjustment suggestion.
// Suggestion is empty when the regimen is adequate.
type Evaluation struct {
	Status     Status
	Suggestion string
}

// Engine binds the immutable therapeutic-range table to the evaluation
// pipeline. Safe for concurrent use: it holds no mutable state.
type Engine struct {
	ranges RangeTable
}

// NewEngine creates an Engine over a range table, normally
// DefaultRanges() or the YAML-overridden table from the cmd layer.
func NewEngine(ranges RangeTable) *Engine {
	return &Engine{ranges: ranges}
}

// Ranges returns the table the engine classifies against.
func (e *Engine) Ranges() RangeTable {
	return e.ranges
}

// Evaluate classifies the simulated regimen. Three mutually exclusive rule
// sets, first match wins: continuous vancomycin (AUC band then steady
// level), intermittent vancomycin (AUC band or trough), aminoglycosides
// (peak and trough bands). Suggested doses and intervals assume linear
// response and are rounded to whole mg / whole hours.
func (e *Engine) Evaluate(in PatientInput, k *Kinetics) Evaluation {
	switch {
	case in.Antibiotic == VancomycinContinuous:
		return e.evaluateContinuousVanco(in, k)
	case in.Antibiotic == VancomycinIntermittent:
		return e.evaluateIntermittentVanco(in, k)
	default:
		return e.evaluateAminoglycoside(in, k)
	}
}

func (e *Engine) evaluateContinuousVanco(in PatientInput, k *Kinetics) Evaluation {
	auc := e.ranges.AUC
	steady := e.ranges.Drugs[VancomycinContinuous].Steady
	switch {
	case k.AUC < auc.Low:
		return Evaluation{StatusInsufficient,
			fmt.Sprintf("Aumentar dose para %d mg/dia", roundMg(in.Dose*auc.Low/k.AUC))}
	case k.AUC > auc.High:
		return Evaluation{StatusExcessive,
			fmt.Sprintf("Reduzir dose para %d mg/dia", roundMg(in.Dose*auc.High/k.AUC))}
	case !steady.Contains(k.Cmax):
		// Linear-response approximation: daily dose to hold the low end of
		// the steady band, from the Ke/Vd already derived for this regimen.
		target := steady.Low * k.Profile.Vd * k.Ke * in.Weight * 24
		return Evaluation{StatusOutsideSteady,
			fmt.Sprintf("Ajustar para %d mg/dia (alvo %g µg/mL)", roundMg(target), steady.Low)}
	default:
		return Evaluation{Status: StatusAdequate}
	}
}

func (e *Engine) evaluateIntermittentVanco(in PatientInput, k *Kinetics) Evaluation {
	auc := e.ranges.AUC
	trough := e.ranges.Drugs[VancomycinIntermittent].Trough
	switch {
	case k.AUC < auc.Low || k.Cmin < trough.Low:
		return Evaluation{StatusInsufficient,
			suggestAdjustment("Aumentar", in.Dose*auc.Low/k.AUC, "reduzir", in.Interval*0.8)}
	case k.AUC > auc.High || k.Cmin > trough.High:
		return Evaluation{StatusExcessive,
			suggestAdjustment("Reduzir", in.Dose*auc.High/k.AUC, "aumentar", in.Interval*1.2)}
	default:
		return Evaluation{Status: StatusAdequate}
	}
}

func (e *Engine) evaluateAminoglycoside(in PatientInput, k *Kinetics) Evaluation {
	r := e.ranges.Drugs[in.Antibiotic]
	switch {
	case k.Cmax < r.Peak.Low || k.Cmin < r.Trough.Low:
		return Evaluation{StatusInsufficient,
			suggestAdjustment("Aumentar", in.Dose*r.Peak.High/k.Cmax, "reduzir", in.Interval*0.8)}
	case k.Cmax > r.Peak.High || k.Cmin > r.Trough.High:
		return Evaluation{StatusExcessive,
			suggestAdjustment("Reduzir", in.Dose*r.Peak.Low/k.Cmax, "aumentar", in.Interval*1.2)}
	default:
		return Evaluation{Status: StatusAdequate}
	}
}

// suggestAdjustment renders the two alternatives (change the dose, or
// change the interval) the prescriber can pick between.
func suggestAdjustment(doseVerb string, dose float64, intervalVerb string, interval float64) string {
	return fmt.Sprintf("%s dose para %d mg ou %s intervalo para %d h",
		doseVerb, roundMg(dose), intervalVerb, int(math.Round(interval)))
}

func roundMg(v float64) int {
	return int(math.Round(v))
}
