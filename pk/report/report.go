// Package report assembles the engine's output into the two artifacts the
// outer layers consume: a chart payload for the curve renderer and a
// plain-text printable report. It is a pure projection of pk.Result; all
// clinical logic stays in pk.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/pkdose/pkdose/pk"
)

// Band is a horizontal reference band drawn behind the curve.
type Band struct {
	Label string  `json:"label"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
}

// Chart is the curve-renderer contract: ordered (t, c) pairs, an optional
// measured-level overlay point, a y-axis upper bound, and the reference
// bands for the antibiotic.
type Chart struct {
	Points  []pk.Point `json:"points"`
	Overlay *pk.Point  `json:"overlay,omitempty"`
	YMax    float64    `json:"y_max"`
	Bands   []Band     `json:"bands"`
}

// Report is the document-generator contract: identification, patient
// metadata echo, formatted numerics, classification, and the chart.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	PatientName string `json:"patient_name,omitempty"`
	RecordID    string `json:"record_id,omitempty"`

	Antibiotic string  `json:"antibiotic"`
	DoseMg     float64 `json:"dose_mg"`
	IntervalH  float64 `json:"interval_h"`
	Clearance  string  `json:"clearance_ml_min"`

	Cmax     string `json:"cmax"`
	Cmin     string `json:"cmin"`
	AUC      string `json:"auc"`
	HalfLife string `json:"half_life,omitempty"`

	Status     string `json:"status"`
	Suggestion string `json:"suggestion,omitempty"`

	Chart Chart `json:"chart"`
}

// New builds a report from an evaluation result. Each call assembles a
// fresh chart payload; nothing is shared or reused between renders.
func New(res *pk.Result, ranges pk.RangeTable) *Report {
	f := res.Formatted()
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		PatientName: res.Input.Name,
		RecordID:    res.Input.RecordID,
		Antibiotic:  string(res.Input.Antibiotic),
		DoseMg:      res.Input.Dose,
		IntervalH:   res.Input.Interval,
		Clearance:   fmt.Sprintf("%.2f", res.Kinetics.Clearance),
		Cmax:        f.Cmax,
		Cmin:        f.Cmin,
		AUC:         f.AUC,
		HalfLife:    f.HalfLife,
		Status:      string(res.Status),
		Suggestion:  res.Suggestion,
		Chart:       buildChart(res, ranges),
	}
}

func buildChart(res *pk.Result, ranges pk.RangeTable) Chart {
	c := Chart{
		Points:  res.Kinetics.Curve,
		Overlay: res.Kinetics.Overlay,
		Bands:   referenceBands(res.Input.Antibiotic, ranges),
	}
	peak := floats.Max(res.Concentrations())
	if res.Kinetics.Overlay != nil && res.Kinetics.Overlay.Concentration > peak {
		peak = res.Kinetics.Overlay.Concentration
	}
	// 10% headroom so the highest sample never touches the frame.
	c.YMax = peak * 1.1
	return c
}

func referenceBands(ab pk.Antibiotic, ranges pk.RangeTable) []Band {
	r := ranges.Drugs[ab]
	var bands []Band
	if r.Peak != nil {
		bands = append(bands, Band{Label: "Pico", Low: r.Peak.Low, High: r.Peak.High})
	}
	if r.Trough != nil {
		bands = append(bands, Band{Label: "Vale", Low: r.Trough.Low, High: r.Trough.High})
	}
	if r.Steady != nil {
		bands = append(bands, Band{Label: "Nível estável", Low: r.Steady.Low, High: r.Steady.High})
	}
	return bands
}

// Text renders the printable report. Layout mirrors the generated PDF:
// header, patient block, computed parameters, classification.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintln(&b, "=== Avaliação Farmacocinética ===")
	fmt.Fprintf(&b, "Relatório %s — %s\n", r.ID, r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if r.PatientName != "" {
		fmt.Fprintf(&b, "Paciente   : %s", r.PatientName)
		if r.RecordID != "" {
			fmt.Fprintf(&b, " (registro %s)", r.RecordID)
		}
		fmt.Fprintln(&b)
	}
	fmt.Fprintf(&b, "Antibiótico: %s, %g mg a cada %g h\n", r.Antibiotic, r.DoseMg, r.IntervalH)
	fmt.Fprintf(&b, "Clearance  : %s mL/min\n", r.Clearance)
	fmt.Fprintf(&b, "Cmax       : %s µg/mL\n", r.Cmax)
	fmt.Fprintf(&b, "Cmin       : %s µg/mL\n", r.Cmin)
	fmt.Fprintf(&b, "AUC 24h    : %s mg·h/L\n", r.AUC)
	if r.HalfLife != "" {
		fmt.Fprintf(&b, "Meia-vida  : %s h\n", r.HalfLife)
	}
	fmt.Fprintf(&b, "Avaliação  : %s\n", r.Status)
	if r.Suggestion != "" {
		fmt.Fprintf(&b, "Sugestão   : %s\n", r.Suggestion)
	}
	return b.String()
}
