package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkdose/pkdose/pk"
)

func evaluated(t *testing.T, in pk.PatientInput) (*pk.Result, pk.RangeTable) {
	t.Helper()
	ranges := pk.DefaultRanges()
	res, err := pk.NewEngine(ranges).Run(in)
	require.NoError(t, err)
	return res, ranges
}

func gentamicinResult(t *testing.T) (*pk.Result, pk.RangeTable) {
	return evaluated(t, pk.PatientInput{
		Name: "Maria Souza", RecordID: "HC-1042",
		Weight: 70, AgeValue: 40, AgeUnit: pk.AgeYears, Creatinine: 1.0,
		Antibiotic: pk.Gentamicin, Dose: 420, Interval: 8,
	})
}

func TestNew_PopulatesReport(t *testing.T) {
	res, ranges := gentamicinResult(t)
	rep := New(res, ranges)

	_, err := uuid.Parse(rep.ID)
	assert.NoError(t, err)
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Equal(t, "Maria Souza", rep.PatientName)
	assert.Equal(t, "HC-1042", rep.RecordID)
	assert.Equal(t, "gentamicin", rep.Antibiotic)
	assert.Equal(t, "97.22", rep.Clearance)
	assert.Equal(t, "4698.75", rep.Cmax)
	assert.Equal(t, string(res.Status), rep.Status)
}

func TestNew_FreshReportPerCall(t *testing.T) {
	res, ranges := gentamicinResult(t)
	first := New(res, ranges)
	second := New(res, ranges)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestChart_AxisBoundClearsEverySample(t *testing.T) {
	res, ranges := gentamicinResult(t)
	chart := New(res, ranges).Chart

	require.Equal(t, len(res.Kinetics.Curve), len(chart.Points))
	for _, p := range chart.Points {
		assert.LessOrEqual(t, p.Concentration, chart.YMax)
	}
	assert.InDelta(t, res.Kinetics.Cmax*1.1, chart.YMax, 1e-6)
}

func TestChart_OverlayAboveCurveRaisesBound(t *testing.T) {
	level := 6000.0
	at := 2.0
	res, ranges := evaluated(t, pk.PatientInput{
		Weight: 70, AgeValue: 40, AgeUnit: pk.AgeYears, Creatinine: 1.0,
		Antibiotic: pk.Gentamicin, Dose: 420, Interval: 8,
		MeasuredLevel: &level, LevelType: pk.LevelRandom, RandomTime: &at,
	})
	chart := New(res, ranges).Chart

	require.NotNil(t, chart.Overlay)
	assert.InDelta(t, level*1.1, chart.YMax, 1e-6)
}

func TestChart_ReferenceBands(t *testing.T) {
	res, ranges := gentamicinResult(t)
	bands := New(res, ranges).Chart.Bands

	require.Len(t, bands, 2)
	assert.Equal(t, Band{Label: "Pico", Low: 5, High: 10}, bands[0])
	assert.Equal(t, Band{Label: "Vale", Low: 0.5, High: 2}, bands[1])
}

func TestChart_SteadyBandForContinuousVancomycin(t *testing.T) {
	res, ranges := evaluated(t, pk.PatientInput{
		Weight: 70, AgeValue: 40, AgeUnit: pk.AgeYears, Creatinine: 1.0,
		Antibiotic: pk.VancomycinContinuous, Dose: 2000, Interval: 24,
	})
	bands := New(res, ranges).Chart.Bands

	require.Len(t, bands, 1)
	assert.Equal(t, "Nível estável", bands[0].Label)
}

func TestText_ContainsReportFields(t *testing.T) {
	res, ranges := gentamicinResult(t)
	rep := New(res, ranges)
	text := rep.Text()

	assert.Contains(t, text, "Maria Souza")
	assert.Contains(t, text, "HC-1042")
	assert.Contains(t, text, "gentamicin, 420 mg a cada 8 h")
	assert.Contains(t, text, rep.Cmax)
	assert.Contains(t, text, rep.Status)
	assert.Contains(t, text, rep.Suggestion)
}

func TestText_OmitsHalfLifeForContinuousInfusion(t *testing.T) {
	res, ranges := evaluated(t, pk.PatientInput{
		Weight: 70, AgeValue: 40, AgeUnit: pk.AgeYears, Creatinine: 1.0,
		Antibiotic: pk.VancomycinContinuous, Dose: 2000, Interval: 24,
	})
	text := New(res, ranges).Text()
	assert.NotContains(t, text, "Meia-vida")
}
