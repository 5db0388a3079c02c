package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkdose/pkdose/pk"
	"github.com/pkdose/pkdose/pk/report"
)

func testServer() http.Handler {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(pk.NewEngine(pk.DefaultRanges()), log)
}

func postEvaluate(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestEvaluate_HappyPath(t *testing.T) {
	rec := postEvaluate(t, testServer(), map[string]any{
		"name":             "Maria Souza",
		"record_id":        "HC-1042",
		"weight_kg":        70,
		"age_value":        40,
		"age_unit":         "years",
		"creatinine_mg_dl": 1.0,
		"antibiotic":       "gentamicin",
		"dose_mg":          420,
		"interval_h":       8,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, "gentamicin", rep.Antibiotic)
	assert.Equal(t, "4698.75", rep.Cmax)
	assert.Equal(t, string(pk.StatusExcessive), rep.Status)
	assert.NotEmpty(t, rep.Chart.Points)
}

func TestEvaluate_MeasuredLevelOverlay(t *testing.T) {
	rec := postEvaluate(t, testServer(), map[string]any{
		"weight_kg":        70,
		"age_value":        40,
		"age_unit":         "years",
		"creatinine_mg_dl": 1.0,
		"antibiotic":       "gentamicin",
		"dose_mg":          420,
		"interval_h":       8,
		"measured_level":   7.5,
		"level_type":       "trough",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	require.NotNil(t, rep.Chart.Overlay)
	assert.InDelta(t, 7.9, rep.Chart.Overlay.Time, 1e-9)
	assert.Equal(t, 7.5, rep.Chart.Overlay.Concentration)
}

func TestEvaluate_InvalidInputIs400(t *testing.T) {
	rec := postEvaluate(t, testServer(), map[string]any{
		"weight_kg":        0,
		"age_value":        40,
		"age_unit":         "years",
		"creatinine_mg_dl": 1.0,
		"antibiotic":       "gentamicin",
		"dose_mg":          420,
		"interval_h":       8,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "weight")
}

func TestEvaluate_MalformedJSONIs400(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRanges_ListsEveryAntibiotic(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ranges", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rangesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, rangeBand{Low: 400, High: 600}, resp.AUC)
	assert.Len(t, resp.Drugs, 5)

	gent := resp.Drugs["gentamicin"]
	require.NotNil(t, gent.Peak)
	assert.Equal(t, rangeBand{Low: 5, High: 10}, *gent.Peak)
	assert.Nil(t, gent.Steady)

	vanco := resp.Drugs["vancomycin_continuous"]
	require.NotNil(t, vanco.Steady)
	assert.Nil(t, vanco.Peak)
}
