package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/pkdose/pkdose/pk"
	"github.com/pkdose/pkdose/pk/report"
)

// evaluateRequest is the form payload. Optional fields are pointers so an
// absent field is distinguishable from zero.
type evaluateRequest struct {
	Name     string `json:"name"`
	RecordID string `json:"record_id"`

	Weight     float64 `json:"weight_kg"`
	AgeValue   float64 `json:"age_value"`
	AgeUnit    string  `json:"age_unit"`
	Creatinine float64 `json:"creatinine_mg_dl"`

	Antibiotic string  `json:"antibiotic"`
	Dose       float64 `json:"dose_mg"`
	Interval   float64 `json:"interval_h"`

	MeasuredLevel *float64 `json:"measured_level,omitempty"`
	LevelType     string   `json:"level_type,omitempty"`
	RandomTime    *float64 `json:"random_time_h,omitempty"`
}

func (req evaluateRequest) toInput() pk.PatientInput {
	return pk.PatientInput{
		Name:          req.Name,
		RecordID:      req.RecordID,
		Weight:        req.Weight,
		AgeValue:      req.AgeValue,
		AgeUnit:       pk.AgeUnit(req.AgeUnit),
		Creatinine:    req.Creatinine,
		Antibiotic:    pk.Antibiotic(req.Antibiotic),
		Dose:          req.Dose,
		Interval:      req.Interval,
		MeasuredLevel: req.MeasuredLevel,
		LevelType:     pk.LevelType(req.LevelType),
		RandomTime:    req.RandomTime,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func evaluateHandler(engine *pk.Engine, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		res, err := engine.Run(req.toInput())
		if err != nil {
			if errors.Is(err, pk.ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			log.WithError(err).Error("evaluation failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		rep := report.New(res, engine.Ranges())
		log.WithFields(logrus.Fields{
			"report":     rep.ID,
			"antibiotic": rep.Antibiotic,
			"status":     rep.Status,
		}).Info("evaluation complete")
		writeJSON(w, http.StatusOK, rep)
	}
}

// rangeBand mirrors pk.Range for JSON output.
type rangeBand struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type drugRanges struct {
	Peak   *rangeBand `json:"peak,omitempty"`
	Trough *rangeBand `json:"trough,omitempty"`
	Steady *rangeBand `json:"steady,omitempty"`
}

type rangesResponse struct {
	AUC   rangeBand             `json:"auc"`
	Drugs map[string]drugRanges `json:"drugs"`
}

func rangesHandler(engine *pk.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		table := engine.Ranges()
		resp := rangesResponse{
			AUC:   rangeBand{Low: table.AUC.Low, High: table.AUC.High},
			Drugs: make(map[string]drugRanges, len(table.Drugs)),
		}
		for ab, tr := range table.Drugs {
			resp.Drugs[string(ab)] = drugRanges{
				Peak:   toBand(tr.Peak),
				Trough: toBand(tr.Trough),
				Steady: toBand(tr.Steady),
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func toBand(r *pk.Range) *rangeBand {
	if r == nil {
		return nil
	}
	return &rangeBand{Low: r.Low, High: r.High}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
