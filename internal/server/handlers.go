package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dqscore/dqscore/internal/report"
	"github.com/dqscore/dqscore/internal/scoring"
)

// scoreRequest scores raw rows. Columns is optional; without it the
// engine falls back to the sorted keys of the first row.
type scoreRequest struct {
	Rows    []map[string]string `json:"rows"`
	Columns []string            `json:"columns,omitempty"`
	Weights map[string]float64  `json:"weights,omitempty"`
}

// dqsRequest folds precomputed dimension scores into a composite.
type dqsRequest struct {
	Dimensions map[string]int     `json:"dimensions"`
	Weights    map[string]float64 `json:"weights,omitempty"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	rows := make([]scoring.Row, len(req.Rows))
	for i, raw := range req.Rows {
		rows[i] = scoring.Row(raw)
	}

	start := time.Now()
	result := s.engine.Score(rows, req.Columns, s.requestWeights(req.Weights))

	cols := req.Columns
	if len(cols) == 0 {
		cols = scoring.Columns(rows)
	}
	rep := report.New("request", 0, len(rows), len(cols), result, time.Since(start))

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDQS(w http.ResponseWriter, r *http.Request) {
	var req dqsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	result := scoring.ComputeDQS(scoring.Scores(req.Dimensions), s.requestWeights(req.Weights))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestWeights prefers per-request weights, then the server-wide
// configured map, then nil for engine defaults.
func (s *Server) requestWeights(override map[string]float64) scoring.Weights {
	if len(override) > 0 {
		return scoring.Weights(override)
	}
	return s.weights
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
