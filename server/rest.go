package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/painradar/painradar/pkg/export"
	"github.com/painradar/painradar/pkg/query"
	"github.com/painradar/painradar/pkg/repository"
)

// statusHandler returns server status and last scan stats
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	stats, scannedAt := s.scheduler.LastScanStats()

	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	if !scannedAt.IsZero() {
		status["last_scan"] = map[string]interface{}{
			"started_at":  scannedAt.UTC(),
			"items_seen":  stats.ItemsSeen,
			"matched":     stats.Matched,
			"malformed":   stats.Malformed,
			"no_signal":   stats.NoSignal,
			"no_industry": stats.NoIndustry,
		}
	}
	renderJSON(w, r, http.StatusOK, status)
}

// opportunitiesHandler returns stored opportunities, ranked. Supports
// industry, min_score and limit filters plus format=csv|json.
func (s *Server) opportunitiesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := repository.Filter{Industry: r.URL.Query().Get("industry")}

	if v := r.URL.Query().Get("min_score"); v != "" {
		minScore, err := strconv.ParseFloat(v, 64)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid min_score"), http.StatusBadRequest)
			return
		}
		filter.MinScore = minScore
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			renderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	opps, err := s.db.GetOpportunities(ctx, filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to get opportunities: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="opportunities.csv"`)
		if err := export.WriteCSV(w, opps); err != nil {
			lgr.Printf("[ERROR] failed to write csv: %v", err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		if err := export.WriteJSON(w, opps); err != nil {
			lgr.Printf("[ERROR] failed to write json: %v", err)
		}
	}
}

// scanRequest is the body of POST /scan
type scanRequest struct {
	Industry string `json:"industry,omitempty"`
}

// scanHandler triggers an immediate scan and returns its ranked result
func (s *Server) scanHandler(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
			return
		}
	}

	opps, err := s.scheduler.ScanNow(r.Context(), req.Industry)
	if err != nil {
		lgr.Printf("[ERROR] scan failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteJSON(w, opps); err != nil {
		lgr.Printf("[ERROR] failed to write json: %v", err)
	}
}

// queryRequest is the body of POST /query
type queryRequest struct {
	Query string `json:"query"`
}

// queryHandler translates a free-text query into a pipeline invocation
func (s *Server) queryHandler(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		renderError(w, r, fmt.Errorf("query is required"), http.StatusBadRequest)
		return
	}

	intent := s.intents.Parse(req.Query)

	switch intent.Action {
	case query.ActionListIndustries:
		s.industriesHandler(w, r)
		return

	case query.ActionListSignals:
		s.signalsHandler(w, r)
		return

	case query.ActionExplain:
		renderJSON(w, r, http.StatusOK, map[string]string{
			"response": "PainRadar scans public discussion sources for pain points that indicate " +
				"product opportunities in high-value industries. Ask for a scan, filter by an " +
				"industry, or request an analysis of the top results.",
		})
		return
	}

	opps, err := s.scheduler.ScanNow(r.Context(), intent.Industry)
	if err != nil {
		lgr.Printf("[ERROR] scan failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if intent.Limit > 0 && len(opps) > intent.Limit {
		opps = opps[:intent.Limit]
	}

	if intent.Action == query.ActionAnalyze {
		if s.analyst == nil {
			renderError(w, r, fmt.Errorf("analyst is not configured"), http.StatusNotImplemented)
			return
		}
		analysis, err := s.analyst.Analyze(r.Context(), opps)
		if err != nil {
			lgr.Printf("[ERROR] analysis failed: %v", err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		renderJSON(w, r, http.StatusOK, map[string]interface{}{
			"analysis":      analysis,
			"opportunities": len(opps),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteJSON(w, opps); err != nil {
		lgr.Printf("[ERROR] failed to write json: %v", err)
	}
}

// industriesHandler returns configured industries and their stored counts
func (s *Server) industriesHandler(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.db.IndustryBreakdown(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get industry breakdown: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	type industryInfo struct {
		Label         string   `json:"label"`
		Keywords      []string `json:"keywords"`
		Opportunities int      `json:"opportunities"`
	}

	rules := s.config.IndustrySet()
	res := make([]industryInfo, len(rules))
	for i, rule := range rules {
		res[i] = industryInfo{Label: rule.Label, Keywords: rule.Keywords, Opportunities: breakdown[rule.Label]}
	}
	renderJSON(w, r, http.StatusOK, res)
}

// signalsHandler returns the configured signal phrases
func (s *Server) signalsHandler(w http.ResponseWriter, r *http.Request) {
	type signalInfo struct {
		Phrase   string  `json:"phrase"`
		Strength float64 `json:"strength"`
	}

	signals := s.config.SignalSet()
	res := make([]signalInfo, len(signals))
	for i, sig := range signals {
		res[i] = signalInfo{Phrase: sig.Phrase, Strength: sig.Strength}
	}
	renderJSON(w, r, http.StatusOK, res)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
