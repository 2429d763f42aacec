package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"crypto-cluster-insights/internal/observability"
	"crypto-cluster-insights/internal/profile"
	"crypto-cluster-insights/internal/reporting"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusResponse is the JSON response for /status.
type StatusResponse struct {
	Status    string    `json:"status"`
	Uptime    string    `json:"uptime"`
	Started   time.Time `json:"started"`
	DatasetID string    `json:"dataset_id,omitempty"`
	Rows      int       `json:"rows"`
	Clusters  int       `json:"clusters"`
}

// PromptResponse is the JSON response for /clusters/{id}/prompt.
type PromptResponse struct {
	ClusterID int    `json:"cluster_id"`
	Prompt    string `json:"prompt"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: requestID(r),
		Timestamp: time.Now().UTC(),
	})
}

// writeProfileError maps analyzer errors onto status codes.
func writeProfileError(w http.ResponseWriter, r *http.Request, err error) {
	var unknown *profile.UnknownClusterError
	if errors.As(err, &unknown) {
		writeError(w, r, http.StatusNotFound, "cluster_not_found", err.Error())
		return
	}
	writeError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
}

func clusterIDVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_cluster_id", "Cluster id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:    "running",
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Started:   s.started.UTC(),
		DatasetID: s.datasetID,
		Rows:      s.analyzer.Len(),
		Clusters:  len(s.analyzer.ClusterIDs()),
	})
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	rows, err := profile.CompareClusters(s.analyzer, s.analyzer.ClusterIDs())
	if err != nil {
		writeProfileError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCluster(w http.ResponseWriter, r *http.Request) {
	id, ok := clusterIDVar(w, r)
	if !ok {
		return
	}
	p, err := s.analyzer.GenerateClusterProfile(id)
	if err != nil {
		writeProfileError(w, r, err)
		return
	}
	observability.RecordProfileGenerated(string(p.Risk.Level))
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := clusterIDVar(w, r)
	if !ok {
		return
	}
	prompt, err := s.analyzer.GeneratePromptForInsights(id)
	if err != nil {
		writeProfileError(w, r, err)
		return
	}
	observability.RecordPromptGenerated()
	writeJSON(w, http.StatusOK, PromptResponse{ClusterID: id, Prompt: prompt})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analyzer.GenerateMarketSummary())
}

// handleCompare serves /compare?ids=1,2[&format=csv|markdown].
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "missing_ids", "Query parameter ids is required")
		return
	}

	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_cluster_id", "Cluster ids must be integers")
			return
		}
		ids = append(ids, id)
	}

	rows, err := profile.CompareClusters(s.analyzer, ids)
	if err != nil {
		writeProfileError(w, r, err)
		return
	}
	observability.RecordComparisonGenerated()

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, rows)
	case "csv":
		body, err := reporting.RenderComparisonCSV(rows)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeText(w, "text/csv; charset=utf-8", body)
	case "markdown":
		writeText(w, "text/markdown; charset=utf-8", reporting.RenderComparisonMarkdown(rows))
	default:
		writeError(w, r, http.StatusBadRequest, "invalid_format", "Format must be json, csv or markdown")
	}
}

func (s *Server) renderReport() (string, error) {
	report, err := s.analyzer.GenerateReport()
	if err != nil {
		return "", err
	}
	return reporting.RenderMarkdown(report), nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	md, err := s.renderReport()
	if err != nil {
		writeProfileError(w, r, err)
		return
	}
	observability.RecordReportGenerated("markdown")
	writeText(w, "text/markdown; charset=utf-8", md)
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	md, err := s.renderReport()
	if err != nil {
		writeProfileError(w, r, err)
		return
	}
	html, err := reporting.RenderHTML(md)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	observability.RecordReportGenerated("html")
	writeText(w, "text/html; charset=utf-8", html)
}

// handleROI serves /roi?amount=&months=. Missing parameters use the profile defaults.
func (s *Server) handleROI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount := profile.DefaultROIAmount
	if v := q.Get("amount"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_amount", "Amount must be a number")
			return
		}
		amount = f
	}

	months := profile.DefaultROIHorizonMonths
	if v := q.Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_months", "Months must be an integer")
			return
		}
		months = n
	}

	projections, err := profile.ProjectROI(amount, months, s.scenarios)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_roi_input", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, projections)
}

