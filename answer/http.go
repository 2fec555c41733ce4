package answer

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/serpjson/locator"
)

// RegisterHTTP mounts the service's HTTP surface on a chi router.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Get("/attempts", s.handleAttempts)
		r.Get("/stats", s.handleStats)
	})
}

type extractRequest struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

type extractResponse struct {
	JSON     string `json:"json"`
	Accepted bool   `json:"accepted"`
}

func (s *Service) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out := s.ExtractResponse(r.Context(), locator.Response{Text: req.Text, HTML: req.HTML})
	writeJSON(w, http.StatusOK, extractResponse{JSON: out, Accepted: out != ""})
}

func (s *Service) handleAttempts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	attempts, err := s.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}

func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Counts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
