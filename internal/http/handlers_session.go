package http

import (
	"net/http"

	"gestionale/internal/services"
)

type gateResult struct {
	Allowed bool `json:"allowed"`
}

// handleAuthGate checks the shared office credential pair. While no pair
// has ever been stored, the gate is open.
func (s *Server) handleAuthGate(w http.ResponseWriter, r *http.Request) {
	var creds services.Credentials
	if err := decodeBody(r, &creds); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	allowed, err := s.session.CheckGate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if !allowed {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, gateResult{Allowed: allowed})
}

func (s *Server) handleSetCredentials(w http.ResponseWriter, r *http.Request) {
	var creds services.Credentials
	if err := decodeBody(r, &creds); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := s.session.SetCredentials(r.Context(), creds); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleGetWidgetPrefs(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.session.WidgetPrefs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleSetWidgetPrefs(w http.ResponseWriter, r *http.Request) {
	var prefs services.WidgetPrefs
	if err := decodeBody(r, &prefs); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := s.session.SetWidgetPrefs(r.Context(), prefs); err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusNoContent, nil)
}
