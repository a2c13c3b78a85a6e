package http

import (
	"fmt"
	"net/http"
	"strings"

	"gestionale/internal/core"
	applog "gestionale/internal/log"
)

// dashboardCacheKey folds the provider's case because
// CommissionFilter.Matches folds it too: case variants of one provider
// produce the same dashboard and must share one cache entry.
func dashboardCacheKey(f core.CommissionFilter) string {
	return fmt.Sprintf("dashboard:%d:%d:%s", f.Year, f.Month, strings.ToLower(f.Provider))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	filter := parseCommissionFilter(r.URL.Query())
	key := dashboardCacheKey(filter)

	if dash, ok := s.dashCache.Get(key); ok {
		writeJSON(w, http.StatusOK, dash)
		return
	}

	dash, err := s.dashboard.Build(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	s.dashCache.Set(key, dash)
	writeJSON(w, http.StatusOK, dash)
}

type dismissCheckupBody struct {
	ContractID int64  `json:"contractId"`
	Type       string `json:"type"`
}

func (s *Server) handleDismissCheckup(w http.ResponseWriter, r *http.Request) {
	var body dismissCheckupBody
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if body.ContractID <= 0 {
		writeBadRequest(w, "invalid contract id")
		return
	}
	checkupType := core.CheckupType(body.Type)
	if checkupType != core.CheckupT4 && checkupType != core.CheckupT8 {
		writeBadRequest(w, fmt.Sprintf("unknown checkup type %q", body.Type))
		return
	}
	if err := s.session.DismissCheckup(r.Context(), body.ContractID, checkupType); err != nil {
		writeError(w, err)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Checkup dismissed",
		applog.FieldOperation, applog.OpDismiss,
		applog.FieldContractID, body.ContractID,
		applog.FieldMilestone, body.Type)
	s.invalidateDashboard()
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleClearDismissals(w http.ResponseWriter, r *http.Request) {
	if err := s.session.ClearDismissals(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	result, err := s.dashboard.SearchAll(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	if result.Clients == nil {
		result.Clients = []core.Client{}
	}
	if result.Contracts == nil {
		result.Contracts = []core.Contract{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBillSplit(w http.ResponseWriter, r *http.Request) {
	var input core.BillSplitInput
	if err := decodeBody(r, &input); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	result, err := core.SplitBill(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
