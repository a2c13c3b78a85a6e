package http

import (
	"fmt"
	"net/http"
	"strings"

	"gestionale/internal/core"
)

// contractBody is a contract payload that also accepts the commission the
// way the office types it: a decimal string with a dot or comma separator.
// When set it wins over the cents field.
type contractBody struct {
	core.Contract
	CommissionDecimal string `json:"commissionDecimal"`
}

func (b *contractBody) toContract() (core.Contract, error) {
	c := b.Contract
	if s := strings.TrimSpace(b.CommissionDecimal); s != "" {
		cents, err := core.ParseDecimalToCents(s)
		if err != nil {
			return core.Contract{}, fmt.Errorf("invalid commission amount %q", s)
		}
		c.Commission = core.Money{Cents: cents}
		c.HasCommission = true
	}
	return c, nil
}

func (s *Server) handleListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := s.contracts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if contracts == nil {
		contracts = []core.Contract{}
	}
	writeJSON(w, http.StatusOK, contracts)
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	contract, err := s.contracts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (s *Server) handleListExpiringContracts(w http.ResponseWriter, r *http.Request) {
	windowDays := parseWindowDays(r.URL.Query())
	contracts, err := s.contracts.ListExpiring(r.Context(), core.Today(), windowDays)
	if err != nil {
		writeError(w, err)
		return
	}
	if contracts == nil {
		contracts = []core.Contract{}
	}
	writeJSON(w, http.StatusOK, contracts)
}

func (s *Server) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var body contractBody
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	contract, err := body.toContract()
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	created, err := s.contracts.Create(r.Context(), contract)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var body contractBody
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	contract, err := body.toContract()
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	contract.ID = id
	updated, err := s.contracts.Update(r.Context(), contract)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := s.contracts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusNoContent, nil)
}
