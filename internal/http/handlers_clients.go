package http

import (
	"net/http"

	"gestionale/internal/core"
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.clients.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if clients == nil {
		clients = []core.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	client, err := s.clients.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var client core.Client
	if err := decodeBody(r, &client); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	created, err := s.clients.Create(r.Context(), client)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var client core.Client
	if err := decodeBody(r, &client); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	client.ID = id
	updated, err := s.clients.Update(r.Context(), client)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := s.clients.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListClientContracts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if _, err := s.clients.Get(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	contracts, err := s.contracts.ListByClient(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if contracts == nil {
		contracts = []core.Contract{}
	}
	writeJSON(w, http.StatusOK, contracts)
}
