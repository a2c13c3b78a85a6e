package http

import (
	"net/http"
	"strings"

	"gestionale/internal/store"
)

type referenceValueBody struct {
	Value string `json:"value"`
}

func refKind(r *http.Request) (store.RefKind, bool) {
	kind := store.RefKind(r.PathValue("kind"))
	return kind, kind.IsValid()
}

func (s *Server) handleListReference(w http.ResponseWriter, r *http.Request) {
	kind, ok := refKind(r)
	if !ok {
		writeError(w, store.ErrUnknownRefKind)
		return
	}
	values, err := s.store.ListReferenceValues(r.Context(), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) handleAddReference(w http.ResponseWriter, r *http.Request) {
	kind, ok := refKind(r)
	if !ok {
		writeError(w, store.ErrUnknownRefKind)
		return
	}
	var body referenceValueBody
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(body.Value) == "" {
		writeBadRequest(w, "empty value")
		return
	}
	values, err := s.store.AddReferenceValue(r.Context(), kind, body.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) handleRemoveReference(w http.ResponseWriter, r *http.Request) {
	kind, ok := refKind(r)
	if !ok {
		writeError(w, store.ErrUnknownRefKind)
		return
	}
	var body referenceValueBody
	if err := decodeBody(r, &body); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	values, err := s.store.RemoveReferenceValue(r.Context(), kind, body.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}
