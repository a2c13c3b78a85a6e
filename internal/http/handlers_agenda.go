// Appointment and office-task handlers. These entities have no service
// layer: validation is structural and the store is the only collaborator.
package http

import (
	"net/http"

	"gestionale/internal/core"
)

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.store.ListAppointments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if appointments == nil {
		appointments = []core.Appointment{}
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	appointment, err := s.store.GetAppointment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointment)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var appointment core.Appointment
	if err := decodeBody(r, &appointment); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := appointment.Validate(); err != nil {
		writeError(w, err)
		return
	}
	created, err := s.store.CreateAppointment(r.Context(), appointment)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var appointment core.Appointment
	if err := decodeBody(r, &appointment); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	appointment.ID = id
	if err := appointment.Validate(); err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.store.UpdateAppointment(r.Context(), appointment)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := s.store.DeleteAppointment(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if tasks == nil {
		tasks = []core.OfficeTask{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var task core.OfficeTask
	if err := decodeBody(r, &task); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := task.Validate(); err != nil {
		writeError(w, err)
		return
	}
	created, err := s.store.CreateTask(r.Context(), task)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var task core.OfficeTask
	if err := decodeBody(r, &task); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	task.ID = id
	if err := task.Validate(); err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.store.UpdateTask(r.Context(), task)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := s.store.DeleteTask(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusNoContent, nil)
}
