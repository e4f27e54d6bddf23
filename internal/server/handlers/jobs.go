package handlers

import (
	"encoding/json"
	"net/http"

	"jobmanager/internal/apperr"
	"jobmanager/internal/service"
	"jobmanager/internal/store"
	"jobmanager/pkg/api"
)

func jobResponse(j *store.Job) api.JobResponse {
	return api.JobResponse{
		ID:      j.ID.String(),
		Name:    j.Name,
		Command: j.Command,
		Status:  string(j.Status),
		OwnerID: j.OwnerID.String(),
	}
}

// ListJobs handles GET /jobs: every job owned by a user in the
// caller's account.
func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	h.listJobs(w, r, service.ScopeAccount)
}

// ListOwnJobs handles GET /jobs/own: only the caller's jobs.
func (h *Handlers) ListOwnJobs(w http.ResponseWriter, r *http.Request) {
	h.listJobs(w, r, service.ScopeOwn)
}

// ListAllJobs handles GET /jobs/all: every job in the system, admin
// only.
func (h *Handlers) ListAllJobs(w http.ResponseWriter, r *http.Request) {
	h.listJobs(w, r, service.ScopeAll)
}

func (h *Handlers) listJobs(w http.ResponseWriter, r *http.Request, scope service.ListScope) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	offset, limit, err := parsePagination(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var status *store.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := store.Status(raw)
		if !s.Valid() {
			h.respondError(w, r, apperr.Wrap(apperr.ErrValidation, "unknown status %q", raw))
			return
		}
		status = &s
	}

	jobs, err := h.jobs.List(r.Context(), actor, scope, status, offset, limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := make([]api.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp = append(resp, jobResponse(&jobs[i]))
	}
	h.respondJson(w, http.StatusOK, resp)
}

// GetJob handles GET /jobs/{id}.
func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	job, err := h.jobs.Get(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, jobResponse(job))
}

// CreateJob handles POST /jobs. The new job is owned by the caller.
func (h *Handlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req api.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	job, err := h.jobs.Create(r.Context(), actor, req.Name, req.Command, store.Status(req.Status))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusCreated, jobResponse(job))
}

// RunJob handles PUT /jobs/{id}/run. It flips the status flag only;
// nothing is executed.
func (h *Handlers) RunJob(w http.ResponseWriter, r *http.Request) {
	h.transitionJob(w, r, store.StatusRunning)
}

// StopJob handles PUT /jobs/{id}/stop.
func (h *Handlers) StopJob(w http.ResponseWriter, r *http.Request) {
	h.transitionJob(w, r, store.StatusStopped)
}

func (h *Handlers) transitionJob(w http.ResponseWriter, r *http.Request, target store.Status) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var (
		job *store.Job
		err error
	)
	if target == store.StatusRunning {
		job, err = h.jobs.Run(r.Context(), actor, id)
	} else {
		job, err = h.jobs.Stop(r.Context(), actor, id)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, jobResponse(job))
}

// DeleteJob handles DELETE /jobs/{id}.
func (h *Handlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.jobs.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJson(w, http.StatusOK, api.MessageResponse{Message: "job deleted"})
}
