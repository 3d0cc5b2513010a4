package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bastiwasti/jobsearch/internal/events"
	"github.com/bastiwasti/jobsearch/internal/store"
)

type JobsHandler struct {
	DB  *store.DB
	Hub *events.Hub
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := store.ListJobsOpts{
		Source: q.Get("source"),
		Status: q.Get("status"),
		Query:  q.Get("q"),
	}
	if v := q.Get("bookmarked"); v != "" {
		b := v == "true" || v == "1"
		opts.Bookmarked = &b
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		opts.Offset = v
	}

	jobs, err := h.DB.ListJobs(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, jobs)
}

func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}
	job, err := h.DB.GetJob(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, job)
}

func (h JobsHandler) PatchByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	var patch store.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	job, err := h.DB.UpdateJobReview(r.Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, job)
}

func jobID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, "/jobs/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
