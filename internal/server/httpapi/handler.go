// Package httpapi implements the HTTP surface of the reference collection
// server: one URL that answers GET with the full collection and POST with a
// single mutation, mirroring the contract the client speaks.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smpn3pacet/pustaka/internal/logging"
	"github.com/smpn3pacet/pustaka/internal/server/models"
	"github.com/smpn3pacet/pustaka/internal/server/observability"
	"github.com/smpn3pacet/pustaka/internal/server/repositories/items"
)

// maxBodyBytes bounds a mutation body: 20 attachments at the per-attachment
// ceiling plus generous envelope headroom.
const maxBodyBytes = 4 << 20

// Handler serves the collection endpoint.
type Handler struct {
	repo items.Repository
	log  logging.Logger
}

func NewHandler(repo items.Repository, log logging.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

// RegisterRoutes attaches the collection endpoint and the health probe to mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.collection)
	mux.HandleFunc("/healthz", h.healthz)
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.fetchAll(w, r)
	case http.MethodPost:
		h.mutate(w, r)
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// fetchAll answers with the whole collection as a JSON array, newest first.
// An empty collection is an empty array, never null.
func (h *Handler) fetchAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.repo.SelectAll(ctx)
	if err != nil {
		h.log.Error(ctx, "failed to read collection", "error", err)
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}

	observability.RecordFetch(len(list))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		h.log.Error(ctx, "failed to encode collection", "error", err)
	}
}

// mutate applies one add/update/delete mutation. Adds and updates share the
// upsert path; the distinction only matters to the sender.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var m models.Mutation
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&m); err != nil {
		observability.RecordMutation("invalid", false)
		http.Error(w, "malformed mutation", http.StatusBadRequest)
		return
	}

	if err := m.Validate(); err != nil {
		observability.RecordMutation(string(m.Action), false)
		h.log.Warn(ctx, "rejected mutation", "action", m.Action, "error", err)
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrAttachmentTooBig) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, err.Error(), status)
		return
	}

	var err error
	switch m.Action {
	case models.ActionAdd, models.ActionUpdate:
		err = h.repo.Upsert(ctx, m.Data)
	case models.ActionDelete:
		err = h.repo.Delete(ctx, m.Data.ID)
	}
	if err != nil {
		observability.RecordMutation(string(m.Action), false)
		h.log.Error(ctx, "failed to apply mutation", "action", m.Action, "id", m.Data.ID, "error", err)
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}

	observability.RecordMutation(string(m.Action), true)
	h.log.Info(ctx, "mutation applied", "action", m.Action, "id", m.Data.ID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
