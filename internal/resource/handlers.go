package resource

import (
	"context"
	"net/http"
	"net/url"

	"finhub/internal/amqp"
	"finhub/internal/auth"
	"finhub/internal/core"
	"finhub/internal/log"
	"finhub/internal/web"
)

// Event actions recorded for mutations.
const (
	actionCreated = "created"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

// Ops binds one resource family to the shared HTTP surface. Create and
// Update receive the request so the family can parse its own field set.
type Ops[T any] struct {
	ID         func(T) string
	List       func(ctx context.Context, owner string, query url.Values) ([]T, error)
	Get        func(ctx context.Context, id, owner string) (T, error)
	Create     func(ctx context.Context, owner string, r *http.Request) (T, error)
	Update     func(ctx context.Context, id, owner string, r *http.Request) (T, error)
	Delete     func(ctx context.Context, id, owner string) (string, error)
	BulkDelete func(ctx context.Context, ids []string, owner string) ([]string, error)
}

// Handlers serves the shared contract for one family:
//
//	GET    /             list owned rows
//	GET    /{id}         fetch one owned row
//	POST   /             create
//	POST   /bulk-delete  delete the owned subset of ids
//	PATCH  /{id}         update
//	DELETE /{id}         delete
//	GET    /health       unauthenticated liveness probe
type Handlers[T any] struct {
	resource string
	ops      Ops[T]
	logger   *log.Logger
	events   *amqp.Publisher
}

func NewHandlers[T any](resource string, ops Ops[T], logger *log.Logger, events *amqp.Publisher) *Handlers[T] {
	return &Handlers[T]{
		resource: resource,
		ops:      ops,
		logger:   logger,
		events:   events,
	}
}

// Router assembles the full middleware chain: request logging outside,
// then authentication, then the handlers. Only /health skips auth.
func (h *Handlers[T]) Router(resolver auth.Resolver) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /{$}", h.handleList)
	api.HandleFunc("POST /{$}", h.handleCreate)
	api.HandleFunc("POST /bulk-delete", h.handleBulkDelete)
	api.HandleFunc("GET /{id}", h.handleGet)
	api.HandleFunc("PATCH /{id}", h.handleUpdate)
	api.HandleFunc("DELETE /{id}", h.handleDelete)
	api.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		web.Fail(w, http.StatusNotFound, "Not found")
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", web.HealthHandler(h.resource+"-service"))
	mux.Handle("/", auth.Middleware(resolver)(api))

	return log.Middleware(h.logger)(mux)
}

func (h *Handlers[T]) handleList(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	data, err := h.ops.List(r.Context(), principal.ID, r.URL.Query())
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	if data == nil {
		data = []T{}
	}
	web.Respond(w, http.StatusOK, data)
}

func (h *Handlers[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := r.PathValue("id")
	data, err := h.ops.Get(r.Context(), id, principal.ID)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, data)
}

func (h *Handlers[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	data, err := h.ops.Create(r.Context(), principal.ID, r)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	h.publish(r.Context(), actionCreated, h.ops.ID(data), principal.ID)
	web.Respond(w, http.StatusOK, data)
}

func (h *Handlers[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := r.PathValue("id")
	data, err := h.ops.Update(r.Context(), id, principal.ID, r)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	h.publish(r.Context(), actionUpdated, id, principal.ID)
	web.Respond(w, http.StatusOK, data)
}

func (h *Handlers[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := r.PathValue("id")
	deleted, err := h.ops.Delete(r.Context(), id, principal.ID)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	h.publish(r.Context(), actionDeleted, deleted, principal.ID)
	web.Respond(w, http.StatusOK, map[string]string{"id": deleted})
}

func (h *Handlers[T]) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		IDs []string `json:"ids"`
	}
	if err := web.DecodeJSON(r, &body); err != nil {
		web.RespondError(w, r, err)
		return
	}
	if body.IDs == nil {
		web.RespondError(w, r, core.ErrValidation)
		return
	}

	// Only the owned subset is deleted; unknown or foreign ids are
	// skipped without error.
	deleted, err := h.ops.BulkDelete(r.Context(), body.IDs, principal.ID)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}

	rows := make([]map[string]string, 0, len(deleted))
	for _, id := range deleted {
		h.publish(r.Context(), actionDeleted, id, principal.ID)
		rows = append(rows, map[string]string{"id": id})
	}
	web.Respond(w, http.StatusOK, rows)
}

func (h *Handlers[T]) publish(ctx context.Context, action, id, owner string) {
	if h.events == nil {
		return
	}
	ev := amqp.NewEntityEvent(h.resource, action, id, owner)
	if err := h.events.PublishEntityEvent(ctx, ev); err != nil {
		h.logger.WarnContext(ctx, "Event publish failed",
			log.FieldResource, h.resource,
			log.FieldOperation, action,
			log.FieldError, err)
	}
}
