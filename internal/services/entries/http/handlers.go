// Package http provides http transport for journal entries
package http

import (
	"errors"
	stdhttp "net/http"

	"inkwell/internal/modkit/httpkit"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/net/http/bind"
	"inkwell/internal/services/entries/domain"
)

// Register mounts entry endpoints, the caller must already be behind bearer auth
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.CreateJSON[domain.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PutJSON[domain.UpdateInput](r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Write an entry
// @Description Embedding is best effort, has_embedding reports whether it was stored
// @Tags Entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.CreateInput true "Entry"
// @Success 201 {object} domain.EntryResponse
// @Failure 400 {object} httpkit.Envelope "blank content or a future date"
// @Router /entries [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.Create(r.Context(), uid, in)
	return out, mapErr(err)
}

// @Summary List entries
// @Tags Entries
// @Produce json
// @Security BearerAuth
// @Param limit query int false "page size" default(100)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} domain.ListResponse
// @Router /entries [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	limit, err := bind.QueryInt(r, "limit", 100)
	if err != nil {
		return nil, err
	}
	offset, err := bind.QueryInt(r, "offset", 0)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), uid, limit, offset)
}

// @Summary Get an entry
// @Tags Entries
// @Produce json
// @Security BearerAuth
// @Param id path string true "entry id"
// @Success 200 {object} domain.EntryResponse
// @Failure 404 {object} httpkit.Envelope
// @Router /entries/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.Get(r.Context(), uid, httpkit.Param(r, "id"))
	return out, mapErr(err)
}

// @Summary Update an entry
// @Tags Entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "entry id"
// @Param payload body domain.UpdateInput true "Changes"
// @Success 200 {object} domain.EntryResponse
// @Failure 404 {object} httpkit.Envelope
// @Router /entries/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.Update(r.Context(), uid, httpkit.Param(r, "id"), in)
	return out, mapErr(err)
}

// @Summary Delete an entry
// @Tags Entries
// @Produce json
// @Security BearerAuth
// @Param id path string true "entry id"
// @Success 200 {object} domain.DeleteResponse
// @Failure 404 {object} httpkit.Envelope
// @Router /entries/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.Delete(r.Context(), uid, httpkit.Param(r, "id"))
	return out, mapErr(err)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrEntryNotFound):
		return perr.NotFoundf("entry not found")
	case errors.Is(err, domain.ErrFutureDate):
		return perr.WithField(perr.InvalidArgf("entry date cannot be in the future"), "entry_date")
	case errors.Is(err, domain.ErrEmptyContent):
		return perr.WithField(perr.Validationf("content cannot be empty"), "content")
	}
	return err
}
