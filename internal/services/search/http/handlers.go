// Package http provides http transport for journal search
package http

import (
	"errors"
	stdhttp "net/http"

	"inkwell/internal/modkit/httpkit"
	perr "inkwell/internal/platform/errors"
	"inkwell/internal/services/search/domain"
)

// Register mounts search endpoints, the caller must already be behind bearer auth
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.AskInput](r, "/", h.ask)
	httpkit.PostJSON[domain.EntriesInput](r, "/entries", h.entries)
	httpkit.Get(r, "/test", h.probe)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Ask a question about your journal
// @Description Capability failures are reported through ai_available with a canned response, never as an error status
// @Tags Search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.AskInput true "Question"
// @Success 200 {object} domain.AskResponse
// @Failure 400 {object} httpkit.Envelope
// @Failure 401 {object} httpkit.Envelope
// @Router /search [post]
func (h *handlers) ask(r *stdhttp.Request, in domain.AskInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	ans, err := h.svc.AnswerQuery(r.Context(), uid, in.Query)
	if err != nil {
		return nil, mapErr(err)
	}
	return domain.AskResponse{
		Response:             ans.Text,
		RelevantEntriesCount: ans.Count,
		AIAvailable:          ans.CapabilityAvailable,
	}, nil
}

// @Summary Find entries
// @Description Similarity ranked when the query can be embedded, otherwise by the dates it names
// @Tags Search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.EntriesInput true "Filters"
// @Success 200 {object} domain.EntriesResponse
// @Failure 400 {object} httpkit.Envelope
// @Router /search/entries [post]
func (h *handlers) entries(r *stdhttp.Request, in domain.EntriesInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.ListEntries(r.Context(), uid, in)
	return out, mapErr(err)
}

// @Summary Probe the model capabilities
// @Tags Search
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.ProbeResponse
// @Router /search/test [get]
func (h *handlers) probe(r *stdhttp.Request) (any, error) {
	return h.svc.Probe(r.Context()), nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUnauthorized):
		return perr.Unauthorizedf("authentication required")
	}
	return err
}
