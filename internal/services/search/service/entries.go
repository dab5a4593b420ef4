package service

import (
	"context"
	"strings"
	"time"

	perr "inkwell/internal/platform/errors"
	"inkwell/internal/platform/logger"
	ptime "inkwell/internal/platform/time"
	"inkwell/internal/services/search/domain"
)

// ListEntries is search without synthesis: a query is embedded when the capability
// answers, otherwise the listing falls back to its dates
func (s *Svc) ListEntries(ctx context.Context, userID string, in domain.EntriesInput) (domain.EntriesResponse, error) {
	req := domain.SearchRequest{UserID: userID, Query: strings.TrimSpace(in.Query), Limit: in.Limit}
	start, end, err := s.bounds(in.StartDate, in.EndDate)
	if err != nil {
		return domain.EntriesResponse{}, err
	}
	req.StartDate, req.EndDate = start, end

	if req.Query != "" {
		if vec, err := s.caps.Embed(ctx, req.Query); err == nil {
			req.Embedding = vec
		} else {
			logger.C(ctx).Debug().Err(err).Msg("listing without embedding")
		}
	}

	res, err := s.Search(ctx, req)
	if err != nil {
		return domain.EntriesResponse{}, err
	}
	out := domain.EntriesResponse{Entries: res.Entries, Count: len(res.Entries), Strategy: res.Strategy}
	if res.Constraint.Ok() {
		out.StartDate = res.Constraint.Start.Format(time.DateOnly)
		out.EndDate = res.Constraint.End.Format(time.DateOnly)
	}
	return out, nil
}

// bounds parses the explicit range, which must be given whole
func (s *Svc) bounds(rawStart, rawEnd string) (*time.Time, *time.Time, error) {
	rawStart, rawEnd = strings.TrimSpace(rawStart), strings.TrimSpace(rawEnd)
	if rawStart == "" && rawEnd == "" {
		return nil, nil, nil
	}
	if rawStart == "" || rawEnd == "" {
		field := "start_date"
		if rawEnd == "" {
			field = "end_date"
		}
		return nil, nil, perr.WithField(perr.Validationf("start_date and end_date must be given together"), field)
	}
	start, err := ptime.ParseDate(rawStart, s.loc)
	if err != nil {
		return nil, nil, perr.WithField(perr.Validationf("start_date must be a date in YYYY-MM-DD form"), "start_date")
	}
	end, err := ptime.ParseDate(rawEnd, s.loc)
	if err != nil {
		return nil, nil, perr.WithField(perr.Validationf("end_date must be a date in YYYY-MM-DD form"), "end_date")
	}
	if end.Before(start) {
		return nil, nil, perr.WithField(perr.InvalidArgf("end_date is before start_date"), "end_date")
	}
	return &start, &end, nil
}

// Probe checks both model capabilities with fixed inputs
func (s *Svc) Probe(ctx context.Context) domain.ProbeResponse {
	out := domain.ProbeResponse{Dimension: s.caps.Dimension()}
	log := logger.C(ctx)
	if _, err := s.caps.Embed(ctx, "This is a test."); err != nil {
		log.Warn().Err(err).Msg("embedding probe failed")
	} else {
		out.EmbeddingOK = true
	}
	if reply, err := s.caps.Generate(ctx, "Say hello!"); err != nil {
		log.Warn().Err(err).Msg("generation probe failed")
	} else {
		out.GenerationOK = true
		out.Sample = strings.TrimSpace(reply)
	}
	return out
}
