package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"inkwell/internal/platform/logger"
	pstrings "inkwell/internal/platform/strings"
	"inkwell/internal/services/search/domain"
)

// Prompt context bounds
const (
	MaxContextEntries = 10
	MaxContextChars   = 12000
)

const answerPrompt = `Based on the following journal entries, please answer the user's question in a conversational and helpful manner. Provide specific details from the entries when relevant, and mention dates when appropriate.

Journal Entries:
{context}

User's Question: {query}

Please provide a concise, summary-style answer that directly addresses the question:`

// Answer synthesizes a reply from entries with at most one generation call
// Count is always len(entries), even when generation fails
func (s *Svc) Answer(ctx context.Context, query string, entries []domain.Entry) domain.Answer {
	if len(entries) == 0 {
		return domain.Answer{Text: domain.MessageNoEntries, CapabilityAvailable: true}
	}
	prompt := strings.NewReplacer(
		"{context}", buildContext(entries, s.maxEntries, s.maxChars),
		"{query}", strings.TrimSpace(query),
	).Replace(answerPrompt)

	text, err := s.caps.Generate(ctx, prompt)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int("entries", len(entries)).Msg("answer generation failed")
		return domain.Answer{Text: domain.MessageGenerationFail, Count: len(entries)}
	}
	return domain.Answer{Text: strings.TrimSpace(text), Count: len(entries), CapabilityAvailable: true}
}

// buildContext renders "<YYYY-MM-DD>: <content>" blocks in order, separated by a
// blank line, stopping at maxEntries or before maxChars would be passed
// the first block is cut to fit rather than dropped
func buildContext(entries []domain.Entry, maxEntries, maxChars int) string {
	var b strings.Builder
	for i, e := range entries {
		if i == maxEntries {
			break
		}
		block := e.Day().Format(time.DateOnly) + ": " + e.Content
		sep := ""
		if i > 0 {
			sep = "\n\n"
		}
		if b.Len()+len(sep)+len(block) > maxChars {
			if i == 0 {
				b.WriteString(pstrings.Truncate(block, maxChars))
			}
			break
		}
		b.WriteString(sep)
		b.WriteString(block)
	}
	return b.String()
}

// AnswerQuery embeds the question, extracts its date filter, searches and answers
// capability failures degrade to canned messages; only a missing user errors
func (s *Svc) AnswerQuery(ctx context.Context, userID, query string) (domain.Answer, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Answer{}, domain.ErrUnauthorized
	}
	start := s.now()
	ev := domain.Event{UserID: userID, QueryLength: utf8.RuneCountInString(query), Strategy: domain.StrategyNone, At: start}

	vec, err := s.caps.Embed(ctx, query)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("query embedding failed")
		ans := domain.Answer{Text: domain.MessageEmbeddingFailed}
		s.record(ctx, ev, ans, start)
		return ans, nil
	}
	filter := s.caps.ExtractDateFilter(ctx, query)

	res, err := s.Search(ctx, domain.SearchRequest{
		UserID:     userID,
		Query:      query,
		Embedding:  vec,
		DateFilter: &filter,
		Limit:      domain.DefaultLimit,
	})
	if err != nil {
		return domain.Answer{}, err
	}
	res = s.dateFallback(ctx, userID, res)
	ev.Strategy = res.Strategy
	ans := s.Answer(ctx, query, res.Entries)
	s.record(ctx, ev, ans, start)
	return ans, nil
}

// dateFallback answers from the date tiers when similarity found nothing inside a
// resolved range, which covers entries saved while embeddings were unavailable
func (s *Svc) dateFallback(ctx context.Context, userID string, res domain.Result) domain.Result {
	if res.Strategy != domain.StrategySimilarity || len(res.Entries) > 0 || !res.Constraint.Ok() {
		return res
	}
	rows, err := s.RangeQuery(ctx, userID, &res.Constraint.Range, domain.DefaultLimit)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("date fallback failed")
		return res
	}
	if len(rows) > 0 {
		res.Entries, res.Strategy, res.Ranker = rows, domain.StrategyDate, ""
	}
	return res
}

// record hands the event to the sink without waiting for it
func (s *Svc) record(ctx context.Context, ev domain.Event, ans domain.Answer, start time.Time) {
	ev.Count = ans.Count
	ev.AIAvailable = ans.CapabilityAvailable
	ev.Latency = s.now().Sub(start)
	go s.events.Record(context.WithoutCancel(ctx), ev)
}
