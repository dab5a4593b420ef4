package domain

import "context"

// ServicePort is the search contract the http layer uses
type ServicePort interface {
	AnswerQuery(ctx context.Context, userID, query string) (Answer, error)
	ListEntries(ctx context.Context, userID string, in EntriesInput) (EntriesResponse, error)
	Probe(ctx context.Context) ProbeResponse
}

// EventSink records answered searches, best effort
type EventSink interface {
	Record(ctx context.Context, ev Event)
}
