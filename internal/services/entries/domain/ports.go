package domain

import "context"

// ServicePort is the entries contract the http layer uses
type ServicePort interface {
	Create(ctx context.Context, userID string, in CreateInput) (EntryResponse, error)
	List(ctx context.Context, userID string, limit, offset int) (ListResponse, error)
	Get(ctx context.Context, userID, id string) (EntryResponse, error)
	Update(ctx context.Context, userID, id string, in UpdateInput) (EntryResponse, error)
	Delete(ctx context.Context, userID, id string) (DeleteResponse, error)
}
