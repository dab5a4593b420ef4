package domain

// CreateInput writes a new entry, entry_date defaults to today
type CreateInput struct {
	Content   string `json:"content" validate:"required,notblank,max=20000" example:"Walked the dog by the river."`
	EntryDate string `json:"entry_date,omitempty" validate:"omitempty,isodate" example:"2025-08-15"`
}

// UpdateInput changes content and/or entry_date, absent fields are kept
type UpdateInput struct {
	Content   *string `json:"content,omitempty" validate:"omitempty,notblank,max=20000"`
	EntryDate *string `json:"entry_date,omitempty" validate:"omitempty,isodate" example:"2025-08-14"`
}

// EntryResponse wraps one entry
type EntryResponse struct {
	Entry        Entry `json:"entry"`
	HasEmbedding bool  `json:"has_embedding"`
}

// ListResponse wraps the caller's entries, newest first
type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// DeleteResponse confirms a delete
type DeleteResponse struct {
	Message string `json:"message" example:"Entry deleted successfully"`
}
