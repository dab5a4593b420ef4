package domain

// AskInput is a natural language question about the caller's journal
type AskInput struct {
	Query string `json:"query" validate:"required,notblank,max=2000" example:"What did I do last week?"`
}

// AskResponse is the synthesized answer
type AskResponse struct {
	Response             string `json:"response" example:"Last week you walked the dog twice and started a new book."`
	RelevantEntriesCount int    `json:"relevant_entries_count" example:"3"`
	AIAvailable          bool   `json:"ai_available" example:"true"`
}

// EntriesInput lists matching entries without synthesis
// start_date and end_date only apply together
type EntriesInput struct {
	Query     string `json:"query,omitempty" validate:"omitempty,max=2000" example:"walks by the river"`
	StartDate string `json:"start_date,omitempty" validate:"omitempty,isodate" example:"2025-08-01"`
	EndDate   string `json:"end_date,omitempty" validate:"omitempty,isodate" example:"2025-08-31"`
	Limit     int    `json:"limit,omitempty" validate:"omitempty,min=1,max=50" example:"10"`
}

// EntriesResponse is the ordered result of a plain search
type EntriesResponse struct {
	Entries   []Entry  `json:"entries"`
	Count     int      `json:"count" example:"2"`
	Strategy  Strategy `json:"strategy" example:"similarity"`
	StartDate string   `json:"start_date,omitempty" example:"2025-08-01"`
	EndDate   string   `json:"end_date,omitempty" example:"2025-08-31"`
}

// ProbeResponse reports which model capabilities answer right now
type ProbeResponse struct {
	EmbeddingOK  bool   `json:"embedding_ok"`
	GenerationOK bool   `json:"generation_ok"`
	Dimension    int    `json:"dimension" example:"768"`
	Sample       string `json:"sample,omitempty" example:"Hello!"`
}
