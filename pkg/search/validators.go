package search

// UnifiedSearchQuery represents the query parameters for unified search.
type UnifiedSearchQuery struct {
	Query       string `query:"q" json:"q" validate:"required,min=1,max=100"`
	Filter      string `query:"filter" json:"filter,omitempty" validate:"omitempty,category"`
	LibraryOnly bool   `query:"library_only" json:"library_only,omitempty"`
	Limit       int    `query:"limit" json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
}

// SuggestionsQuery represents the query parameters for search suggestions.
type SuggestionsQuery struct {
	Prefix string `query:"q" json:"q,omitempty" validate:"omitempty,max=100"`
	Limit  int    `query:"limit" json:"limit,omitempty" default:"10" validate:"min=1,max=25"`
}

// SuggestionsResponse is the response of the suggestions endpoint.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
