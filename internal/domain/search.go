package domain

import "fmt"

// SearchStatus represents the phase of the user search lifecycle
type SearchStatus string

const (
	StatusIdle      SearchStatus = "idle"
	StatusSearching SearchStatus = "searching"
	StatusSuccess   SearchStatus = "success"
	StatusFailed    SearchStatus = "failed"
)

// DurationUnset marks a SearchState that has no recorded search duration yet.
const DurationUnset int64 = -1

// SearchState is the full observable state of the search controller.
// Error is empty unless the last search failed; DurationMS is DurationUnset
// until a search completes successfully.
type SearchState struct {
	Query      string       `json:"query"`
	Status     SearchStatus `json:"status"`
	Users      []User       `json:"users"`
	TotalCount int          `json:"total_count"`
	DurationMS int64        `json:"duration_ms"`
	Error      string       `json:"error,omitempty"`
	RequestID  string       `json:"request_id,omitempty"`
}

// NewSearchState returns the empty baseline state
func NewSearchState() SearchState {
	return SearchState{
		Status:     StatusIdle,
		Users:      []User{},
		DurationMS: DurationUnset,
	}
}

// Summary renders the one-line result header shown above the user list.
func (s *SearchState) Summary() string {
	return fmt.Sprintf("Showing users for %q completed in %dms — %d results", s.Query, s.DurationMS, s.TotalCount)
}
