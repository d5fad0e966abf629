package model

// SectionDescriptor describes one top-level navigable area of the dashboard.
// Descriptors are immutable once the registry is built.
type SectionDescriptor struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title,omitempty"`
	Icon  string `yaml:"icon" json:"icon,omitempty"`
	Route string `yaml:"route" json:"route,omitempty"`
}

// Known reports whether the descriptor came from the registry rather than
// being synthesized for an unknown id.
func (s SectionDescriptor) Known() bool {
	return s.Title != "" || s.Route != ""
}

// NavigationState is the persisted sidebar state.
type NavigationState struct {
	CurrentSectionID string
	Collapsed        bool
}

// SectionChanged is published whenever the active section changes.
// Section carries only the ID when SectionID is not a registered section.
type SectionChanged struct {
	SectionID string
	Section   SectionDescriptor
}

// MatchType labels which field of a record matched a search query.
type MatchType string

const (
	MatchQuestion MatchType = "question"
	MatchAnswer   MatchType = "answer"
)

// SearchRecord is one entry of a search dataset.
type SearchRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SearchResultEntry is a single search hit.
type SearchResultEntry struct {
	Question  string
	Answer    string
	MatchType MatchType
}

// SearchResultGroup holds the hits contributed by one dataset.
type SearchResultGroup struct {
	SectionID string
	Title     string
	Matches   []SearchResultEntry
}
