package domain

// Filter is the structural filter specification a view applies to its
// projected task set. Absent predicates impose no constraint; present
// predicates are ANDed.
type Filter struct {
	Assignee   string     `json:"assignee,omitempty"`
	Statuses   []Status   `json:"statuses,omitempty"`
	Priorities []Priority `json:"priorities,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	DueFrom    *Date      `json:"dueFrom,omitempty"`
	DueTo      *Date      `json:"dueTo,omitempty"`
	Search     string     `json:"search,omitempty"`
}

// IsZero reports whether no predicate is present.
func (f Filter) IsZero() bool {
	return f.Assignee == "" && len(f.Statuses) == 0 && len(f.Priorities) == 0 &&
		len(f.Tags) == 0 && f.DueFrom == nil && f.DueTo == nil && f.Search == ""
}

// SortKey selects the comparator a view sorts its projection by.
type SortKey string

const (
	SortByDueDate  SortKey = "dueDate"
	SortByPriority SortKey = "priority"
	SortByCreated  SortKey = "created"
	SortByUpdated  SortKey = "updated"
)

// Valid reports whether k is one of the known sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortByDueDate, SortByPriority, SortByCreated, SortByUpdated:
		return true
	}
	return false
}

// SortOrder selects the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Valid reports whether o is a known direction.
func (o SortOrder) Valid() bool {
	return o == Ascending || o == Descending
}

// ViewConfig is the per-view state a hosting view controller owns: the active
// filter, the sort, and the optional restriction to one external project.
// It is session state only; the core never persists it.
type ViewConfig struct {
	ScopeProjectID string    `json:"scopeProjectId,omitempty"`
	Filter         Filter    `json:"filter"`
	SortBy         SortKey   `json:"sortBy"`
	Order          SortOrder `json:"order"`
}

// DefaultViewConfig returns the configuration every view starts from.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{SortBy: SortByDueDate, Order: Ascending}
}
