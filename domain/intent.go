package domain

// Intent is a typed request to change exactly one task. Every view gesture
// that mutates data is expressed as one of the four concrete intents below
// and funneled through the mutation router.
type Intent interface {
	// Target returns the id of the task the intent applies to.
	Target() string
}

// StatusMove changes a task's workflow status, e.g. a board card dropped on
// another column or an inline status edit in the table view.
type StatusMove struct {
	TaskID    string `json:"taskId"`
	NewStatus Status `json:"newStatus"`
}

func (m StatusMove) Target() string { return m.TaskID }

// DateMove rewrites both scheduling dates at once, e.g. a timeline bar moved
// or resized, or a calendar event dragged to another day.
type DateMove struct {
	TaskID   string `json:"taskId"`
	NewStart Date   `json:"newStart"`
	NewDue   Date   `json:"newDue"`
}

func (m DateMove) Target() string { return m.TaskID }

// ProgressChange sets a task's completion percentage.
type ProgressChange struct {
	TaskID      string `json:"taskId"`
	NewProgress int    `json:"newProgress"`
}

func (m ProgressChange) Target() string { return m.TaskID }

// FieldEdit merges arbitrary partial fields, e.g. an inline table edit or a
// field set produced by the external edit form collaborator.
type FieldEdit struct {
	TaskID string    `json:"taskId"`
	Fields TaskPatch `json:"fields"`
}

func (m FieldEdit) Target() string { return m.TaskID }
