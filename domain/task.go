package domain

import "time"

// Status identifies the workflow column a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Statuses lists all statuses in board column order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Priority identifies how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank returns the fixed priority ordering: urgent=4, high=3, medium=2, low=1.
// Unknown priorities rank below low.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Task represents a single work item shared by every view.
type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	StartDate    *Date     `json:"startDate,omitempty"`
	DueDate      *Date     `json:"dueDate,omitempty"`
	Status       Status    `json:"status"`
	Priority     Priority  `json:"priority"`
	ProjectID    string    `json:"projectId,omitempty"`
	AssigneeID   string    `json:"assigneeId,omitempty"`
	Assignee     string    `json:"assignee"`
	Progress     int       `json:"progress"`
	Dependencies []string  `json:"dependencies,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TaskDraft carries the fields an external creation collaborator hands to the
// store. The id and both timestamps are assigned by the store.
type TaskDraft struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	StartDate    *Date    `json:"startDate,omitempty"`
	DueDate      *Date    `json:"dueDate,omitempty"`
	Status       Status   `json:"status,omitempty"`
	Priority     Priority `json:"priority,omitempty"`
	ProjectID    string   `json:"projectId,omitempty"`
	AssigneeID   string   `json:"assigneeId,omitempty"`
	Assignee     string   `json:"assignee"`
	Progress     int      `json:"progress,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// TaskPatch carries partial updates for a task. Nil fields are left untouched.
type TaskPatch struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	StartDate    *Date     `json:"startDate,omitempty"`
	DueDate      *Date     `json:"dueDate,omitempty"`
	Status       *Status   `json:"status,omitempty"`
	Priority     *Priority `json:"priority,omitempty"`
	ProjectID    *string   `json:"projectId,omitempty"`
	AssigneeID   *string   `json:"assigneeId,omitempty"`
	Assignee     *string   `json:"assignee,omitempty"`
	Progress     *int      `json:"progress,omitempty"`
	Dependencies []string  `json:"dependencies,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
}

// IsZero reports whether the patch carries no fields at all.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.StartDate == nil &&
		p.DueDate == nil && p.Status == nil && p.Priority == nil &&
		p.ProjectID == nil && p.AssigneeID == nil && p.Assignee == nil &&
		p.Progress == nil && p.Dependencies == nil && p.Tags == nil
}
