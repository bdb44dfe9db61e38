package adapter

import "taskboard/domain"

// Calendar presents the projection as due-date events and maps event drags
// and resizes onto date moves.
type Calendar struct {
	projector Projector
	submitter Submitter
	config    domain.ViewConfig
}

// Event is the calendar's display model for a task, keyed by its due date.
type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Date        domain.Date  `json:"date"`
	Start       *domain.Date `json:"start,omitempty"`
	StatusColor string       `json:"statusColor"`
	Assignee    string       `json:"assignee"`
}

// NewCalendar builds a calendar adapter over the shared projector and router.
func NewCalendar(projector Projector, submitter Submitter, cfg domain.ViewConfig) *Calendar {
	return &Calendar{projector: projector, submitter: submitter, config: cfg}
}

// SetConfig replaces the calendar's view configuration.
func (c *Calendar) SetConfig(cfg domain.ViewConfig) { c.config = cfg }

// Config returns the current view configuration.
func (c *Calendar) Config() domain.ViewConfig { return c.config }

// Events derives the event sequence from the current projection. Tasks
// without a due date have no calendar position and are skipped.
func (c *Calendar) Events() []Event {
	tasks := c.projector.Project(c.config.ScopeProjectID, c.config.Filter, c.config.SortBy, c.config.Order)
	events := make([]Event, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		events = append(events, Event{
			ID:          t.ID,
			Title:       t.Title,
			Date:        *t.DueDate,
			Start:       t.StartDate,
			StatusColor: StatusColor(t.Status),
			Assignee:    t.Assignee,
		})
	}
	return events
}

// EventsOn returns the events falling on one day.
func (c *Calendar) EventsOn(day domain.Date) []Event {
	var out []Event
	for _, ev := range c.Events() {
		if ev.Date.Equal(day) {
			out = append(out, ev)
		}
	}
	return out
}

// MoveEvent commits an event drag to another day. The whole scheduling range
// shifts with the due date so the task keeps its span.
func (c *Calendar) MoveEvent(taskID string, newDue domain.Date) error {
	newStart := newDue
	if t, ok := c.lookup(taskID); ok && t.StartDate != nil && t.DueDate != nil {
		span := t.StartDate.DaysUntil(*t.DueDate)
		newStart = newDue.AddDays(-span)
	}
	_, err := c.submitter.Submit(domain.DateMove{TaskID: taskID, NewStart: newStart, NewDue: newDue})
	return err
}

func (c *Calendar) lookup(taskID string) (domain.Task, bool) {
	tasks := c.projector.Project(c.config.ScopeProjectID, c.config.Filter, c.config.SortBy, c.config.Order)
	for _, t := range tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return domain.Task{}, false
}

// ResizeEvent commits an event-edge drag rewriting both dates explicitly.
func (c *Calendar) ResizeEvent(taskID string, newStart, newDue domain.Date) error {
	_, err := c.submitter.Submit(domain.DateMove{TaskID: taskID, NewStart: newStart, NewDue: newDue})
	return err
}
