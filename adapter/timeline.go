package adapter

import "taskboard/domain"

// Timeline presents the projection as gantt bars and maps bar drags and
// resizes onto date moves.
type Timeline struct {
	projector Projector
	submitter Submitter
	config    domain.ViewConfig
}

// Bar is the timeline's display model for a task. Tasks without a start date
// render as a single-day bar on their due date.
type Bar struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Start         domain.Date `json:"start"`
	Due           domain.Date `json:"due"`
	Progress      int         `json:"progress"`
	StatusColor   string      `json:"statusColor"`
	PriorityColor string      `json:"priorityColor"`
	Dependencies  []string    `json:"dependencies,omitempty"`
}

// NewTimeline builds a timeline adapter over the shared projector and router.
func NewTimeline(projector Projector, submitter Submitter, cfg domain.ViewConfig) *Timeline {
	return &Timeline{projector: projector, submitter: submitter, config: cfg}
}

// SetConfig replaces the timeline's view configuration.
func (tl *Timeline) SetConfig(cfg domain.ViewConfig) { tl.config = cfg }

// Config returns the current view configuration.
func (tl *Timeline) Config() domain.ViewConfig { return tl.config }

// Bars derives the bar sequence from the current projection. Tasks without a
// due date have no position on the timeline and are skipped.
func (tl *Timeline) Bars() []Bar {
	tasks := tl.projector.Project(tl.config.ScopeProjectID, tl.config.Filter, tl.config.SortBy, tl.config.Order)
	bars := make([]Bar, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		start := *t.DueDate
		if t.StartDate != nil && !t.StartDate.IsZero() {
			start = *t.StartDate
		}
		bars = append(bars, Bar{
			ID:            t.ID,
			Title:         t.Title,
			Start:         start,
			Due:           *t.DueDate,
			Progress:      t.Progress,
			StatusColor:   StatusColor(t.Status),
			PriorityColor: PriorityColor(t.Priority),
			Dependencies:  t.Dependencies,
		})
	}
	return bars
}

// MoveBar commits a whole-bar drag: both dates shift by the drag delta. The
// widget calls this on drop only; an abandoned drag never reaches the router.
func (tl *Timeline) MoveBar(taskID string, newStart, newDue domain.Date) error {
	_, err := tl.submitter.Submit(domain.DateMove{TaskID: taskID, NewStart: newStart, NewDue: newDue})
	return err
}

// ResizeBar commits a bar-edge drag changing one end of the range. The
// router rejects an inverted range, leaving the bar to snap back on the next
// Bars call.
func (tl *Timeline) ResizeBar(taskID string, newStart, newDue domain.Date) error {
	_, err := tl.submitter.Submit(domain.DateMove{TaskID: taskID, NewStart: newStart, NewDue: newDue})
	return err
}

// DragProgress commits a progress-handle drag.
func (tl *Timeline) DragProgress(taskID string, progress int) error {
	_, err := tl.submitter.Submit(domain.ProgressChange{TaskID: taskID, NewProgress: progress})
	return err
}
