package adapter

import "taskboard/domain"

// Board presents the projection as status-grouped kanban columns and turns
// card drops into status moves.
type Board struct {
	projector Projector
	submitter Submitter
	config    domain.ViewConfig
}

// Column is one kanban lane.
type Column struct {
	Status domain.Status `json:"status"`
	Label  string        `json:"label"`
	Color  string        `json:"color"`
	Cards  []Card        `json:"cards"`
}

// Card is the board's display model for a task.
type Card struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Assignee      string          `json:"assignee"`
	Priority      domain.Priority `json:"priority"`
	PriorityLabel string          `json:"priorityLabel"`
	PriorityColor string          `json:"priorityColor"`
	DueDate       *domain.Date    `json:"dueDate,omitempty"`
	Progress      int             `json:"progress"`
	Tags          []string        `json:"tags,omitempty"`
}

// NewBoard builds a board adapter over the shared projector and router.
func NewBoard(projector Projector, submitter Submitter, cfg domain.ViewConfig) *Board {
	return &Board{projector: projector, submitter: submitter, config: cfg}
}

// SetConfig replaces the board's view configuration.
func (b *Board) SetConfig(cfg domain.ViewConfig) { b.config = cfg }

// Config returns the current view configuration.
func (b *Board) Config() domain.ViewConfig { return b.config }

// Columns derives the lanes from the current projection. Column order is the
// fixed workflow order; card order within a lane follows the projection.
func (b *Board) Columns() []Column {
	tasks := b.projector.Project(b.config.ScopeProjectID, b.config.Filter, b.config.SortBy, b.config.Order)
	byStatus := make(map[domain.Status][]Card, len(domain.Statuses))
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], cardFromTask(t))
	}
	cols := make([]Column, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		cols = append(cols, Column{
			Status: s,
			Label:  StatusLabel(s),
			Color:  StatusColor(s),
			Cards:  byStatus[s],
		})
	}
	return cols
}

// DropCard commits a card drag onto another column. On error the caller
// re-renders from Columns, which still reflects the unchanged store.
func (b *Board) DropCard(taskID string, target domain.Status) error {
	_, err := b.submitter.Submit(domain.StatusMove{TaskID: taskID, NewStatus: target})
	return err
}

func cardFromTask(t domain.Task) Card {
	return Card{
		ID:            t.ID,
		Title:         t.Title,
		Assignee:      t.Assignee,
		Priority:      t.Priority,
		PriorityLabel: PriorityLabel(t.Priority),
		PriorityColor: PriorityColor(t.Priority),
		DueDate:       t.DueDate,
		Progress:      t.Progress,
		Tags:          t.Tags,
	}
}
