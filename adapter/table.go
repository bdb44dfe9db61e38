package adapter

import "taskboard/domain"

// Table presents the projection as flat rows and maps inline edits onto
// field and status intents.
type Table struct {
	projector Projector
	submitter Submitter
	config    domain.ViewConfig
}

// Row is the table's display model for a task.
type Row struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Status        domain.Status   `json:"status"`
	StatusLabel   string          `json:"statusLabel"`
	Priority      domain.Priority `json:"priority"`
	PriorityLabel string          `json:"priorityLabel"`
	Assignee      string          `json:"assignee"`
	StartDate     *domain.Date    `json:"startDate,omitempty"`
	DueDate       *domain.Date    `json:"dueDate,omitempty"`
	Progress      int             `json:"progress"`
	Tags          []string        `json:"tags,omitempty"`
}

// NewTable builds a table adapter over the shared projector and router.
func NewTable(projector Projector, submitter Submitter, cfg domain.ViewConfig) *Table {
	return &Table{projector: projector, submitter: submitter, config: cfg}
}

// SetConfig replaces the table's view configuration.
func (t *Table) SetConfig(cfg domain.ViewConfig) { t.config = cfg }

// Config returns the current view configuration.
func (t *Table) Config() domain.ViewConfig { return t.config }

// SortBy switches the sort column, flipping direction when the column is
// already active.
func (t *Table) SortBy(key domain.SortKey) {
	if !key.Valid() {
		return
	}
	if t.config.SortBy == key {
		if t.config.Order == domain.Ascending {
			t.config.Order = domain.Descending
		} else {
			t.config.Order = domain.Ascending
		}
		return
	}
	t.config.SortBy = key
	t.config.Order = domain.Ascending
}

// Rows derives the row sequence from the current projection.
func (t *Table) Rows() []Row {
	tasks := t.projector.Project(t.config.ScopeProjectID, t.config.Filter, t.config.SortBy, t.config.Order)
	rows := make([]Row, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, rowFromTask(task))
	}
	return rows
}

// EditStatus commits an inline status cell edit.
func (t *Table) EditStatus(taskID string, status domain.Status) error {
	_, err := t.submitter.Submit(domain.StatusMove{TaskID: taskID, NewStatus: status})
	return err
}

// EditFields commits an inline edit of arbitrary cells.
func (t *Table) EditFields(taskID string, fields domain.TaskPatch) error {
	_, err := t.submitter.Submit(domain.FieldEdit{TaskID: taskID, Fields: fields})
	return err
}

func rowFromTask(t domain.Task) Row {
	return Row{
		ID:            t.ID,
		Title:         t.Title,
		Status:        t.Status,
		StatusLabel:   StatusLabel(t.Status),
		Priority:      t.Priority,
		PriorityLabel: PriorityLabel(t.Priority),
		Assignee:      t.Assignee,
		StartDate:     t.StartDate,
		DueDate:       t.DueDate,
		Progress:      t.Progress,
		Tags:          t.Tags,
	}
}
