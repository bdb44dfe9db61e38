package adapter

import (
	"testing"
	"time"

	"taskboard/domain"
	"taskboard/mutation"
	"taskboard/storage"
	"taskboard/view"
)

type fixture struct {
	store     *storage.TaskStore
	projector *view.Projector
	router    *mutation.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewTaskStore()
	return &fixture{
		store:     store,
		projector: view.NewProjector(store),
		router:    mutation.NewRouter(store, nil),
	}
}

func (f *fixture) seed(t *testing.T, draft domain.TaskDraft) domain.Task {
	t.Helper()
	if draft.DueDate == nil {
		due := domain.NewDate(2024, time.May, 10)
		draft.DueDate = &due
	}
	if draft.Assignee == "" {
		draft.Assignee = "Alex"
	}
	task, err := f.store.Create(draft)
	if err != nil {
		t.Fatalf("seed %q: %v", draft.Title, err)
	}
	return task
}

func TestBoardGroupsCardsByStatus(t *testing.T) {
	f := newFixture(t)
	f.seed(t, domain.TaskDraft{Title: "todo one", Status: domain.StatusTodo})
	f.seed(t, domain.TaskDraft{Title: "doing", Status: domain.StatusInProgress})
	f.seed(t, domain.TaskDraft{Title: "todo two", Status: domain.StatusTodo})

	board := NewBoard(f.projector, f.router, domain.DefaultViewConfig())
	cols := board.Columns()
	if len(cols) != len(domain.Statuses) {
		t.Fatalf("expected %d columns, got %d", len(domain.Statuses), len(cols))
	}
	if cols[0].Status != domain.StatusTodo || len(cols[0].Cards) != 2 {
		t.Fatalf("todo column wrong: %+v", cols[0])
	}
	if cols[1].Status != domain.StatusInProgress || len(cols[1].Cards) != 1 {
		t.Fatalf("in-progress column wrong: %+v", cols[1])
	}
	if len(cols[2].Cards) != 0 || len(cols[3].Cards) != 0 {
		t.Fatal("expected empty review and done columns")
	}
	if cols[0].Label != "To Do" {
		t.Fatalf("unexpected column label %q", cols[0].Label)
	}
}

func TestBoardDropCardMovesStatusAcrossAllViews(t *testing.T) {
	f := newFixture(t)
	task := f.seed(t, domain.TaskDraft{Title: "movable", Status: domain.StatusTodo})

	board := NewBoard(f.projector, f.router, domain.DefaultViewConfig())
	table := NewTable(f.projector, f.router, domain.DefaultViewConfig())

	if err := board.DropCard(task.ID, domain.StatusReview); err != nil {
		t.Fatalf("drop: %v", err)
	}

	cols := board.Columns()
	if len(cols[2].Cards) != 1 || cols[2].Cards[0].ID != task.ID {
		t.Fatalf("card not in review column: %+v", cols[2])
	}
	// The table re-derives from the same store and agrees immediately.
	rows := table.Rows()
	if len(rows) != 1 || rows[0].Status != domain.StatusReview {
		t.Fatalf("table out of sync: %+v", rows)
	}
}

func TestBoardDropOnUnknownStatusFailsWithoutChange(t *testing.T) {
	f := newFixture(t)
	task := f.seed(t, domain.TaskDraft{Title: "stuck", Status: domain.StatusTodo})

	board := NewBoard(f.projector, f.router, domain.DefaultViewConfig())
	if err := board.DropCard(task.ID, domain.Status("archived")); err == nil {
		t.Fatal("expected error for unknown status")
	}
	cols := board.Columns()
	if len(cols[0].Cards) != 1 {
		t.Fatalf("card left its column after failed drop: %+v", cols)
	}
}

func TestTableSortByTogglesDirection(t *testing.T) {
	f := newFixture(t)
	table := NewTable(f.projector, f.router, domain.DefaultViewConfig())

	table.SortBy(domain.SortByPriority)
	if cfg := table.Config(); cfg.SortBy != domain.SortByPriority || cfg.Order != domain.Ascending {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	table.SortBy(domain.SortByPriority)
	if cfg := table.Config(); cfg.Order != domain.Descending {
		t.Fatalf("expected direction flip, got %+v", cfg)
	}
	table.SortBy(domain.SortByCreated)
	if cfg := table.Config(); cfg.SortBy != domain.SortByCreated || cfg.Order != domain.Ascending {
		t.Fatalf("expected reset to ascending, got %+v", cfg)
	}
}

func TestTableEditFields(t *testing.T) {
	f := newFixture(t)
	task := f.seed(t, domain.TaskDraft{Title: "editable"})

	table := NewTable(f.projector, f.router, domain.DefaultViewConfig())
	title := "edited inline"
	if err := table.EditFields(task.ID, domain.TaskPatch{Title: &title}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	rows := table.Rows()
	if rows[0].Title != title {
		t.Fatalf("edit not visible: %+v", rows[0])
	}
}

func TestTimelineBarsSkipUndatedAndDefaultStart(t *testing.T) {
	f := newFixture(t)
	start := domain.NewDate(2024, time.May, 1)
	due := domain.NewDate(2024, time.May, 10)
	ranged := f.seed(t, domain.TaskDraft{Title: "ranged", StartDate: &start, DueDate: &due})
	pointDue := domain.NewDate(2024, time.May, 5)
	point := f.seed(t, domain.TaskDraft{Title: "point", DueDate: &pointDue})

	tl := NewTimeline(f.projector, f.router, domain.DefaultViewConfig())
	bars := tl.Bars()
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	byID := map[string]Bar{}
	for _, b := range bars {
		byID[b.ID] = b
	}
	if b := byID[ranged.ID]; !b.Start.Equal(start) || !b.Due.Equal(due) {
		t.Fatalf("ranged bar wrong: %+v", b)
	}
	if b := byID[point.ID]; !b.Start.Equal(pointDue) || !b.Due.Equal(pointDue) {
		t.Fatalf("point bar should be single-day on due date: %+v", b)
	}
}

func TestTimelineInvalidResizeSnapsBack(t *testing.T) {
	f := newFixture(t)
	start := domain.NewDate(2024, time.May, 1)
	due := domain.NewDate(2024, time.May, 10)
	task := f.seed(t, domain.TaskDraft{Title: "bar", StartDate: &start, DueDate: &due})

	tl := NewTimeline(f.projector, f.router, domain.DefaultViewConfig())
	err := tl.ResizeBar(task.ID, domain.NewDate(2024, time.May, 20), domain.NewDate(2024, time.May, 10))
	if err == nil {
		t.Fatal("expected inverted resize to fail")
	}
	// The next Bars call still shows the pre-gesture range.
	bars := tl.Bars()
	if !bars[0].Start.Equal(start) || !bars[0].Due.Equal(due) {
		t.Fatalf("bar did not snap back: %+v", bars[0])
	}
}

func TestTimelineDragProgress(t *testing.T) {
	f := newFixture(t)
	task := f.seed(t, domain.TaskDraft{Title: "progress"})

	tl := NewTimeline(f.projector, f.router, domain.DefaultViewConfig())
	if err := tl.DragProgress(task.ID, 75); err != nil {
		t.Fatalf("drag: %v", err)
	}
	if bars := tl.Bars(); bars[0].Progress != 75 {
		t.Fatalf("progress not applied: %+v", bars[0])
	}
}

func TestCalendarMoveEventPreservesSpan(t *testing.T) {
	f := newFixture(t)
	start := domain.NewDate(2024, time.May, 1)
	due := domain.NewDate(2024, time.May, 4)
	task := f.seed(t, domain.TaskDraft{Title: "spanned", StartDate: &start, DueDate: &due})

	cal := NewCalendar(f.projector, f.router, domain.DefaultViewConfig())
	newDue := domain.NewDate(2024, time.May, 14)
	if err := cal.MoveEvent(task.ID, newDue); err != nil {
		t.Fatalf("move: %v", err)
	}

	current, err := f.store.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !current.DueDate.Equal(newDue) {
		t.Fatalf("due not moved: %v", current.DueDate)
	}
	if !current.StartDate.Equal(domain.NewDate(2024, time.May, 11)) {
		t.Fatalf("span not preserved: %v", current.StartDate)
	}
}

func TestCalendarEventsOnFiltersByDay(t *testing.T) {
	f := newFixture(t)
	d1 := domain.NewDate(2024, time.May, 1)
	d2 := domain.NewDate(2024, time.May, 2)
	f.seed(t, domain.TaskDraft{Title: "day one", DueDate: &d1})
	f.seed(t, domain.TaskDraft{Title: "day two", DueDate: &d2})

	cal := NewCalendar(f.projector, f.router, domain.DefaultViewConfig())
	events := cal.EventsOn(d1)
	if len(events) != 1 || events[0].Title != "day one" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestStyleTablesCoverAllVariants(t *testing.T) {
	for _, s := range domain.Statuses {
		if StatusLabel(s) == "" || StatusColor(s) == "" {
			t.Fatalf("missing style entry for status %s", s)
		}
	}
	for _, p := range []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent} {
		if PriorityLabel(p) == "" || PriorityColor(p) == "" {
			t.Fatalf("missing style entry for priority %s", p)
		}
	}
}

func TestAdaptersShareOneSourceOfTruth(t *testing.T) {
	f := newFixture(t)
	start := domain.NewDate(2024, time.May, 1)
	due := domain.NewDate(2024, time.May, 3)
	task := f.seed(t, domain.TaskDraft{Title: "shared", StartDate: &start, DueDate: &due})

	board := NewBoard(f.projector, f.router, domain.DefaultViewConfig())
	table := NewTable(f.projector, f.router, domain.DefaultViewConfig())
	tl := NewTimeline(f.projector, f.router, domain.DefaultViewConfig())
	cal := NewCalendar(f.projector, f.router, domain.DefaultViewConfig())

	newDue := domain.NewDate(2024, time.June, 3)
	if err := cal.MoveEvent(task.ID, newDue); err != nil {
		t.Fatalf("move: %v", err)
	}

	if bars := tl.Bars(); !bars[0].Due.Equal(newDue) {
		t.Fatalf("timeline stale: %+v", bars[0])
	}
	if rows := table.Rows(); !rows[0].DueDate.Equal(newDue) {
		t.Fatalf("table stale: %+v", rows[0])
	}
	var found bool
	for _, col := range board.Columns() {
		for _, card := range col.Cards {
			if card.ID == task.ID && card.DueDate != nil && card.DueDate.Equal(newDue) {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("board stale after calendar move")
	}
	if events := cal.EventsOn(newDue); len(events) != 1 {
		t.Fatalf("calendar stale: %+v", events)
	}
}
