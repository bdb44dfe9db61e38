package mutation

import (
	"errors"
	"testing"
	"time"

	"taskboard/domain"
	"taskboard/storage"
	"taskboard/view"
)

func newFixture(t *testing.T) (*storage.TaskStore, *Router, domain.Task) {
	t.Helper()
	store := storage.NewTaskStore()
	start := domain.NewDate(2024, time.January, 1)
	due := domain.NewDate(2024, time.January, 8)
	task, err := store.Create(domain.TaskDraft{
		Title:     "Prepare shipment",
		Assignee:  "Alex",
		StartDate: &start,
		DueDate:   &due,
		Status:    domain.StatusTodo,
	})
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return store, NewRouter(store, nil), task
}

func TestStatusMoveChangesOnlyStatusAndUpdatedAt(t *testing.T) {
	store, router, task := newFixture(t)

	updated, err := router.Submit(domain.StatusMove{TaskID: task.ID, NewStatus: domain.StatusInProgress})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if updated.Status != domain.StatusInProgress {
		t.Fatalf("expected in-progress, got %s", updated.Status)
	}
	if updated.StartDate == nil || !updated.StartDate.Equal(domain.NewDate(2024, time.January, 1)) {
		t.Fatalf("start date changed: %v", updated.StartDate)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(domain.NewDate(2024, time.January, 8)) {
		t.Fatalf("due date changed: %v", updated.DueDate)
	}
	if updated.Progress != task.Progress {
		t.Fatalf("status move touched progress: %d", updated.Progress)
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Fatal("createdAt changed")
	}
	if updated.UpdatedAt.Before(task.UpdatedAt) {
		t.Fatalf("updatedAt went backwards: %v < %v", updated.UpdatedAt, task.UpdatedAt)
	}

	// The projection for each status set reflects the move.
	p := view.NewProjector(store)
	if got := p.Project("", domain.Filter{Statuses: []domain.Status{domain.StatusInProgress}}, domain.SortByDueDate, domain.Ascending); len(got) != 1 {
		t.Fatalf("expected task in in-progress projection, got %d tasks", len(got))
	}
	if got := p.Project("", domain.Filter{Statuses: []domain.Status{domain.StatusTodo}}, domain.SortByDueDate, domain.Ascending); len(got) != 0 {
		t.Fatalf("expected task out of todo projection, got %d tasks", len(got))
	}
}

func TestDateMoveAppliesBothDates(t *testing.T) {
	_, router, task := newFixture(t)

	newStart := domain.NewDate(2024, time.February, 1)
	newDue := domain.NewDate(2024, time.February, 14)
	updated, err := router.Submit(domain.DateMove{TaskID: task.ID, NewStart: newStart, NewDue: newDue})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !updated.StartDate.Equal(newStart) || !updated.DueDate.Equal(newDue) {
		t.Fatalf("dates not applied: %v..%v", updated.StartDate, updated.DueDate)
	}
}

func TestDateMoveInvertedRangeRejectedAtomically(t *testing.T) {
	store, router, task := newFixture(t)

	_, err := router.Submit(domain.DateMove{
		TaskID:   task.ID,
		NewStart: domain.NewDate(2024, time.February, 1),
		NewDue:   domain.NewDate(2024, time.January, 1),
	})
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	current, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !current.StartDate.Equal(domain.NewDate(2024, time.January, 1)) ||
		!current.DueDate.Equal(domain.NewDate(2024, time.January, 8)) {
		t.Fatalf("dates changed after rejected move: %v..%v", current.StartDate, current.DueDate)
	}
	if !current.UpdatedAt.Equal(task.UpdatedAt) {
		t.Fatal("updatedAt refreshed on a rejected mutation")
	}
}

func TestProgressChangeBounds(t *testing.T) {
	_, router, task := newFixture(t)

	for _, bad := range []int{-1, 101, 500} {
		if _, err := router.Submit(domain.ProgressChange{TaskID: task.ID, NewProgress: bad}); !errors.Is(err, domain.ErrOutOfRange) {
			t.Fatalf("progress %d: expected ErrOutOfRange, got %v", bad, err)
		}
	}
	for _, good := range []int{0, 50, 100} {
		updated, err := router.Submit(domain.ProgressChange{TaskID: task.ID, NewProgress: good})
		if err != nil {
			t.Fatalf("progress %d: %v", good, err)
		}
		if updated.Progress != good {
			t.Fatalf("expected progress %d, got %d", good, updated.Progress)
		}
	}
}

func TestFieldEditMergesFields(t *testing.T) {
	_, router, task := newFixture(t)

	title := "Prepare urgent shipment"
	priority := domain.PriorityUrgent
	updated, err := router.Submit(domain.FieldEdit{
		TaskID: task.ID,
		Fields: domain.TaskPatch{Title: &title, Priority: &priority, Tags: []string{"shipping"}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if updated.Title != title || updated.Priority != priority {
		t.Fatalf("fields not merged: %#v", updated)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "shipping" {
		t.Fatalf("tags not merged: %v", updated.Tags)
	}
}

func TestFieldEditWithoutFieldsRejected(t *testing.T) {
	_, router, task := newFixture(t)
	if _, err := router.Submit(domain.FieldEdit{TaskID: task.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSubmitUnknownTaskReturnsNotFound(t *testing.T) {
	_, router, _ := newFixture(t)
	_, err := router.Submit(domain.StatusMove{TaskID: "missing", NewStatus: domain.StatusDone})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNotifyOncePerSuccessfulMutation(t *testing.T) {
	_, router, task := newFixture(t)

	var notified int
	cancel := router.Subscribe(func() { notified++ })
	defer cancel()

	if _, err := router.Submit(domain.StatusMove{TaskID: task.ID, NewStatus: domain.StatusReview}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if notified != 1 {
		t.Fatalf("expected 1 notification, got %d", notified)
	}

	// Failed mutations never notify.
	if _, err := router.Submit(domain.ProgressChange{TaskID: task.ID, NewProgress: 200}); err == nil {
		t.Fatal("expected rejection")
	}
	if notified != 1 {
		t.Fatalf("expected still 1 notification, got %d", notified)
	}
}

func TestNotifyRunsSubscribersInSubscriptionOrder(t *testing.T) {
	_, router, task := newFixture(t)

	var order []string
	for _, name := range []string{"cache-evict", "snapshot", "stream"} {
		cancel := router.Subscribe(func() { order = append(order, name) })
		defer cancel()
	}

	if _, err := router.Submit(domain.StatusMove{TaskID: task.ID, NewStatus: domain.StatusReview}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := []string{"cache-evict", "snapshot", "stream"}
	if len(order) != len(want) {
		t.Fatalf("expected %d notifications, got %v", len(want), order)
	}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestSubscribeCancelStopsNotifications(t *testing.T) {
	_, router, task := newFixture(t)

	var notified int
	cancel := router.Subscribe(func() { notified++ })
	cancel()

	if _, err := router.Submit(domain.StatusMove{TaskID: task.ID, NewStatus: domain.StatusDone}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if notified != 0 {
		t.Fatalf("expected no notifications after cancel, got %d", notified)
	}
}

func TestSequentialSubmissionsLastWriteWins(t *testing.T) {
	store, router, task := newFixture(t)

	if _, err := router.Submit(domain.StatusMove{TaskID: task.ID, NewStatus: domain.StatusInProgress}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := router.Submit(domain.StatusMove{TaskID: task.ID, NewStatus: domain.StatusReview}); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	current, err := store.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Status != domain.StatusReview {
		t.Fatalf("expected the second submission to win, got %s", current.Status)
	}
}
