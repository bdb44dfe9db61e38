package view

import (
	"reflect"
	"testing"
	"time"

	"taskboard/domain"
)

func TestSortByPriorityBothDirections(t *testing.T) {
	t2 := domain.Task{ID: "t2", Priority: domain.PriorityLow}
	t3 := domain.Task{ID: "t3", Priority: domain.PriorityUrgent}
	tasks := []domain.Task{t2, t3}

	asc := ids(Sort(tasks, domain.SortByPriority, domain.Ascending))
	if !reflect.DeepEqual(asc, []string{"t2", "t3"}) {
		t.Fatalf("ascending: got %v", asc)
	}
	desc := ids(Sort(tasks, domain.SortByPriority, domain.Descending))
	if !reflect.DeepEqual(desc, []string{"t3", "t2"}) {
		t.Fatalf("descending: got %v", desc)
	}
}

func TestSortByDueDate(t *testing.T) {
	tasks := []domain.Task{
		{ID: "late", DueDate: datePtr(2024, time.March, 1)},
		{ID: "early", DueDate: datePtr(2024, time.January, 1)},
		{ID: "mid", DueDate: datePtr(2024, time.February, 1)},
	}
	got := ids(Sort(tasks, domain.SortByDueDate, domain.Ascending))
	if !reflect.DeepEqual(got, []string{"early", "mid", "late"}) {
		t.Fatalf("got %v", got)
	}
}

func TestSortByDueDatePutsUndatedLast(t *testing.T) {
	tasks := []domain.Task{
		{ID: "undated"},
		{ID: "dated", DueDate: datePtr(2024, time.January, 1)},
	}
	got := ids(Sort(tasks, domain.SortByDueDate, domain.Ascending))
	if !reflect.DeepEqual(got, []string{"dated", "undated"}) {
		t.Fatalf("got %v", got)
	}
}

func TestSortStabilityOnEqualKeys(t *testing.T) {
	// Four tasks, two priority groups; peers must keep input order in both
	// directions.
	tasks := []domain.Task{
		{ID: "a", Priority: domain.PriorityHigh},
		{ID: "b", Priority: domain.PriorityLow},
		{ID: "c", Priority: domain.PriorityHigh},
		{ID: "d", Priority: domain.PriorityLow},
	}

	asc := ids(Sort(tasks, domain.SortByPriority, domain.Ascending))
	if !reflect.DeepEqual(asc, []string{"b", "d", "a", "c"}) {
		t.Fatalf("ascending: got %v", asc)
	}
	desc := ids(Sort(tasks, domain.SortByPriority, domain.Descending))
	if !reflect.DeepEqual(desc, []string{"a", "c", "b", "d"}) {
		t.Fatalf("descending: got %v", desc)
	}
}

func TestSortByTimestamps(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: "newest", CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base},
		{ID: "oldest", CreatedAt: base, UpdatedAt: base.Add(3 * time.Hour)},
		{ID: "middle", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)},
	}

	byCreated := ids(Sort(tasks, domain.SortByCreated, domain.Ascending))
	if !reflect.DeepEqual(byCreated, []string{"oldest", "middle", "newest"}) {
		t.Fatalf("by created: got %v", byCreated)
	}
	byUpdated := ids(Sort(tasks, domain.SortByUpdated, domain.Descending))
	if !reflect.DeepEqual(byUpdated, []string{"oldest", "middle", "newest"}) {
		t.Fatalf("by updated desc: got %v", byUpdated)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tasks := []domain.Task{
		{ID: "b", Priority: domain.PriorityUrgent},
		{ID: "a", Priority: domain.PriorityLow},
	}
	before := ids(tasks)
	Sort(tasks, domain.SortByPriority, domain.Ascending)
	if !reflect.DeepEqual(ids(tasks), before) {
		t.Fatal("sort mutated its input")
	}
}
