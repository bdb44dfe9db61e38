package view

import (
	"sort"

	"taskboard/domain"
)

// Sort orders tasks by the given key and direction. The sort is stable:
// tasks with equal key values keep their relative input order in both
// directions, so a re-sort after a mutation never shuffles peers.
func Sort(tasks []domain.Task, key domain.SortKey, order domain.SortOrder) []domain.Task {
	out := append([]domain.Task(nil), tasks...)
	cmp := comparator(key)
	if cmp == nil {
		return out
	}
	desc := order == domain.Descending
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// comparator returns the three-way compare for a sort key. Tasks without a
// due date sort after dated ones under the dueDate key.
func comparator(key domain.SortKey) func(a, b domain.Task) int {
	switch key {
	case domain.SortByDueDate:
		return func(a, b domain.Task) int {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			}
			return a.DueDate.Compare(*b.DueDate)
		}
	case domain.SortByPriority:
		return func(a, b domain.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		}
	case domain.SortByCreated:
		return func(a, b domain.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case domain.SortByUpdated:
		return func(a, b domain.Task) int {
			return a.UpdatedAt.Compare(b.UpdatedAt)
		}
	}
	return nil
}
