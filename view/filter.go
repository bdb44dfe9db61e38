package view

import (
	"strings"

	"taskboard/domain"
)

// Filter returns the tasks matching every present predicate of spec,
// preserving input order. It never mutates its input.
func Filter(tasks []domain.Task, spec domain.Filter) []domain.Task {
	if spec.IsZero() {
		return append([]domain.Task(nil), tasks...)
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, spec) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t domain.Task, spec domain.Filter) bool {
	if spec.Assignee != "" && t.Assignee != spec.Assignee {
		return false
	}
	if len(spec.Statuses) > 0 && !containsStatus(spec.Statuses, t.Status) {
		return false
	}
	if len(spec.Priorities) > 0 && !containsPriority(spec.Priorities, t.Priority) {
		return false
	}
	if len(spec.Tags) > 0 && !intersects(t.Tags, spec.Tags) {
		return false
	}
	if spec.DueFrom != nil || spec.DueTo != nil {
		if t.DueDate == nil {
			return false
		}
		if spec.DueFrom != nil && t.DueDate.Before(*spec.DueFrom) {
			return false
		}
		if spec.DueTo != nil && t.DueDate.After(*spec.DueTo) {
			return false
		}
	}
	if spec.Search != "" && !matchesSearch(t, spec.Search) {
		return false
	}
	return true
}

// matchesSearch is a case-insensitive substring match, OR across the title,
// description and assignee fields.
func matchesSearch(t domain.Task, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.Assignee), q)
}

// intersects reports whether the task's tag set shares any tag with the
// filter's set.
func intersects(taskTags, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, tt := range taskTags {
			if tt == ft {
				return true
			}
		}
	}
	return false
}

func containsStatus(set []domain.Status, s domain.Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(set []domain.Priority, p domain.Priority) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}
