// Package view derives the ordered task sequence each view renders from the
// canonical store: scope restriction, then filtering, then a stable sort.
package view

import "taskboard/domain"

// Source is anything able to produce the current task collection.
type Source interface {
	GetAll() []domain.Task
}

// Projector composes the filter and sort engines with a project-scope
// restriction over a task source. One projector serves all four views; each
// passes its own configuration.
type Projector struct {
	source Source
}

// NewProjector builds a projector over the given source.
func NewProjector(source Source) *Projector {
	return &Projector{source: source}
}

// Project returns the derived sequence for one view configuration. The step
// order is fixed: restrict to the scope project, filter, then sort. Filter
// predicates are defined over the already scoped set and sorting is the
// final, stable step.
func (p *Projector) Project(scopeProjectID string, spec domain.Filter, key domain.SortKey, order domain.SortOrder) []domain.Task {
	tasks := p.source.GetAll()
	tasks = restrictScope(tasks, scopeProjectID)
	tasks = Filter(tasks, spec)
	return Sort(tasks, key, order)
}

// ProjectConfig is Project with the parameters bundled as a ViewConfig.
func (p *Projector) ProjectConfig(cfg domain.ViewConfig) []domain.Task {
	return p.Project(cfg.ScopeProjectID, cfg.Filter, cfg.SortBy, cfg.Order)
}

func restrictScope(tasks []domain.Task, projectID string) []domain.Task {
	if projectID == "" {
		return tasks
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}
