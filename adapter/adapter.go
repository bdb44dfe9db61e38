// Package adapter maps the shared projected task sequence into per-view
// display models and committed user gestures into mutation intents. Layout
// and rendering belong to the hosting widgets; adapters stop at the data each
// widget needs.
package adapter

import "taskboard/domain"

// Projector is the sole read API an adapter consumes. Adapters re-derive
// their display model entirely from the next Project call after any change,
// including a failed gesture of their own, rather than patching
// incrementally.
type Projector interface {
	Project(scopeProjectID string, spec domain.Filter, key domain.SortKey, order domain.SortOrder) []domain.Task
}

// Submitter is the sole write API an adapter invokes, and only on a
// committed gesture. An abandoned drag never reaches it.
type Submitter interface {
	Submit(intent domain.Intent) (domain.Task, error)
}
