package api

import (
	"context"

	"taskboard/domain"
	"taskboard/location"
)

// Projector is the read side handlers serve: the shared view projection.
type Projector interface {
	Project(scopeProjectID string, spec domain.Filter, key domain.SortKey, order domain.SortOrder) []domain.Task
}

// Creator is the task-creation hand-off from the external form collaborator.
type Creator interface {
	Create(draft domain.TaskDraft) (domain.Task, error)
}

// Submitter is the write side: the mutation router.
type Submitter interface {
	Submit(intent domain.Intent) (domain.Task, error)
}

// Locations is the storage-location registry surface.
type Locations interface {
	List() []location.Location
	Create(draft location.Draft) (location.Location, error)
	SetUsed(id string, used float64) (location.Location, error)
}

// Deduper prevents reprocessing of duplicate intents.
type Deduper interface {
	// Add records the idempotency key and returns true if it was newly added.
	Add(ctx context.Context, key string) (bool, error)
	// Remove deletes a previously added key, used when processing fails.
	Remove(ctx context.Context, key string) error
}
