// Package mutation hosts the single choke point every view uses to change a
// task. Validation and invariant enforcement live here exactly once instead
// of being duplicated per view.
package mutation

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"taskboard/domain"
)

// Store is the slice of the task store the router needs.
type Store interface {
	Update(id string, patch domain.TaskPatch) (domain.Task, error)
}

// Router accepts typed mutation intents, validates them, applies them via
// the store and notifies subscribers once per successful mutation. Submit is
// synchronous and atomic: an intent either fully applies or leaves the store
// untouched.
type Router struct {
	store  Store
	logger *log.Logger

	mu   sync.Mutex
	subs []subscription
	next int
}

type subscription struct {
	id int
	fn func()
}

// NewRouter wires a router to the given store. A nil logger falls back to
// the logrus standard logger.
func NewRouter(store Store, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Router{store: store, logger: logger}
}

// Subscribe registers a payload-free task-changed callback, invoked once per
// successful mutation in subscription order, and returns a cancel func.
// Callbacks run synchronously on the submitting goroutine so every view is
// consistent before Submit returns.
func (r *Router) Subscribe(fn func()) (cancel func()) {
	r.mu.Lock()
	id := r.next
	r.next++
	r.subs = append(r.subs, subscription{id: id, fn: fn})
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		for i, sub := range r.subs {
			if sub.id == id {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				break
			}
		}
		r.mu.Unlock()
	}
}

// Submit validates and applies one mutation intent. On failure the error
// returns only to the caller; subscribers are not notified and no state
// changes. Sequential submissions apply in submission order; the second of
// two submissions against the same task wins field by field.
func (r *Router) Submit(intent domain.Intent) (domain.Task, error) {
	patch, err := r.validate(intent)
	if err != nil {
		r.logger.WithFields(log.Fields{
			"task_id": intent.Target(),
			"intent":  intentName(intent),
			"error":   err.Error(),
		}).Debug("intent rejected")
		return domain.Task{}, err
	}

	task, err := r.store.Update(intent.Target(), patch)
	if err != nil {
		return domain.Task{}, err
	}

	r.logger.WithFields(log.Fields{
		"task_id": task.ID,
		"intent":  intentName(intent),
	}).Debug("intent applied")
	r.notify()
	return task, nil
}

// validate turns an intent into the patch the store will apply, rejecting
// anything that would break a field invariant.
func (r *Router) validate(intent domain.Intent) (domain.TaskPatch, error) {
	switch m := intent.(type) {
	case domain.StatusMove:
		if !m.NewStatus.Valid() {
			return domain.TaskPatch{}, domain.Validationf("unknown status %q", m.NewStatus)
		}
		// Status and progress stay independently settable; a move to done
		// does not touch progress.
		s := m.NewStatus
		return domain.TaskPatch{Status: &s}, nil
	case domain.DateMove:
		if m.NewStart.IsZero() || m.NewDue.IsZero() {
			return domain.TaskPatch{}, domain.Validationf("date move requires both dates")
		}
		if m.NewStart.After(m.NewDue) {
			return domain.TaskPatch{}, domain.InvalidRangef(m.NewStart, m.NewDue)
		}
		start, due := m.NewStart, m.NewDue
		return domain.TaskPatch{StartDate: &start, DueDate: &due}, nil
	case domain.ProgressChange:
		if m.NewProgress < 0 || m.NewProgress > 100 {
			return domain.TaskPatch{}, domain.OutOfRangef("progress %d", m.NewProgress)
		}
		p := m.NewProgress
		return domain.TaskPatch{Progress: &p}, nil
	case domain.FieldEdit:
		if m.Fields.IsZero() {
			return domain.TaskPatch{}, domain.Validationf("field edit carries no fields")
		}
		return m.Fields, nil
	}
	return domain.TaskPatch{}, fmt.Errorf("unknown intent type %T", intent)
}

func (r *Router) notify() {
	r.mu.Lock()
	subs := make([]subscription, len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()
	for _, sub := range subs {
		sub.fn()
	}
}

func intentName(intent domain.Intent) string {
	switch intent.(type) {
	case domain.StatusMove:
		return "status-move"
	case domain.DateMove:
		return "date-move"
	case domain.ProgressChange:
		return "progress-change"
	case domain.FieldEdit:
		return "field-edit"
	}
	return fmt.Sprintf("%T", intent)
}
