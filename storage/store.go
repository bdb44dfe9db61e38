package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/domain"
)

// TaskStore is the canonical mutable task collection. It is the single source
// of truth every view projects from; all writes funnel through the mutation
// router or the external create/delete collaborators.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	seq   map[string]int // insertion order, keeps GetAll stable
	next  int

	now func() time.Time
}

// NewTaskStore returns an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]domain.Task),
		seq:   make(map[string]int),
		now:   time.Now,
	}
}

// Create assigns an id and both timestamps and stores the draft as a new
// task. Title, due date and assignee are required.
func (s *TaskStore) Create(draft domain.TaskDraft) (domain.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return domain.Task{}, domain.Validationf("title is required")
	}
	if draft.DueDate == nil || draft.DueDate.IsZero() {
		return domain.Task{}, domain.Validationf("due date is required")
	}
	if strings.TrimSpace(draft.Assignee) == "" {
		return domain.Task{}, domain.Validationf("assignee is required")
	}
	if draft.StartDate != nil && !draft.StartDate.IsZero() && draft.StartDate.After(*draft.DueDate) {
		return domain.Task{}, domain.InvalidRangef(*draft.StartDate, *draft.DueDate)
	}
	status := draft.Status
	if status == "" {
		status = domain.StatusTodo
	}
	if !status.Valid() {
		return domain.Task{}, domain.Validationf("unknown status %q", status)
	}
	priority := draft.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return domain.Task{}, domain.Validationf("unknown priority %q", priority)
	}
	if draft.Progress < 0 || draft.Progress > 100 {
		return domain.Task{}, domain.OutOfRangef("progress %d", draft.Progress)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := domain.Task{
		ID:           uuid.NewString(),
		Title:        draft.Title,
		Description:  draft.Description,
		StartDate:    draft.StartDate,
		DueDate:      draft.DueDate,
		Status:       status,
		Priority:     priority,
		ProjectID:    draft.ProjectID,
		AssigneeID:   draft.AssigneeID,
		Assignee:     draft.Assignee,
		Progress:     draft.Progress,
		Dependencies: append([]string(nil), draft.Dependencies...),
		Tags:         append([]string(nil), draft.Tags...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.tasks[task.ID] = task
	s.seq[task.ID] = s.next
	s.next++
	return task, nil
}

// Update merges the patch into the stored task and refreshes UpdatedAt.
// The stored record is untouched when any check fails.
func (s *TaskStore) Update(id string, patch domain.TaskPatch) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.NotFoundf(id)
	}

	merged, err := mergeTask(current, patch)
	if err != nil {
		return domain.Task{}, err
	}
	merged.UpdatedAt = s.now()
	if merged.UpdatedAt.Before(current.UpdatedAt) {
		merged.UpdatedAt = current.UpdatedAt
	}
	s.tasks[id] = merged
	return merged, nil
}

// Get returns a single task by id.
func (s *TaskStore) Get(id string) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.NotFoundf(id)
	}
	return task, nil
}

// GetAll returns a snapshot of the collection in insertion order. The read
// path never mutates.
func (s *TaskStore) GetAll() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].ID] < s.seq[out[j].ID] })
	return out
}

// Remove deletes a task. It exists for the external deletion collaborator;
// the mutation router never calls it.
func (s *TaskStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	delete(s.seq, id)
	return true
}

// Load replaces the collection with tasks restored by a persistence
// collaborator, keeping the given order as insertion order.
func (s *TaskStore) Load(tasks []domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string]domain.Task, len(tasks))
	s.seq = make(map[string]int, len(tasks))
	s.next = 0
	for _, t := range tasks {
		s.tasks[t.ID] = t
		s.seq[t.ID] = s.next
		s.next++
	}
}

// mergeTask applies the patch on top of current, enforcing field invariants
// against the resulting record.
func mergeTask(current domain.Task, patch domain.TaskPatch) (domain.Task, error) {
	merged := current
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return domain.Task{}, domain.Validationf("title is required")
		}
		merged.Title = *patch.Title
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.StartDate != nil {
		d := *patch.StartDate
		merged.StartDate = &d
	}
	if patch.DueDate != nil {
		d := *patch.DueDate
		merged.DueDate = &d
	}
	if merged.StartDate != nil && merged.DueDate != nil &&
		!merged.StartDate.IsZero() && !merged.DueDate.IsZero() &&
		merged.StartDate.After(*merged.DueDate) {
		return domain.Task{}, domain.InvalidRangef(*merged.StartDate, *merged.DueDate)
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return domain.Task{}, domain.Validationf("unknown status %q", *patch.Status)
		}
		merged.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return domain.Task{}, domain.Validationf("unknown priority %q", *patch.Priority)
		}
		merged.Priority = *patch.Priority
	}
	if patch.ProjectID != nil {
		merged.ProjectID = *patch.ProjectID
	}
	if patch.AssigneeID != nil {
		merged.AssigneeID = *patch.AssigneeID
	}
	if patch.Assignee != nil {
		if strings.TrimSpace(*patch.Assignee) == "" {
			return domain.Task{}, domain.Validationf("assignee is required")
		}
		merged.Assignee = *patch.Assignee
	}
	if patch.Progress != nil {
		if *patch.Progress < 0 || *patch.Progress > 100 {
			return domain.Task{}, domain.OutOfRangef("progress %d", *patch.Progress)
		}
		merged.Progress = *patch.Progress
	}
	if patch.Dependencies != nil {
		merged.Dependencies = append([]string(nil), patch.Dependencies...)
	}
	if patch.Tags != nil {
		merged.Tags = append([]string(nil), patch.Tags...)
	}
	return merged, nil
}
