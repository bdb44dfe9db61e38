package api

import (
	"taskboard/domain"
)

// Intent type tags accepted on the wire.
const (
	intentStatusMove     = "status-move"
	intentDateMove       = "date-move"
	intentProgressChange = "progress-change"
	intentFieldEdit      = "field-edit"
)

// intentEnvelope is the wire form of a mutation intent. Only the fields for
// the tagged type are read.
type intentEnvelope struct {
	IdempotencyKey string            `json:"idempotencyKey,omitempty"`
	Type           string            `json:"type"`
	TaskID         string            `json:"taskId"`
	NewStatus      domain.Status     `json:"newStatus,omitempty"`
	NewStart       *domain.Date      `json:"newStart,omitempty"`
	NewDue         *domain.Date      `json:"newDue,omitempty"`
	NewProgress    *int              `json:"newProgress,omitempty"`
	Fields         *domain.TaskPatch `json:"fields,omitempty"`
}

// toIntent converts the envelope into the typed intent the router accepts.
func (e intentEnvelope) toIntent() (domain.Intent, error) {
	if e.TaskID == "" {
		return nil, domain.Validationf("intent requires a task id")
	}
	switch e.Type {
	case intentStatusMove:
		return domain.StatusMove{TaskID: e.TaskID, NewStatus: e.NewStatus}, nil
	case intentDateMove:
		if e.NewStart == nil || e.NewDue == nil {
			return nil, domain.Validationf("date move requires newStart and newDue")
		}
		return domain.DateMove{TaskID: e.TaskID, NewStart: *e.NewStart, NewDue: *e.NewDue}, nil
	case intentProgressChange:
		if e.NewProgress == nil {
			return nil, domain.Validationf("progress change requires newProgress")
		}
		return domain.ProgressChange{TaskID: e.TaskID, NewProgress: *e.NewProgress}, nil
	case intentFieldEdit:
		if e.Fields == nil {
			return nil, domain.Validationf("field edit requires fields")
		}
		return domain.FieldEdit{TaskID: e.TaskID, Fields: *e.Fields}, nil
	}
	return nil, domain.Validationf("unknown intent type %q", e.Type)
}
