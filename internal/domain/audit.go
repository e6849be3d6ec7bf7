package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is a durable record of a lossy or notable repair action.
type AuditLog struct {
	ID           string
	RunID        string
	Action       AuditAction
	ResourceType string // table the action touched
	ResourceID   string
	BeforeState  JSON
	AfterState   JSON
	Status       AuditStatus
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionConflictDelete AuditAction = "reference.conflict_delete"
	AuditActionRunCompleted   AuditAction = "repair.completed"
	AuditActionRunAborted     AuditAction = "repair.aborted"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	RunID  string
	Action string
	Limit  int
	Offset int
}
