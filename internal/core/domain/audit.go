package domain

import "time"

// AuditAction identifies the session-lifecycle operation being recorded.
type AuditAction string

const (
	AuditRegister AuditAction = "register"
	AuditLogin    AuditAction = "login"
	AuditRefresh  AuditAction = "refresh"
	AuditLogout   AuditAction = "logout"
)

// AuditEvent is an append-only record of a session-lifecycle operation.
// Events are written asynchronously; losing one is logged but never fails
// the operation that produced it.
type AuditEvent struct {
	UserID    string      `json:"user_id" bson:"user_id"`
	Action    AuditAction `json:"action" bson:"action"`
	Email     string      `json:"email,omitempty" bson:"email,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
