package models

import "time"

type AuditEventType string

const (
	AuditLoginSucceeded AuditEventType = "login.succeeded"
	AuditLoginFailed    AuditEventType = "login.failed"
	AuditSessionEvicted AuditEventType = "session.evicted"
	AuditSessionRevoked AuditEventType = "session.revoked"
	AuditArchiveFlush   AuditEventType = "archive.flush"
)

type AuditEvent struct {
	Type          AuditEventType `json:"type"`
	PrincipalID   string         `json:"principalId,omitempty"`
	Kind          string         `json:"kind,omitempty"`
	CorrelationID string         `json:"correlationId,omitempty"`
	At            time.Time      `json:"at"`
}
