package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditAction enumerates the tracked mutation kinds.
type AuditAction string

const (
	ActionCreate  AuditAction = "create"
	ActionUpdate  AuditAction = "update"
	ActionDelete  AuditAction = "delete"
	ActionRestore AuditAction = "restore"
)

// AuditEntry is an append-only record of a mutation on a tracked table.
// Audit rows themselves have no update or delete path.
type AuditEntry struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Table     string            `gorm:"column:table_name;not null;index" json:"table_name"`
	RecordID  snowflake.ID      `gorm:"not null;index" json:"record_id"`
	Action    AuditAction       `gorm:"type:text;not null;index" json:"action"`
	OldData   datatypes.JSONMap `gorm:"type:jsonb" json:"old_data,omitempty"`
	NewData   datatypes.JSONMap `gorm:"type:jsonb" json:"new_data,omitempty"`
	UserEmail string            `gorm:"index" json:"user_email"`
	IPAddress string            `json:"ip_address,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (AuditEntry) TableName() string { return "audit_log" }
