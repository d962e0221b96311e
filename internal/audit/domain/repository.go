package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	TableName string
	RecordID  string
	Action    string
	UserEmail string
	StartAt   *time.Time
	EndAt     *time.Time
	Cursor    *AuditCursor
	Limit     int
}

type AuditCursor struct {
	CreatedAt time.Time
	ID        int64
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditEntry) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*AuditEntry, error)
}
