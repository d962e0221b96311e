package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// TrashItem is one soft-deleted record, whatever table it came from.
type TrashItem struct {
	TableName string       `json:"table_name"`
	RecordID  snowflake.ID `json:"record_id"`
	Label     string       `json:"label"`
	DeletedAt time.Time    `json:"deleted_at"`
}

// Service is the cross-table recycle bin. Items older than the
// configured retention stop showing up and are swept away by Purge.
type Service interface {
	List(ctx context.Context) ([]TrashItem, error)
	Restore(ctx context.Context, tableName, id string) error
	PermanentDelete(ctx context.Context, tableName, id string) error
	// Purge hard-deletes everything past the retention window and
	// returns how many records went.
	Purge(ctx context.Context) (int, error)
}

var (
	ErrUnknownTable = errors.New("unknown_table")
	ErrNotFound     = errors.New("not_found")
)
