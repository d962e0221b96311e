package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/yemtakip/yemtakip/pkg/db/pagination"
)

type ListAuditRequest struct {
	pagination.Pagination
	TableName string
	RecordID  string
	Action    string
	UserEmail string
	StartAt   *time.Time
	EndAt     *time.Time
}

type ListAuditResponse struct {
	pagination.PageInfo
	Entries []AuditEntry `json:"entries"`
}

type Service interface {
	// Record appends one audit entry. It never fails the caller's flow;
	// persistence errors are logged and returned for visibility only.
	Record(ctx context.Context, tableName string, recordID snowflake.ID, action AuditAction, oldData, newData map[string]any) error
	List(ctx context.Context, req ListAuditRequest) (ListAuditResponse, error)
}

var (
	ErrInvalidTable     = errors.New("invalid_table")
	ErrInvalidAction    = errors.New("invalid_action")
	ErrInvalidPageToken = errors.New("invalid_page_token")
	ErrInvalidTimeRange = errors.New("invalid_time_range")
)
