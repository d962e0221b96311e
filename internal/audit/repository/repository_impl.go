package repository

import (
	"context"
	"strings"

	"github.com/yemtakip/yemtakip/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.AuditEntry) error {
	if entry == nil {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO audit_log (
			id, table_name, record_id, action, old_data, new_data,
			user_email, ip_address, request_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Table,
		entry.RecordID,
		entry.Action,
		entry.OldData,
		entry.NewData,
		entry.UserEmail,
		entry.IPAddress,
		entry.RequestID,
		entry.CreatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.AuditEntry, error) {
	var entries []*domain.AuditEntry
	stmt := db.WithContext(ctx).Model(&domain.AuditEntry{})

	if table := strings.TrimSpace(filter.TableName); table != "" {
		stmt = stmt.Where("table_name = ?", table)
	}
	if recordID := strings.TrimSpace(filter.RecordID); recordID != "" {
		stmt = stmt.Where("record_id = ?", recordID)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		stmt = stmt.Where("action = ?", action)
	}
	if email := strings.TrimSpace(filter.UserEmail); email != "" {
		stmt = stmt.Where("user_email = ?", email)
	}
	if filter.StartAt != nil {
		stmt = stmt.Where("created_at >= ?", filter.StartAt.UTC())
	}
	if filter.EndAt != nil {
		stmt = stmt.Where("created_at <= ?", filter.EndAt.UTC())
	}
	if filter.Cursor != nil {
		stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt,
			filter.Cursor.CreatedAt,
			filter.Cursor.ID,
		)
	}

	stmt = stmt.Order("created_at desc, id desc")
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit + 1)
	}

	if err := stmt.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
