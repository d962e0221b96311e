package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/yemtakip/yemtakip/internal/audit/domain"
	"github.com/yemtakip/yemtakip/internal/userctx"
	"github.com/yemtakip/yemtakip/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  auditdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  auditdomain.Repository
}

func NewService(p Params) auditdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, tableName string, recordID snowflake.ID, action auditdomain.AuditAction, oldData, newData map[string]any) error {
	tableName = strings.TrimSpace(tableName)
	if tableName == "" {
		return auditdomain.ErrInvalidTable
	}
	switch action {
	case auditdomain.ActionCreate, auditdomain.ActionUpdate, auditdomain.ActionDelete, auditdomain.ActionRestore:
	default:
		return auditdomain.ErrInvalidAction
	}

	entry := auditdomain.AuditEntry{
		ID:        s.genID.Generate(),
		Table:     tableName,
		RecordID:  recordID,
		Action:    action,
		UserEmail: userctx.UserEmailFromContext(ctx),
		IPAddress: userctx.IPAddressFromContext(ctx),
		RequestID: userctx.RequestIDFromContext(ctx),
		CreatedAt: time.Now().UTC(),
	}
	if len(oldData) > 0 {
		entry.OldData = datatypes.JSONMap(oldData)
	}
	if len(newData) > 0 {
		entry.NewData = datatypes.JSONMap(newData)
	}

	if err := s.repo.Insert(ctx, s.db, &entry); err != nil {
		s.log.Warn("failed to write audit log",
			zap.String("table", tableName),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, req auditdomain.ListAuditRequest) (auditdomain.ListAuditResponse, error) {
	if req.StartAt != nil && req.EndAt != nil && req.StartAt.After(*req.EndAt) {
		return auditdomain.ListAuditResponse{}, auditdomain.ErrInvalidTimeRange
	}

	var cursor *auditdomain.AuditCursor
	if strings.TrimSpace(req.PageToken) != "" {
		decoded, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return auditdomain.ListAuditResponse{}, auditdomain.ErrInvalidPageToken
		}
		createdAt, err := time.Parse(time.RFC3339, decoded.CreatedAt)
		if err != nil {
			return auditdomain.ListAuditResponse{}, auditdomain.ErrInvalidPageToken
		}
		id, err := snowflake.ParseString(decoded.ID)
		if err != nil {
			return auditdomain.ListAuditResponse{}, auditdomain.ErrInvalidPageToken
		}
		cursor = &auditdomain.AuditCursor{CreatedAt: createdAt, ID: int64(id)}
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, auditdomain.ListFilter{
		TableName: req.TableName,
		RecordID:  req.RecordID,
		Action:    req.Action,
		UserEmail: req.UserEmail,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Cursor:    cursor,
		Limit:     pageSize,
	})
	if err != nil {
		return auditdomain.ListAuditResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(entry *auditdomain.AuditEntry) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        entry.ID.String(),
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	entries := make([]auditdomain.AuditEntry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, *item)
	}

	resp := auditdomain.ListAuditResponse{Entries: entries}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}
