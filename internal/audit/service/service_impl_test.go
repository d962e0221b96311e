package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/yemtakip/yemtakip/internal/audit/domain"
	"github.com/yemtakip/yemtakip/internal/audit/repository"
	"github.com/yemtakip/yemtakip/internal/migration"
	"github.com/yemtakip/yemtakip/internal/userctx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newAuditFixture(t *testing.T) (domain.Service, *snowflake.Node, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB: db, Log: zap.NewNop(), GenID: node, Repo: repository.Provide(),
	})
	return svc, node, db
}

func TestRecordWritesTableNameColumn(t *testing.T) {
	svc, node, db := newAuditFixture(t)
	ctx := userctx.WithUserEmail(context.Background(), "muhasebe@yemtakip.com")
	recordID := node.Generate()

	require.NoError(t, svc.Record(ctx, "contacts", recordID, domain.ActionCreate, nil, map[string]any{
		"name": "Osman Yem",
	}))

	resp, err := svc.List(ctx, domain.ListAuditRequest{TableName: "contacts"})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)

	entry := resp.Entries[0]
	require.Equal(t, "contacts", entry.Table)
	require.Equal(t, recordID, entry.RecordID)
	require.Equal(t, domain.ActionCreate, entry.Action)
	require.Equal(t, "muhasebe@yemtakip.com", entry.UserEmail)

	// The struct field maps onto the table_name column, not a column
	// named after the field.
	var stored string
	require.NoError(t, db.Raw(
		"SELECT table_name FROM audit_log WHERE id = ?", entry.ID,
	).Scan(&stored).Error)
	require.Equal(t, "contacts", stored)
}

func TestRecordRejectsUnknownAction(t *testing.T) {
	svc, node, _ := newAuditFixture(t)

	err := svc.Record(context.Background(), "contacts", node.Generate(), domain.AuditAction("truncate"), nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidAction)

	err = svc.Record(context.Background(), "   ", node.Generate(), domain.ActionCreate, nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidTable)
}
