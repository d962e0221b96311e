package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	accountservice "github.com/yemtakip/yemtakip/internal/account/service"
	auditrepository "github.com/yemtakip/yemtakip/internal/audit/repository"
	auditservice "github.com/yemtakip/yemtakip/internal/audit/service"
	"github.com/yemtakip/yemtakip/internal/contact/domain"
	"github.com/yemtakip/yemtakip/internal/contact/repository"
	"github.com/yemtakip/yemtakip/internal/migration"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newContactFixture(t *testing.T) (domain.Service, accountdomain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	accountSvc := accountservice.NewService(accountservice.Params{
		DB: db, Log: log, GenID: node,
	})
	auditSvc := auditservice.NewService(auditservice.Params{
		DB: db, Log: log, GenID: node, Repo: auditrepository.Provide(),
	})
	contactSvc := New(Params{
		DB:         db,
		Log:        log,
		GenID:      node,
		Repo:       repository.Provide(),
		AccountSvc: accountSvc,
		AuditSvc:   auditSvc,
	})
	return contactSvc, accountSvc, db
}

func TestCreateContactOpensAccount(t *testing.T) {
	contactSvc, accountSvc, db := newContactFixture(t)
	ctx := context.Background()

	contact, err := contactSvc.Create(ctx, domain.CreateContactRequest{
		Name: "Osman Yem",
		Type: "supplier",
	})
	require.NoError(t, err)

	account, err := accountSvc.FindByContact(ctx, db, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, account)
	require.True(t, account.Balance.IsZero())
}

func TestCreateContactRejectsBadType(t *testing.T) {
	contactSvc, _, _ := newContactFixture(t)

	_, err := contactSvc.Create(context.Background(), domain.CreateContactRequest{
		Name: "Tip Yok",
		Type: "broker",
	})
	require.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestSoftDeleteAndRestoreContact(t *testing.T) {
	contactSvc, _, _ := newContactFixture(t)
	ctx := context.Background()

	contact, err := contactSvc.Create(ctx, domain.CreateContactRequest{
		Name: "Silinecek Cari",
		Type: "customer",
	})
	require.NoError(t, err)

	require.NoError(t, contactSvc.SoftDelete(ctx, contact.ID.String()))
	_, err = contactSvc.GetByID(ctx, domain.GetContactRequest{ID: contact.ID.String()})
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, contactSvc.Restore(ctx, contact.ID.String()))
	restored, err := contactSvc.GetByID(ctx, domain.GetContactRequest{ID: contact.ID.String()})
	require.NoError(t, err)
	require.Equal(t, contact.ID, restored.ID)

	require.ErrorIs(t, contactSvc.Restore(ctx, contact.ID.String()), domain.ErrNotDeleted)
}

func TestPermanentDeleteRemovesAccount(t *testing.T) {
	contactSvc, accountSvc, db := newContactFixture(t)
	ctx := context.Background()

	contact, err := contactSvc.Create(ctx, domain.CreateContactRequest{
		Name: "Kalıcı Silme",
		Type: "both",
	})
	require.NoError(t, err)

	require.NoError(t, contactSvc.PermanentDelete(ctx, contact.ID.String()))

	account, err := accountSvc.FindByContact(ctx, db, contact.ID)
	require.NoError(t, err)
	require.Nil(t, account)

	var count int64
	require.NoError(t, db.Model(&domain.Contact{}).Where("id = ?", contact.ID).Count(&count).Error)
	require.Zero(t, count)
}
