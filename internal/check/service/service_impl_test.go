package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	accountservice "github.com/yemtakip/yemtakip/internal/account/service"
	auditrepository "github.com/yemtakip/yemtakip/internal/audit/repository"
	auditservice "github.com/yemtakip/yemtakip/internal/audit/service"
	"github.com/yemtakip/yemtakip/internal/check/domain"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	contactrepository "github.com/yemtakip/yemtakip/internal/contact/repository"
	"github.com/yemtakip/yemtakip/internal/migration"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type checkFixture struct {
	db         *gorm.DB
	node       *snowflake.Node
	accountSvc accountdomain.Service
	check      domain.Service
}

func newCheckFixture(t *testing.T) *checkFixture {
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
	checkSvc := NewService(Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		ContactRepo: contactrepository.Provide(),
		AccountSvc:  accountSvc,
		AuditSvc:    auditSvc,
	})

	return &checkFixture{db: db, node: node, accountSvc: accountSvc, check: checkSvc}
}

func (f *checkFixture) seedContact(t *testing.T, name string) contactdomain.Contact {
	t.Helper()
	contact := contactdomain.Contact{
		ID:        f.node.Generate(),
		Name:      name,
		Type:      contactdomain.ContactTypeBoth,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(&contact).Error)
	return contact
}

func (f *checkFixture) createReceived(t *testing.T, contactID snowflake.ID, amount string) domain.Check {
	t.Helper()
	check, err := f.check.Create(context.Background(), domain.CreateCheckRequest{
		ContactID: contactID.String(),
		Kind:      "cek",
		Direction: "received",
		CheckNo:   "100200",
		BankName:  "Ziraat",
		Amount:    amount,
		DueDate:   "2025-09-30",
	})
	require.NoError(t, err)
	require.Equal(t, domain.CheckStatusPending, check.Status)
	return check
}

func (f *checkFixture) balance(t *testing.T, contactID snowflake.ID) decimal.Decimal {
	t.Helper()
	account, err := f.accountSvc.FindByContact(context.Background(), f.db, contactID)
	require.NoError(t, err)
	if account == nil {
		return decimal.Zero
	}
	return account.Balance
}

func TestCheckLifecycleTransitions(t *testing.T) {
	f := newCheckFixture(t)
	ctx := context.Background()
	contact := f.seedContact(t, "Çek Testi")
	check := f.createReceived(t, contact.ID, "5000")

	// Deposit does not touch the ledger.
	deposited, err := f.check.UpdateStatus(ctx, check.ID.String(), "deposited")
	require.NoError(t, err)
	require.Equal(t, domain.CheckStatusDeposited, deposited.Status)
	require.True(t, f.balance(t, contact.ID).IsZero())

	// Bounce goes back to pending, still no posting.
	bounced, err := f.check.UpdateStatus(ctx, check.ID.String(), "bounced")
	require.NoError(t, err)
	require.Equal(t, domain.CheckStatusBounced, bounced.Status)

	_, err = f.check.UpdateStatus(ctx, check.ID.String(), "cleared")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.check.UpdateStatus(ctx, check.ID.String(), "pending")
	require.NoError(t, err)
	_, err = f.check.UpdateStatus(ctx, check.ID.String(), "deposited")
	require.NoError(t, err)

	// Clearing a received check credits the contact.
	cleared, err := f.check.UpdateStatus(ctx, check.ID.String(), "cleared")
	require.NoError(t, err)
	require.Equal(t, domain.CheckStatusCleared, cleared.Status)
	require.True(t, f.balance(t, contact.ID).Equal(decimal.NewFromInt(-5000)),
		"balance = %s", f.balance(t, contact.ID))

	// Cleared is terminal.
	_, err = f.check.UpdateStatus(ctx, check.ID.String(), "cancelled")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatusRejectsEndorsed(t *testing.T) {
	f := newCheckFixture(t)
	contact := f.seedContact(t, "Ciro Reddi")
	check := f.createReceived(t, contact.ID, "1000")

	_, err := f.check.UpdateStatus(context.Background(), check.ID.String(), "endorsed")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestEndorseCreatesLinkedIssuedCheck(t *testing.T) {
	f := newCheckFixture(t)
	ctx := context.Background()
	source := f.seedContact(t, "Çek Veren")
	target := f.seedContact(t, "Ciro Alan")
	check := f.createReceived(t, source.ID, "3000")

	endorsed, err := f.check.Endorse(ctx, domain.EndorseCheckRequest{
		ID:              check.ID.String(),
		TargetContactID: target.ID.String(),
	})
	require.NoError(t, err)
	require.Equal(t, domain.CheckDirectionIssued, endorsed.Direction)
	require.Equal(t, domain.CheckStatusEndorsed, endorsed.Status)
	require.Equal(t, target.ID, endorsed.ContactID)
	require.NotNil(t, endorsed.OriginCheckID)
	require.Equal(t, check.ID, *endorsed.OriginCheckID)

	original, err := f.check.GetByID(ctx, check.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.CheckStatusEndorsed, original.Status)
	require.NotNil(t, original.EndorsedToID)
	require.Equal(t, target.ID, *original.EndorsedToID)

	// Exactly one new check exists.
	var count int64
	require.NoError(t, f.db.Model(&domain.Check{}).Count(&count).Error)
	require.EqualValues(t, 2, count)

	// Source settled, target paid with the paper.
	require.True(t, f.balance(t, source.ID).Equal(decimal.NewFromInt(-3000)),
		"source balance = %s", f.balance(t, source.ID))
	require.True(t, f.balance(t, target.ID).Equal(decimal.NewFromInt(3000)),
		"target balance = %s", f.balance(t, target.ID))

	// An endorsed check cannot move again or be re-endorsed.
	_, err = f.check.Endorse(ctx, domain.EndorseCheckRequest{
		ID:              check.ID.String(),
		TargetContactID: target.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEndorseRejectsIssuedChecks(t *testing.T) {
	f := newCheckFixture(t)
	ctx := context.Background()
	supplier := f.seedContact(t, "Tedarikçi")
	other := f.seedContact(t, "Başkası")

	issued, err := f.check.Create(ctx, domain.CreateCheckRequest{
		ContactID: supplier.ID.String(),
		Kind:      "senet",
		Direction: "issued",
		Amount:    "2000",
		DueDate:   "2025-10-15",
	})
	require.NoError(t, err)

	_, err = f.check.Endorse(ctx, domain.EndorseCheckRequest{
		ID:              issued.ID.String(),
		TargetContactID: other.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrNotEndorsable)
}
