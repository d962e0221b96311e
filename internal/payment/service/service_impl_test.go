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
	carrierdomain "github.com/yemtakip/yemtakip/internal/carrier/domain"
	carrierservice "github.com/yemtakip/yemtakip/internal/carrier/service"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	contactrepository "github.com/yemtakip/yemtakip/internal/contact/repository"
	"github.com/yemtakip/yemtakip/internal/migration"
	"github.com/yemtakip/yemtakip/internal/payment/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type paymentFixture struct {
	db         *gorm.DB
	node       *snowflake.Node
	accountSvc accountdomain.Service
	carrierSvc carrierdomain.Service
	payment    domain.Service
}

func newPaymentFixture(t *testing.T) *paymentFixture {
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
	carrierSvc := carrierservice.NewService(carrierservice.Params{
		DB: db, Log: log, GenID: node,
	})
	auditSvc := auditservice.NewService(auditservice.Params{
		DB: db, Log: log, GenID: node, Repo: auditrepository.Provide(),
	})
	paymentSvc := NewService(Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		ContactRepo: contactrepository.Provide(),
		AccountSvc:  accountSvc,
		CarrierSvc:  carrierSvc,
		AuditSvc:    auditSvc,
	})

	return &paymentFixture{
		db:         db,
		node:       node,
		accountSvc: accountSvc,
		carrierSvc: carrierSvc,
		payment:    paymentSvc,
	}
}

func (f *paymentFixture) seedContact(t *testing.T, name string) contactdomain.Contact {
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

func (f *paymentFixture) balance(t *testing.T, contactID snowflake.ID) decimal.Decimal {
	t.Helper()
	account, err := f.accountSvc.FindByContact(context.Background(), f.db, contactID)
	require.NoError(t, err)
	require.NotNil(t, account)
	return account.Balance
}

func TestCreatePaymentRequiresExactlyOneTarget(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	contact := f.seedContact(t, "Çift Hedef")

	_, err := f.payment.Create(ctx, domain.CreatePaymentRequest{
		Direction: "inbound",
		Amount:    "100",
	})
	require.ErrorIs(t, err, domain.ErrInvalidTarget)

	_, err = f.payment.Create(ctx, domain.CreatePaymentRequest{
		ContactID: contact.ID.String(),
		CarrierID: f.node.Generate().String(),
		Direction: "inbound",
		Amount:    "100",
	})
	require.ErrorIs(t, err, domain.ErrInvalidTarget)
}

func TestInboundPaymentCreditsContactAccount(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	contact := f.seedContact(t, "Hasan Besi")

	payment, err := f.payment.Create(ctx, domain.CreatePaymentRequest{
		ContactID:   contact.ID.String(),
		Direction:   "inbound",
		Method:      "cash",
		Amount:      "1500",
		PaymentDate: "2025-05-02",
	})
	require.NoError(t, err)
	require.NotNil(t, payment.ContactID)
	require.True(t, f.balance(t, contact.ID).Equal(decimal.NewFromInt(-1500)),
		"balance = %s", f.balance(t, contact.ID))

	outbound, err := f.payment.Create(ctx, domain.CreatePaymentRequest{
		ContactID: contact.ID.String(),
		Direction: "outbound",
		Method:    "bank",
		Amount:    "500",
	})
	require.NoError(t, err)
	require.NotNil(t, outbound.ContactID)
	require.True(t, f.balance(t, contact.ID).Equal(decimal.NewFromInt(-1000)),
		"balance = %s", f.balance(t, contact.ID))
}

func TestDeleteAndRestorePaymentAdjustsBalance(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	contact := f.seedContact(t, "Veli Ticaret")

	payment, err := f.payment.Create(ctx, domain.CreatePaymentRequest{
		ContactID: contact.ID.String(),
		Direction: "inbound",
		Amount:    "750",
	})
	require.NoError(t, err)
	require.True(t, f.balance(t, contact.ID).Equal(decimal.NewFromInt(-750)))

	require.NoError(t, f.payment.SoftDelete(ctx, payment.ID.String()))
	require.True(t, f.balance(t, contact.ID).IsZero())

	_, err = f.payment.GetByID(ctx, payment.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.payment.Restore(ctx, payment.ID.String()))
	require.True(t, f.balance(t, contact.ID).Equal(decimal.NewFromInt(-750)))
}

func TestCreatePaymentAcceptsCheckMethod(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	contact := f.seedContact(t, "Çekle Ödeyen")

	payment, err := f.payment.Create(ctx, domain.CreatePaymentRequest{
		ContactID: contact.ID.String(),
		Direction: "inbound",
		Method:    "check",
		Amount:    "2500",
	})
	require.NoError(t, err)
	require.Equal(t, domain.PaymentMethodCheck, payment.Method)
	require.True(t, f.balance(t, contact.ID).Equal(decimal.NewFromInt(-2500)),
		"balance = %s", f.balance(t, contact.ID))

	_, err = f.payment.Create(ctx, domain.CreatePaymentRequest{
		ContactID: contact.ID.String(),
		Direction: "inbound",
		Method:    "wire",
		Amount:    "100",
	})
	require.ErrorIs(t, err, domain.ErrInvalidMethod)
}

func TestCarrierPaymentPostsToFreightLedger(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	carrier, err := f.carrierSvc.EnsureByName(ctx, f.db, "Güven Nakliyat")
	require.NoError(t, err)

	payment, err := f.payment.Create(ctx, domain.CreatePaymentRequest{
		CarrierID: carrier.ID.String(),
		Direction: "outbound",
		Amount:    "300",
	})
	require.NoError(t, err)
	require.NotNil(t, payment.CarrierID)

	updated, err := f.carrierSvc.FindByID(ctx, f.db, carrier.ID)
	require.NoError(t, err)
	require.True(t, updated.Balance.Equal(decimal.NewFromInt(300)),
		"carrier balance = %s", updated.Balance)

	require.NoError(t, f.payment.SoftDelete(ctx, payment.ID.String()))
	updated, err = f.carrierSvc.FindByID(ctx, f.db, carrier.ID)
	require.NoError(t, err)
	require.True(t, updated.Balance.IsZero())
}
