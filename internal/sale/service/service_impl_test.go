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
	carrierservice "github.com/yemtakip/yemtakip/internal/carrier/service"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	contactrepository "github.com/yemtakip/yemtakip/internal/contact/repository"
	deliverydomain "github.com/yemtakip/yemtakip/internal/delivery/domain"
	deliveryservice "github.com/yemtakip/yemtakip/internal/delivery/service"
	"github.com/yemtakip/yemtakip/internal/migration"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	purchaseservice "github.com/yemtakip/yemtakip/internal/purchase/service"
	"github.com/yemtakip/yemtakip/internal/sale/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type saleFixture struct {
	db         *gorm.DB
	node       *snowflake.Node
	accountSvc accountdomain.Service
	sale       domain.Service
	delivery   deliverydomain.Service
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	contactRepo := contactrepository.Provide()
	auditSvc := auditservice.NewService(auditservice.Params{
		DB: db, Log: log, GenID: node, Repo: auditrepository.Provide(),
	})
	accountSvc := accountservice.NewService(accountservice.Params{
		DB: db, Log: log, GenID: node,
	})
	carrierSvc := carrierservice.NewService(carrierservice.Params{
		DB: db, Log: log, GenID: node,
	})
	purchaseSvc := purchaseservice.NewService(purchaseservice.Params{
		DB: db, Log: log, GenID: node,
		ContactRepo: contactRepo, AccountSvc: accountSvc, AuditSvc: auditSvc,
	})
	saleSvc := NewService(Params{
		DB: db, Log: log, GenID: node,
		ContactRepo: contactRepo, AccountSvc: accountSvc, AuditSvc: auditSvc,
	})
	deliverySvc := deliveryservice.NewService(deliveryservice.Params{
		DB: db, Log: log, GenID: node,
		ContactRepo: contactRepo,
		AccountSvc:  accountSvc,
		CarrierSvc:  carrierSvc,
		PurchaseSvc: purchaseSvc,
		AuditSvc:    auditSvc,
	})

	return &saleFixture{
		db:         db,
		node:       node,
		accountSvc: accountSvc,
		sale:       saleSvc,
		delivery:   deliverySvc,
	}
}

func (f *saleFixture) seedCustomer(t *testing.T, name string) contactdomain.Contact {
	t.Helper()
	contact := contactdomain.Contact{
		ID:        f.node.Generate(),
		Name:      name,
		Type:      contactdomain.ContactTypeCustomer,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(&contact).Error)
	return contact
}

func (f *saleFixture) balance(t *testing.T, contactID snowflake.ID) decimal.Decimal {
	t.Helper()
	account, err := f.accountSvc.FindByContact(context.Background(), f.db, contactID)
	require.NoError(t, err)
	if account == nil {
		return decimal.Zero
	}
	return account.Balance
}

func TestCreateSaleValidatesContactSide(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()

	supplier := contactdomain.Contact{
		ID:        f.node.Generate(),
		Name:      "Sadece Tedarikçi",
		Type:      contactdomain.ContactTypeSupplier,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(&supplier).Error)

	_, err := f.sale.Create(ctx, domain.CreateSaleRequest{
		ContactID: supplier.ID.String(),
		Product:   "mısır",
		Quantity:  "1000",
		UnitPrice: "10",
	})
	require.ErrorIs(t, err, domain.ErrInvalidContact)
}

func TestSaleStatusTransitions(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	customer := f.seedCustomer(t, "Durum Testi")

	sale, err := f.sale.Create(ctx, domain.CreateSaleRequest{
		ContactID: customer.ID.String(),
		Product:   "arpa",
		Quantity:  "1000",
		UnitPrice: "10",
	})
	require.NoError(t, err)
	require.Equal(t, purchasedomain.OrderStatusPending, sale.Status)

	sale, err = f.sale.UpdateStatus(ctx, sale.ID.String(), "draft")
	require.NoError(t, err)
	require.Equal(t, purchasedomain.OrderStatusDraft, sale.Status)

	_, err = f.sale.UpdateStatus(ctx, sale.ID.String(), "delivered")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelSaleZeroesLedgerContribution(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	customer := f.seedCustomer(t, "İptal Müşterisi")

	sale, err := f.sale.Create(ctx, domain.CreateSaleRequest{
		ContactID: customer.ID.String(),
		Product:   "arpa",
		Quantity:  "2000",
		UnitPrice: "10",
	})
	require.NoError(t, err)

	_, err = f.delivery.Create(ctx, deliverydomain.CreateDeliveryRequest{
		SaleID:       sale.ID.String(),
		DeliveryDate: "2025-05-05",
		NetWeight:    "1000",
	})
	require.NoError(t, err)
	require.True(t, f.balance(t, customer.ID).Equal(decimal.NewFromInt(10000)))

	cancelled, err := f.sale.Cancel(ctx, sale.ID.String())
	require.NoError(t, err)
	require.Equal(t, purchasedomain.OrderStatusCancelled, cancelled.Status)
	require.True(t, f.balance(t, customer.ID).IsZero(),
		"balance = %s", f.balance(t, customer.ID))
}

func TestReassignSaleMovesPostings(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	first := f.seedCustomer(t, "Eski Müşteri")
	second := f.seedCustomer(t, "Yeni Müşteri")

	sale, err := f.sale.Create(ctx, domain.CreateSaleRequest{
		ContactID: first.ID.String(),
		Product:   "arpa",
		Quantity:  "2000",
		UnitPrice: "10",
	})
	require.NoError(t, err)

	_, err = f.delivery.Create(ctx, deliverydomain.CreateDeliveryRequest{
		SaleID:       sale.ID.String(),
		DeliveryDate: "2025-05-06",
		NetWeight:    "1000",
	})
	require.NoError(t, err)
	require.True(t, f.balance(t, first.ID).Equal(decimal.NewFromInt(10000)))

	newPrice := "12"
	moved, err := f.sale.Reassign(ctx, domain.ReassignSaleRequest{
		ID:           sale.ID.String(),
		NewContactID: second.ID.String(),
		NewUnitPrice: &newPrice,
	})
	require.NoError(t, err)
	require.Equal(t, second.ID, moved.ContactID)
	require.True(t, moved.UnitPrice.Equal(decimal.NewFromInt(12)))

	require.True(t, f.balance(t, first.ID).IsZero(),
		"old customer balance = %s", f.balance(t, first.ID))
	require.True(t, f.balance(t, second.ID).Equal(decimal.NewFromInt(12000)),
		"new customer balance = %s", f.balance(t, second.ID))

	_, err = f.sale.Reassign(ctx, domain.ReassignSaleRequest{
		ID:           sale.ID.String(),
		NewContactID: second.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrSameContact)
}
