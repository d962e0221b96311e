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
	"github.com/yemtakip/yemtakip/internal/delivery/domain"
	"github.com/yemtakip/yemtakip/internal/migration"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	purchaseservice "github.com/yemtakip/yemtakip/internal/purchase/service"
	saledomain "github.com/yemtakip/yemtakip/internal/sale/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testStack struct {
	db         *gorm.DB
	node       *snowflake.Node
	accountSvc accountdomain.Service
	carrierSvc carrierdomain.Service
	delivery   domain.Service
}

func newTestStack(t *testing.T) *testStack {
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
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  auditrepository.Provide(),
	})
	accountSvc := accountservice.NewService(accountservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
	})
	carrierSvc := carrierservice.NewService(carrierservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
	})
	purchaseSvc := purchaseservice.NewService(purchaseservice.Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		ContactRepo: contactRepo,
		AccountSvc:  accountSvc,
		AuditSvc:    auditSvc,
	})
	deliverySvc := NewService(Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		ContactRepo: contactRepo,
		AccountSvc:  accountSvc,
		CarrierSvc:  carrierSvc,
		PurchaseSvc: purchaseSvc,
		AuditSvc:    auditSvc,
	})

	return &testStack{
		db:         db,
		node:       node,
		accountSvc: accountSvc,
		carrierSvc: carrierSvc,
		delivery:   deliverySvc,
	}
}

func (ts *testStack) seedContact(t *testing.T, name string, kind contactdomain.ContactType) contactdomain.Contact {
	t.Helper()
	contact := contactdomain.Contact{
		ID:        ts.node.Generate(),
		Name:      name,
		Type:      kind,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, ts.db.Create(&contact).Error)
	return contact
}

func (ts *testStack) seedSale(t *testing.T, contactID snowflake.ID, quantity, unitPrice string) saledomain.Sale {
	t.Helper()
	qty := decimal.RequireFromString(quantity)
	price := decimal.RequireFromString(unitPrice)
	sale := saledomain.Sale{
		ID:          ts.node.Generate(),
		ContactID:   contactID,
		Product:     "arpa",
		Quantity:    qty,
		UnitPrice:   price,
		Status:      purchasedomain.OrderStatusConfirmed,
		TotalAmount: qty.Mul(price),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, ts.db.Create(&sale).Error)
	return sale
}

func (ts *testStack) seedPurchase(t *testing.T, contactID snowflake.ID, quantity, unitPrice string, model purchasedomain.PricingModel) purchasedomain.Purchase {
	t.Helper()
	qty := decimal.RequireFromString(quantity)
	price := decimal.RequireFromString(unitPrice)
	purchase := purchasedomain.Purchase{
		ID:           ts.node.Generate(),
		ContactID:    contactID,
		Product:      "arpa",
		Quantity:     qty,
		UnitPrice:    price,
		PricingModel: model,
		Status:       purchasedomain.OrderStatusConfirmed,
		TotalAmount:  qty.Mul(price),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, ts.db.Create(&purchase).Error)
	return purchase
}

func (ts *testStack) balance(t *testing.T, contactID snowflake.ID) decimal.Decimal {
	t.Helper()
	account, err := ts.accountSvc.FindByContact(context.Background(), ts.db, contactID)
	require.NoError(t, err)
	require.NotNil(t, account)
	return account.Balance
}

func TestCreateDeliveryPostsBothSides(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	customer := ts.seedContact(t, "Mehmet Çiftlik", contactdomain.ContactTypeCustomer)
	supplier := ts.seedContact(t, "Öz Yem Sanayi", contactdomain.ContactTypeSupplier)
	sale := ts.seedSale(t, customer.ID, "10000", "10")
	purchase := ts.seedPurchase(t, supplier.ID, "10000", "8.2", purchasedomain.PricingModelFreightIncluded)

	delivery, err := ts.delivery.Create(ctx, domain.CreateDeliveryRequest{
		SaleID:       sale.ID.String(),
		PurchaseID:   purchase.ID.String(),
		TicketNo:     "KF-0001",
		DeliveryDate: "2025-04-10",
		GrossWeight:  "14500",
		TareWeight:   "13500",
		NetWeight:    "1000",
		FreightCost:  "200",
		FreightPayer: "customer",
		VehiclePlate: "34 ABC 123",
		CarrierName:  "Ali Nakliyat",
	})
	require.NoError(t, err)
	require.NotNil(t, delivery.SaleID)
	require.NotNil(t, delivery.PurchaseID)
	require.NotNil(t, delivery.CarrierID)

	// 1000 kg × 10 − 200 freight on the customer side.
	require.True(t, ts.balance(t, customer.ID).Equal(decimal.NewFromInt(9800)),
		"customer balance = %s", ts.balance(t, customer.ID))
	// 1000 kg × 8.2 − 200 freight included in the supplier price.
	require.True(t, ts.balance(t, supplier.ID).Equal(decimal.NewFromInt(-8000)),
		"supplier balance = %s", ts.balance(t, supplier.ID))

	// Freight payer is the customer, so nothing accrues on the carrier ledger.
	carrier, err := ts.carrierSvc.FindByID(ctx, ts.db, *delivery.CarrierID)
	require.NoError(t, err)
	require.True(t, carrier.Balance.IsZero())
}

func TestCreateDeliveryAccruesFreightPayable(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	customer := ts.seedContact(t, "Kaya Besicilik", contactdomain.ContactTypeCustomer)
	sale := ts.seedSale(t, customer.ID, "5000", "9")

	delivery, err := ts.delivery.Create(ctx, domain.CreateDeliveryRequest{
		SaleID:       sale.ID.String(),
		DeliveryDate: "2025-04-11",
		NetWeight:    "1000",
		FreightCost:  "300",
		FreightPayer: "me",
		CarrierName:  "Hızlı Nakliye",
	})
	require.NoError(t, err)
	require.NotNil(t, delivery.CarrierID)

	carrier, err := ts.carrierSvc.FindByID(ctx, ts.db, *delivery.CarrierID)
	require.NoError(t, err)
	require.True(t, carrier.Balance.Equal(decimal.NewFromInt(-300)),
		"carrier balance = %s", carrier.Balance)
}

func TestCreateDeliveryRejectsCancelledOrder(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	customer := ts.seedContact(t, "İptal Test", contactdomain.ContactTypeCustomer)
	sale := ts.seedSale(t, customer.ID, "1000", "10")
	require.NoError(t, ts.db.Model(&saledomain.Sale{}).
		Where("id = ?", sale.ID).
		Update("status", purchasedomain.OrderStatusCancelled).Error)

	_, err := ts.delivery.Create(ctx, domain.CreateDeliveryRequest{
		SaleID:       sale.ID.String(),
		DeliveryDate: "2025-04-12",
		NetWeight:    "500",
	})
	require.ErrorIs(t, err, domain.ErrOrderCancelled)

	// Nothing was written for the aborted delivery.
	var count int64
	require.NoError(t, ts.db.Model(&domain.Delivery{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSoftDeleteAndRestoreDeliveryReversesPostings(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	customer := ts.seedContact(t, "Demir Çiftliği", contactdomain.ContactTypeCustomer)
	supplier := ts.seedContact(t, "Yıldız Yem", contactdomain.ContactTypeSupplier)
	sale := ts.seedSale(t, customer.ID, "2000", "10")
	purchase := ts.seedPurchase(t, supplier.ID, "2000", "8", purchasedomain.PricingModelFreightExcluded)

	delivery, err := ts.delivery.Create(ctx, domain.CreateDeliveryRequest{
		SaleID:       sale.ID.String(),
		PurchaseID:   purchase.ID.String(),
		DeliveryDate: "2025-04-13",
		NetWeight:    "1000",
	})
	require.NoError(t, err)
	require.True(t, ts.balance(t, customer.ID).Equal(decimal.NewFromInt(10000)))
	require.True(t, ts.balance(t, supplier.ID).Equal(decimal.NewFromInt(-8000)))

	require.NoError(t, ts.delivery.SoftDelete(ctx, delivery.ID.String()))
	require.True(t, ts.balance(t, customer.ID).IsZero())
	require.True(t, ts.balance(t, supplier.ID).IsZero())

	_, err = ts.delivery.GetByID(ctx, delivery.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, ts.delivery.Restore(ctx, delivery.ID.String()))
	require.True(t, ts.balance(t, customer.ID).Equal(decimal.NewFromInt(10000)))
	require.True(t, ts.balance(t, supplier.ID).Equal(decimal.NewFromInt(-8000)))
}

func TestReturnDeliveryPostsOppositeEntries(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	customer := ts.seedContact(t, "Ak Besicilik", contactdomain.ContactTypeCustomer)
	supplier := ts.seedContact(t, "Taner Yem", contactdomain.ContactTypeSupplier)
	sale := ts.seedSale(t, customer.ID, "2000", "10")
	purchase := ts.seedPurchase(t, supplier.ID, "2000", "8.2", purchasedomain.PricingModelFreightExcluded)

	delivery, err := ts.delivery.Create(ctx, domain.CreateDeliveryRequest{
		SaleID:       sale.ID.String(),
		PurchaseID:   purchase.ID.String(),
		DeliveryDate: "2025-04-14",
		NetWeight:    "1000",
	})
	require.NoError(t, err)

	updated, err := ts.delivery.Return(ctx, domain.ReturnDeliveryRequest{
		ID:         delivery.ID.String(),
		ReturnedKg: "200",
		Reason:     "küflü mal",
	})
	require.NoError(t, err)
	require.True(t, updated.NetWeight.Equal(decimal.NewFromInt(800)))
	require.True(t, updated.ReturnedKg.Equal(decimal.NewFromInt(200)))

	// 10000 − 200×10 on the customer, −8200 + 200×8.2 on the supplier.
	require.True(t, ts.balance(t, customer.ID).Equal(decimal.NewFromInt(8000)),
		"customer balance = %s", ts.balance(t, customer.ID))
	require.True(t, ts.balance(t, supplier.ID).Equal(decimal.NewFromInt(-6560)),
		"supplier balance = %s", ts.balance(t, supplier.ID))

	_, err = ts.delivery.Return(ctx, domain.ReturnDeliveryRequest{
		ID:         delivery.ID.String(),
		ReturnedKg: "900",
	})
	require.ErrorIs(t, err, domain.ErrReturnExceedsLoad)
}
