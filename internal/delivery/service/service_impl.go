package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	auditdomain "github.com/yemtakip/yemtakip/internal/audit/domain"
	carrierdomain "github.com/yemtakip/yemtakip/internal/carrier/domain"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	"github.com/yemtakip/yemtakip/internal/delivery/domain"
	"github.com/yemtakip/yemtakip/internal/metrics"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	saledomain "github.com/yemtakip/yemtakip/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	ContactRepo contactdomain.Repository
	AccountSvc  accountdomain.Service
	CarrierSvc  carrierdomain.Service
	PurchaseSvc purchasedomain.Service
	AuditSvc    auditdomain.Service
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	contactRepo contactdomain.Repository
	accountSvc  accountdomain.Service
	carrierSvc  carrierdomain.Service
	purchaseSvc purchasedomain.Service
	auditSvc    auditdomain.Service
	metrics     *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("delivery.service"),
		genID:       p.GenID,
		contactRepo: p.ContactRepo,
		accountSvc:  p.AccountSvc,
		carrierSvc:  p.CarrierSvc,
		purchaseSvc: p.PurchaseSvc,
		auditSvc:    p.AuditSvc,
		metrics:     p.Metrics,
	}
}

// orderSides holds everything resolved up front for one delivery: the
// orders being fulfilled and the accounts the postings land on. Resolving
// it all before any write keeps a failed lookup from leaving a partial
// ledger behind.
type orderSides struct {
	sale            *saledomain.Sale
	purchase        *purchasedomain.Purchase
	customerAccount *accountdomain.Account
	supplierAccount *accountdomain.Account
}

func (s *Service) Create(ctx context.Context, req domain.CreateDeliveryRequest) (domain.Delivery, error) {
	if strings.TrimSpace(req.SaleID) == "" && strings.TrimSpace(req.PurchaseID) == "" {
		return domain.Delivery{}, domain.ErrInvalidOrder
	}

	deliveryDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.DeliveryDate))
	if err != nil {
		return domain.Delivery{}, domain.ErrInvalidDate
	}

	netWeight, err := decimal.NewFromString(strings.TrimSpace(req.NetWeight))
	if err != nil || !netWeight.IsPositive() {
		return domain.Delivery{}, domain.ErrInvalidWeight
	}
	grossWeight := parseOptionalDecimal(req.GrossWeight)
	tareWeight := parseOptionalDecimal(req.TareWeight)

	freightCost := decimal.Zero
	if raw := strings.TrimSpace(req.FreightCost); raw != "" {
		freightCost, err = decimal.NewFromString(raw)
		if err != nil || freightCost.IsNegative() {
			return domain.Delivery{}, domain.ErrInvalidFreight
		}
	}

	freightPayer := domain.FreightPayer(strings.TrimSpace(req.FreightPayer))
	switch freightPayer {
	case domain.FreightPayerCustomer, domain.FreightPayerMe, domain.FreightPayerSupplier:
	case "":
		freightPayer = domain.FreightPayerMe
	default:
		return domain.Delivery{}, domain.ErrInvalidPayer
	}

	delivery := domain.Delivery{
		ID:           s.genID.Generate(),
		TicketNo:     strings.TrimSpace(req.TicketNo),
		DeliveryDate: deliveryDate.UTC(),
		GrossWeight:  grossWeight,
		TareWeight:   tareWeight,
		NetWeight:    netWeight,
		FreightCost:  freightCost,
		FreightPayer: freightPayer,
		VehiclePlate: strings.TrimSpace(req.VehiclePlate),
		CarrierName:  strings.TrimSpace(req.CarrierName),
		DriverName:   strings.TrimSpace(req.DriverName),
		ReturnedKg:   decimal.Zero,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sides, err := s.resolveSides(ctx, tx, req.SaleID, req.PurchaseID)
		if err != nil {
			return err
		}
		if sides.sale != nil {
			delivery.SaleID = &sides.sale.ID
		}
		if sides.purchase != nil {
			delivery.PurchaseID = &sides.purchase.ID
		}

		customerPrice := decimal.Zero
		supplierPrice := decimal.Zero
		pricingModel := purchasedomain.PricingModelFreightExcluded
		if sides.sale != nil {
			customerPrice = sides.sale.UnitPrice
		}
		if sides.purchase != nil {
			supplierPrice = sides.purchase.UnitPrice
			pricingModel = sides.purchase.PricingModel
		}
		amounts := domain.ComputeAmounts(netWeight, customerPrice, supplierPrice, freightCost, freightPayer, pricingModel)

		if err := tx.WithContext(ctx).Create(&delivery).Error; err != nil {
			return err
		}

		touched := make([]snowflake.ID, 0, 2)
		if sides.sale != nil {
			_, err := s.accountSvc.Post(ctx, tx, accountdomain.PostEntry{
				AccountID:       sides.customerAccount.ID,
				Type:            accountdomain.TransactionTypeDebit,
				Amount:          amounts.Customer,
				Description:     postingDescription("Teslimat", delivery),
				ReferenceType:   accountdomain.ReferenceTypeSale,
				ReferenceID:     sides.sale.ID,
				DeliveryID:      &delivery.ID,
				TransactionDate: delivery.DeliveryDate,
			})
			if err != nil {
				return err
			}
			touched = append(touched, sides.customerAccount.ID)
		}
		if sides.purchase != nil {
			_, err := s.accountSvc.Post(ctx, tx, accountdomain.PostEntry{
				AccountID:       sides.supplierAccount.ID,
				Type:            accountdomain.TransactionTypeCredit,
				Amount:          amounts.Supplier,
				Description:     postingDescription("Teslimat", delivery),
				ReferenceType:   accountdomain.ReferenceTypePurchase,
				ReferenceID:     sides.purchase.ID,
				DeliveryID:      &delivery.ID,
				TransactionDate: delivery.DeliveryDate,
			})
			if err != nil {
				return err
			}
			touched = append(touched, sides.supplierAccount.ID)
		}

		if err := s.recordCarrier(ctx, tx, &delivery); err != nil {
			return err
		}

		for _, accountID := range touched {
			if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
				return err
			}
		}

		if sides.sale != nil {
			if err := s.maybeMarkSaleDelivered(ctx, tx, sides.sale); err != nil {
				return err
			}
		}
		if sides.purchase != nil {
			if err := s.maybeMarkPurchaseDelivered(ctx, tx, sides.purchase); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	_ = s.auditSvc.Record(ctx, "deliveries", delivery.ID, auditdomain.ActionCreate, nil, map[string]any{
		"ticket_no":     delivery.TicketNo,
		"net_weight":    delivery.NetWeight.String(),
		"freight_payer": string(delivery.FreightPayer),
	})

	return delivery, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Delivery, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Delivery{}, domain.ErrInvalidID
	}
	delivery, err := s.find(ctx, s.db, id, false)
	if err != nil {
		return domain.Delivery{}, err
	}
	if delivery == nil {
		return domain.Delivery{}, domain.ErrNotFound
	}
	return *delivery, nil
}

func (s *Service) List(ctx context.Context, req domain.ListDeliveryRequest) ([]domain.Delivery, error) {
	stmt := s.db.WithContext(ctx).
		Model(&domain.Delivery{}).
		Where("deleted_at IS NULL")
	if raw := strings.TrimSpace(req.SaleID); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		stmt = stmt.Where("sale_id = ?", id)
	}
	if raw := strings.TrimSpace(req.PurchaseID); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		stmt = stmt.Where("purchase_id = ?", id)
	}
	if raw := strings.TrimSpace(req.From); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		stmt = stmt.Where("delivery_date >= ?", from.UTC())
	}
	if raw := strings.TrimSpace(req.To); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		stmt = stmt.Where("delivery_date <= ?", to.UTC())
	}

	var deliveries []domain.Delivery
	if err := stmt.Order("delivery_date desc, id desc").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (s *Service) SoftDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	delivery, err := s.find(ctx, s.db, id, false)
	if err != nil {
		return err
	}
	if delivery == nil {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Delivery{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", now).Error
		if err != nil {
			return err
		}
		// Both the sale-side and the purchase-side rows go together.
		accountIDs, err := s.accountSvc.SoftDeleteByDelivery(ctx, tx, id)
		if err != nil {
			return err
		}
		carrierIDs, err := s.carrierSvc.SoftDeleteByReference(ctx, tx, carrierdomain.CarrierReferenceTypeDelivery, id)
		if err != nil {
			return err
		}
		return s.recalculateAll(ctx, tx, accountIDs, carrierIDs)
	})
	if err != nil {
		return err
	}

	_ = s.auditSvc.Record(ctx, "deliveries", id, auditdomain.ActionDelete,
		map[string]any{"ticket_no": delivery.TicketNo, "net_weight": delivery.NetWeight.String()}, nil)
	return nil
}

func (s *Service) Restore(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	delivery, err := s.find(ctx, s.db, id, true)
	if err != nil {
		return err
	}
	if delivery == nil {
		return domain.ErrNotDeleted
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Delivery{}).
			Where("id = ?", id).
			Update("deleted_at", nil).Error
		if err != nil {
			return err
		}
		accountIDs, err := s.accountSvc.RestoreByDelivery(ctx, tx, id)
		if err != nil {
			return err
		}
		carrierIDs, err := s.carrierSvc.RestoreByReference(ctx, tx, carrierdomain.CarrierReferenceTypeDelivery, id)
		if err != nil {
			return err
		}
		return s.recalculateAll(ctx, tx, accountIDs, carrierIDs)
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.TrashRestores.WithLabelValues("deliveries").Inc()
	}
	_ = s.auditSvc.Record(ctx, "deliveries", id, auditdomain.ActionRestore, nil, nil)
	return nil
}

func (s *Service) PermanentDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountIDs, err := s.accountSvc.HardDeleteByDelivery(ctx, tx, id)
		if err != nil {
			return err
		}
		carrierIDs, err := s.carrierSvc.HardDeleteByReference(ctx, tx, carrierdomain.CarrierReferenceTypeDelivery, id)
		if err != nil {
			return err
		}
		err = tx.WithContext(ctx).
			Where("id = ?", id).
			Delete(&domain.Delivery{}).Error
		if err != nil {
			return err
		}
		return s.recalculateAll(ctx, tx, accountIDs, carrierIDs)
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.PermanentDeletes.WithLabelValues("deliveries").Inc()
	}
	_ = s.auditSvc.Record(ctx, "deliveries", id, auditdomain.ActionDelete,
		map[string]any{"permanent": true}, nil)
	return nil
}

func (s *Service) Return(ctx context.Context, req domain.ReturnDeliveryRequest) (domain.Delivery, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Delivery{}, domain.ErrInvalidID
	}

	returnedKg, err := decimal.NewFromString(strings.TrimSpace(req.ReturnedKg))
	if err != nil || !returnedKg.IsPositive() {
		return domain.Delivery{}, domain.ErrInvalidReturn
	}

	var updated domain.Delivery
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		delivery, err := s.find(ctx, tx, id, false)
		if err != nil {
			return err
		}
		if delivery == nil {
			return domain.ErrNotFound
		}
		if returnedKg.GreaterThan(delivery.NetWeight) {
			return domain.ErrReturnExceedsLoad
		}

		sides, err := s.resolveSidesByID(ctx, tx, delivery.SaleID, delivery.PurchaseID)
		if err != nil {
			return err
		}

		description := strings.TrimSpace("İade " + req.Reason)
		touched := make([]snowflake.ID, 0, 2)
		// Opposite-direction adjustments, freight untouched: the haul
		// already happened.
		if sides.sale != nil {
			amount := returnedKg.Mul(sides.sale.UnitPrice)
			if amount.IsPositive() {
				_, err := s.accountSvc.Post(ctx, tx, accountdomain.PostEntry{
					AccountID:       sides.customerAccount.ID,
					Type:            accountdomain.TransactionTypeCredit,
					Amount:          amount,
					Description:     description,
					ReferenceType:   accountdomain.ReferenceTypeSale,
					ReferenceID:     sides.sale.ID,
					DeliveryID:      &delivery.ID,
					TransactionDate: time.Now().UTC(),
				})
				if err != nil {
					return err
				}
				touched = append(touched, sides.customerAccount.ID)
			}
		}
		if sides.purchase != nil {
			amount := returnedKg.Mul(sides.purchase.UnitPrice)
			if amount.IsPositive() {
				_, err := s.accountSvc.Post(ctx, tx, accountdomain.PostEntry{
					AccountID:       sides.supplierAccount.ID,
					Type:            accountdomain.TransactionTypeDebit,
					Amount:          amount,
					Description:     description,
					ReferenceType:   accountdomain.ReferenceTypePurchase,
					ReferenceID:     sides.purchase.ID,
					DeliveryID:      &delivery.ID,
					TransactionDate: time.Now().UTC(),
				})
				if err != nil {
					return err
				}
				touched = append(touched, sides.supplierAccount.ID)
			}
		}

		newNet := delivery.NetWeight.Sub(returnedKg)
		newReturned := delivery.ReturnedKg.Add(returnedKg)
		err = tx.WithContext(ctx).Model(&domain.Delivery{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"net_weight":  newNet,
				"returned_kg": newReturned,
				"updated_at":  time.Now().UTC(),
			}).Error
		if err != nil {
			return err
		}

		for _, accountID := range touched {
			if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
				return err
			}
		}

		updated = *delivery
		updated.NetWeight = newNet
		updated.ReturnedKg = newReturned
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	_ = s.auditSvc.Record(ctx, "deliveries", id, auditdomain.ActionUpdate,
		nil, map[string]any{"returned_kg": returnedKg.String()})
	return updated, nil
}

// resolveSides loads the orders and their accounts before anything is
// written. A missing contact or account aborts the whole operation.
func (s *Service) resolveSides(ctx context.Context, tx *gorm.DB, rawSaleID, rawPurchaseID string) (orderSides, error) {
	var saleID, purchaseID *snowflake.ID
	if raw := strings.TrimSpace(rawSaleID); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return orderSides{}, domain.ErrInvalidID
		}
		saleID = &id
	}
	if raw := strings.TrimSpace(rawPurchaseID); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return orderSides{}, domain.ErrInvalidID
		}
		purchaseID = &id
	}
	return s.resolveSidesByID(ctx, tx, saleID, purchaseID)
}

func (s *Service) resolveSidesByID(ctx context.Context, tx *gorm.DB, saleID, purchaseID *snowflake.ID) (orderSides, error) {
	var sides orderSides

	if saleID != nil {
		var sale saledomain.Sale
		err := tx.WithContext(ctx).
			Where("id = ? AND deleted_at IS NULL", *saleID).
			Limit(1).
			Find(&sale).Error
		if err != nil {
			return orderSides{}, err
		}
		if sale.ID == 0 {
			return orderSides{}, domain.ErrOrderNotFound
		}
		if sale.Status == purchasedomain.OrderStatusCancelled {
			return orderSides{}, domain.ErrOrderCancelled
		}
		contact, err := s.contactRepo.FindByID(ctx, tx, sale.ContactID)
		if err != nil {
			return orderSides{}, err
		}
		if contact == nil {
			return orderSides{}, domain.ErrContactNotFound
		}
		account, err := s.accountSvc.EnsureForContact(ctx, tx, contact.ID)
		if err != nil {
			return orderSides{}, err
		}
		sides.sale = &sale
		sides.customerAccount = account
	}

	if purchaseID != nil {
		var purchase purchasedomain.Purchase
		err := tx.WithContext(ctx).
			Where("id = ? AND deleted_at IS NULL", *purchaseID).
			Limit(1).
			Find(&purchase).Error
		if err != nil {
			return orderSides{}, err
		}
		if purchase.ID == 0 {
			return orderSides{}, domain.ErrOrderNotFound
		}
		if purchase.Status == purchasedomain.OrderStatusCancelled {
			return orderSides{}, domain.ErrOrderCancelled
		}
		contact, err := s.contactRepo.FindByID(ctx, tx, purchase.ContactID)
		if err != nil {
			return orderSides{}, err
		}
		if contact == nil {
			return orderSides{}, domain.ErrContactNotFound
		}
		account, err := s.accountSvc.EnsureForContact(ctx, tx, contact.ID)
		if err != nil {
			return orderSides{}, err
		}
		sides.purchase = &purchase
		sides.supplierAccount = account
	}

	return sides, nil
}

// recordCarrier books freight payable and upserts the plate/carrier
// lookups. Lookup upserts are a convenience, not ledger-critical, but
// they ride in the same transaction anyway.
func (s *Service) recordCarrier(ctx context.Context, tx *gorm.DB, delivery *domain.Delivery) error {
	var carrier *carrierdomain.Carrier
	if delivery.CarrierName != "" {
		var err error
		carrier, err = s.carrierSvc.EnsureByName(ctx, tx, delivery.CarrierName)
		if err != nil {
			return err
		}
		delivery.CarrierID = &carrier.ID
		err = tx.WithContext(ctx).Model(&domain.Delivery{}).
			Where("id = ?", delivery.ID).
			Update("carrier_id", carrier.ID).Error
		if err != nil {
			return err
		}
	}

	if delivery.VehiclePlate != "" {
		var carrierID *snowflake.ID
		if carrier != nil {
			carrierID = &carrier.ID
		}
		if _, err := s.carrierSvc.UpsertVehicle(ctx, tx, delivery.VehiclePlate, carrierID); err != nil {
			return err
		}
	}

	// Freight payable accrues only when the freight is ours to pay.
	if carrier != nil && delivery.FreightPayer == domain.FreightPayerMe && delivery.FreightCost.IsPositive() {
		_, err := s.carrierSvc.Post(ctx, tx, carrierdomain.PostEntry{
			CarrierID:       carrier.ID,
			Type:            carrierdomain.CarrierTransactionTypeCredit,
			Amount:          delivery.FreightCost,
			Description:     postingDescription("Nakliye", *delivery),
			ReferenceType:   carrierdomain.CarrierReferenceTypeDelivery,
			ReferenceID:     delivery.ID,
			TransactionDate: delivery.DeliveryDate,
		})
		if err != nil {
			return err
		}
		if _, err := s.carrierSvc.Recalculate(ctx, tx, carrier.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) maybeMarkSaleDelivered(ctx context.Context, tx *gorm.DB, sale *saledomain.Sale) error {
	if !purchasedomain.CanTransition(sale.Status, purchasedomain.OrderStatusDelivered) {
		return nil
	}

	var deliveries []domain.Delivery
	err := tx.WithContext(ctx).
		Where("sale_id = ? AND deleted_at IS NULL", sale.ID).
		Find(&deliveries).Error
	if err != nil {
		return err
	}
	delivered := decimal.Zero
	for _, d := range deliveries {
		delivered = delivered.Add(d.NetWeight)
	}
	if delivered.LessThan(sale.Quantity) {
		return nil
	}

	return tx.WithContext(ctx).Model(&saledomain.Sale{}).
		Where("id = ?", sale.ID).
		Updates(map[string]any{
			"status":     purchasedomain.OrderStatusDelivered,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (s *Service) maybeMarkPurchaseDelivered(ctx context.Context, tx *gorm.DB, purchase *purchasedomain.Purchase) error {
	if !purchasedomain.CanTransition(purchase.Status, purchasedomain.OrderStatusDelivered) {
		return nil
	}

	var deliveries []domain.Delivery
	err := tx.WithContext(ctx).
		Where("purchase_id = ? AND deleted_at IS NULL", purchase.ID).
		Find(&deliveries).Error
	if err != nil {
		return err
	}
	delivered := decimal.Zero
	for _, d := range deliveries {
		delivered = delivered.Add(d.NetWeight)
	}
	if delivered.LessThan(purchase.Quantity) {
		return nil
	}
	return s.purchaseSvc.MarkDelivered(ctx, tx, purchase.ID)
}

func (s *Service) recalculateAll(ctx context.Context, tx *gorm.DB, accountIDs, carrierIDs []snowflake.ID) error {
	for _, accountID := range accountIDs {
		if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
			return err
		}
	}
	for _, carrierID := range carrierIDs {
		if _, err := s.carrierSvc.Recalculate(ctx, tx, carrierID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) find(ctx context.Context, db *gorm.DB, id snowflake.ID, deleted bool) (*domain.Delivery, error) {
	state := "deleted_at IS NULL"
	if deleted {
		state = "deleted_at IS NOT NULL"
	}
	var delivery domain.Delivery
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Where(state).
		Limit(1).
		Find(&delivery).Error
	if err != nil {
		return nil, err
	}
	if delivery.ID == 0 {
		return nil, nil
	}
	return &delivery, nil
}

func postingDescription(prefix string, delivery domain.Delivery) string {
	parts := []string{prefix}
	if delivery.TicketNo != "" {
		parts = append(parts, "fiş "+delivery.TicketNo)
	}
	parts = append(parts, delivery.NetWeight.String()+" kg")
	return strings.Join(parts, " ")
}

func parseOptionalDecimal(raw string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return value
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
