package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	auditdomain "github.com/yemtakip/yemtakip/internal/audit/domain"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	deliverydomain "github.com/yemtakip/yemtakip/internal/delivery/domain"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	"github.com/yemtakip/yemtakip/internal/sale/domain"
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
	AuditSvc    auditdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	contactRepo contactdomain.Repository
	accountSvc  accountdomain.Service
	auditSvc    auditdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("sale.service"),
		genID:       p.GenID,
		contactRepo: p.ContactRepo,
		accountSvc:  p.AccountSvc,
		auditSvc:    p.AuditSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSaleRequest) (domain.Sale, error) {
	contactID, err := parseID(req.ContactID)
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidContact
	}

	contact, err := s.contactRepo.FindByID(ctx, s.db, contactID)
	if err != nil {
		return domain.Sale{}, err
	}
	if contact == nil || !contact.IsCustomer() {
		return domain.Sale{}, domain.ErrInvalidContact
	}

	product := strings.TrimSpace(req.Product)
	if product == "" {
		return domain.Sale{}, domain.ErrInvalidProduct
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(req.Quantity))
	if err != nil || !quantity.IsPositive() {
		return domain.Sale{}, domain.ErrInvalidQuantity
	}
	unitPrice, err := decimal.NewFromString(strings.TrimSpace(req.UnitPrice))
	if err != nil || !unitPrice.IsPositive() {
		return domain.Sale{}, domain.ErrInvalidPrice
	}

	now := time.Now().UTC()
	sale := domain.Sale{
		ID:          s.genID.Generate(),
		ContactID:   contactID,
		Product:     product,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Status:      purchasedomain.OrderStatusPending,
		TotalAmount: quantity.Mul(unitPrice),
		Note:        strings.TrimSpace(req.Note),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&sale).Error; err != nil {
		return domain.Sale{}, err
	}

	_ = s.auditSvc.Record(ctx, "sales", sale.ID, auditdomain.ActionCreate, nil, map[string]any{
		"contact_id": contactID.String(),
		"product":    product,
		"quantity":   quantity.String(),
		"unit_price": unitPrice.String(),
	})

	return sale, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSaleRequest) (domain.Sale, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidID
	}

	sale, err := s.Find(ctx, s.db, id)
	if err != nil {
		return domain.Sale{}, err
	}
	if sale == nil {
		return domain.Sale{}, domain.ErrNotFound
	}

	old := *sale
	if req.Product != nil {
		product := strings.TrimSpace(*req.Product)
		if product == "" {
			return domain.Sale{}, domain.ErrInvalidProduct
		}
		sale.Product = product
	}
	if req.Quantity != nil {
		quantity, err := decimal.NewFromString(strings.TrimSpace(*req.Quantity))
		if err != nil || !quantity.IsPositive() {
			return domain.Sale{}, domain.ErrInvalidQuantity
		}
		sale.Quantity = quantity
	}
	if req.UnitPrice != nil {
		unitPrice, err := decimal.NewFromString(strings.TrimSpace(*req.UnitPrice))
		if err != nil || !unitPrice.IsPositive() {
			return domain.Sale{}, domain.ErrInvalidPrice
		}
		sale.UnitPrice = unitPrice
	}
	if req.Note != nil {
		sale.Note = strings.TrimSpace(*req.Note)
	}
	sale.TotalAmount = sale.Quantity.Mul(sale.UnitPrice)
	sale.UpdatedAt = time.Now().UTC()

	err = s.db.WithContext(ctx).Model(&domain.Sale{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"product":      sale.Product,
			"quantity":     sale.Quantity,
			"unit_price":   sale.UnitPrice,
			"total_amount": sale.TotalAmount,
			"note":         sale.Note,
			"updated_at":   sale.UpdatedAt,
		}).Error
	if err != nil {
		return domain.Sale{}, err
	}

	_ = s.auditSvc.Record(ctx, "sales", id, auditdomain.ActionUpdate,
		map[string]any{"unit_price": old.UnitPrice.String(), "quantity": old.Quantity.String()},
		map[string]any{"unit_price": sale.UnitPrice.String(), "quantity": sale.Quantity.String()},
	)

	return *sale, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Sale, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidID
	}
	sale, err := s.Find(ctx, s.db, id)
	if err != nil {
		return domain.Sale{}, err
	}
	if sale == nil {
		return domain.Sale{}, domain.ErrNotFound
	}
	return *sale, nil
}

func (s *Service) List(ctx context.Context, req domain.ListSaleRequest) ([]domain.Sale, error) {
	stmt := s.db.WithContext(ctx).
		Model(&domain.Sale{}).
		Where("deleted_at IS NULL")
	if raw := strings.TrimSpace(req.ContactID); raw != "" {
		contactID, err := parseID(raw)
		if err != nil {
			return nil, domain.ErrInvalidContact
		}
		stmt = stmt.Where("contact_id = ?", contactID)
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		stmt = stmt.Where("status = ?", status)
	}

	var sales []domain.Sale
	if err := stmt.Order("created_at desc, id desc").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *Service) UpdateStatus(ctx context.Context, rawID string, rawStatus string) (domain.Sale, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidID
	}

	status := purchasedomain.OrderStatus(strings.TrimSpace(rawStatus))
	switch status {
	case purchasedomain.OrderStatusDraft, purchasedomain.OrderStatusConfirmed, purchasedomain.OrderStatusDelivered:
	case purchasedomain.OrderStatusCancelled:
		return s.Cancel(ctx, rawID)
	default:
		return domain.Sale{}, domain.ErrInvalidStatus
	}

	sale, err := s.Find(ctx, s.db, id)
	if err != nil {
		return domain.Sale{}, err
	}
	if sale == nil {
		return domain.Sale{}, domain.ErrNotFound
	}
	if !purchasedomain.CanTransition(sale.Status, status) {
		return domain.Sale{}, domain.ErrInvalidTransition
	}

	if err := s.setStatus(ctx, s.db, id, status); err != nil {
		return domain.Sale{}, err
	}
	sale.Status = status

	_ = s.auditSvc.Record(ctx, "sales", id, auditdomain.ActionUpdate,
		nil, map[string]any{"status": string(status)})

	return *sale, nil
}

// Cancel reverses the sale's ledger contribution and marks it cancelled.
func (s *Service) Cancel(ctx context.Context, rawID string) (domain.Sale, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidID
	}

	sale, err := s.Find(ctx, s.db, id)
	if err != nil {
		return domain.Sale{}, err
	}
	if sale == nil {
		return domain.Sale{}, domain.ErrNotFound
	}
	if sale.Status == purchasedomain.OrderStatusCancelled {
		return *sale, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountIDs, err := s.accountSvc.SoftDeleteByReference(ctx, tx, accountdomain.ReferenceTypeSale, id)
		if err != nil {
			return err
		}
		for _, accountID := range accountIDs {
			if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
				return err
			}
		}
		return s.setStatus(ctx, tx, id, purchasedomain.OrderStatusCancelled)
	})
	if err != nil {
		return domain.Sale{}, err
	}
	sale.Status = purchasedomain.OrderStatusCancelled

	_ = s.auditSvc.Record(ctx, "sales", id, auditdomain.ActionUpdate,
		nil, map[string]any{"status": string(purchasedomain.OrderStatusCancelled)})

	return *sale, nil
}

// Reassign moves the sale to a new customer. Old postings are removed,
// and each surviving delivery is reposted under the new contact at the
// effective unit price. Both accounts end up recalculated.
func (s *Service) Reassign(ctx context.Context, req domain.ReassignSaleRequest) (domain.Sale, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidID
	}
	newContactID, err := parseID(req.NewContactID)
	if err != nil {
		return domain.Sale{}, domain.ErrInvalidContact
	}

	sale, err := s.Find(ctx, s.db, id)
	if err != nil {
		return domain.Sale{}, err
	}
	if sale == nil {
		return domain.Sale{}, domain.ErrNotFound
	}
	if sale.ContactID == newContactID {
		return domain.Sale{}, domain.ErrSameContact
	}

	contact, err := s.contactRepo.FindByID(ctx, s.db, newContactID)
	if err != nil {
		return domain.Sale{}, err
	}
	if contact == nil || !contact.IsCustomer() {
		return domain.Sale{}, domain.ErrInvalidContact
	}

	unitPrice := sale.UnitPrice
	if req.NewUnitPrice != nil {
		unitPrice, err = decimal.NewFromString(strings.TrimSpace(*req.NewUnitPrice))
		if err != nil || !unitPrice.IsPositive() {
			return domain.Sale{}, domain.ErrInvalidPrice
		}
	}

	oldContactID := sale.ContactID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		newAccount, err := s.accountSvc.EnsureForContact(ctx, tx, newContactID)
		if err != nil {
			return err
		}

		// Remove rather than soft-delete: the old rows must not come
		// back on a later restore of this sale.
		oldAccountIDs, err := s.accountSvc.HardDeleteByReference(ctx, tx, accountdomain.ReferenceTypeSale, id)
		if err != nil {
			return err
		}

		var deliveries []deliverydomain.Delivery
		err = tx.WithContext(ctx).
			Where("sale_id = ? AND deleted_at IS NULL", id).
			Find(&deliveries).Error
		if err != nil {
			return err
		}
		for _, d := range deliveries {
			amount := d.NetWeight.Mul(unitPrice)
			if d.FreightPayer == deliverydomain.FreightPayerCustomer {
				amount = amount.Sub(d.FreightCost)
			}
			deliveryID := d.ID
			_, err := s.accountSvc.Post(ctx, tx, accountdomain.PostEntry{
				AccountID:       newAccount.ID,
				Type:            accountdomain.TransactionTypeDebit,
				Amount:          amount,
				Description:     "Teslimat devri fiş " + d.TicketNo,
				ReferenceType:   accountdomain.ReferenceTypeSale,
				ReferenceID:     id,
				DeliveryID:      &deliveryID,
				TransactionDate: d.DeliveryDate,
			})
			if err != nil {
				return err
			}
		}

		err = tx.WithContext(ctx).Model(&domain.Sale{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"contact_id":   newContactID,
				"unit_price":   unitPrice,
				"total_amount": sale.Quantity.Mul(unitPrice),
				"updated_at":   time.Now().UTC(),
			}).Error
		if err != nil {
			return err
		}

		for _, accountID := range append(oldAccountIDs, newAccount.ID) {
			if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Sale{}, err
	}

	sale.ContactID = newContactID
	sale.UnitPrice = unitPrice
	sale.TotalAmount = sale.Quantity.Mul(unitPrice)

	_ = s.auditSvc.Record(ctx, "sales", id, auditdomain.ActionUpdate,
		map[string]any{"contact_id": oldContactID.String()},
		map[string]any{"contact_id": newContactID.String(), "unit_price": unitPrice.String()},
	)

	return *sale, nil
}

func (s *Service) SoftDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	sale, err := s.Find(ctx, s.db, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Sale{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", now).Error
		if err != nil {
			return err
		}
		accountIDs, err := s.accountSvc.SoftDeleteByReference(ctx, tx, accountdomain.ReferenceTypeSale, id)
		if err != nil {
			return err
		}
		for _, accountID := range accountIDs {
			if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.auditSvc.Record(ctx, "sales", id, auditdomain.ActionDelete,
		map[string]any{"product": sale.Product}, nil)

	return nil
}

func (s *Service) Restore(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	var sale domain.Sale
	err = s.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Limit(1).
		Find(&sale).Error
	if err != nil {
		return err
	}
	if sale.ID == 0 {
		return domain.ErrNotDeleted
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Sale{}).
			Where("id = ?", id).
			Update("deleted_at", nil).Error
		if err != nil {
			return err
		}
		accountIDs, err := s.accountSvc.RestoreByReference(ctx, tx, accountdomain.ReferenceTypeSale, id)
		if err != nil {
			return err
		}
		for _, accountID := range accountIDs {
			if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.auditSvc.Record(ctx, "sales", id, auditdomain.ActionRestore, nil, nil)
	return nil
}

func (s *Service) PermanentDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountIDs, err := s.accountSvc.HardDeleteByReference(ctx, tx, accountdomain.ReferenceTypeSale, id)
		if err != nil {
			return err
		}
		err = tx.WithContext(ctx).
			Where("id = ?", id).
			Delete(&domain.Sale{}).Error
		if err != nil {
			return err
		}
		for _, accountID := range accountIDs {
			if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.auditSvc.Record(ctx, "sales", id, auditdomain.ActionDelete,
		map[string]any{"permanent": true}, nil)
	return nil
}

func (s *Service) Find(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Sale, error) {
	var sale domain.Sale
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		Limit(1).
		Find(&sale).Error
	if err != nil {
		return nil, err
	}
	if sale.ID == 0 {
		return nil, nil
	}
	return &sale, nil
}

func (s *Service) setStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status purchasedomain.OrderStatus) error {
	return db.WithContext(ctx).Model(&domain.Sale{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
