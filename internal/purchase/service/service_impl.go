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
	"github.com/yemtakip/yemtakip/internal/purchase/domain"
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
		log:         p.Log.Named("purchase.service"),
		genID:       p.GenID,
		contactRepo: p.ContactRepo,
		accountSvc:  p.AccountSvc,
		auditSvc:    p.AuditSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePurchaseRequest) (domain.Purchase, error) {
	contactID, err := parseID(req.ContactID)
	if err != nil {
		return domain.Purchase{}, domain.ErrInvalidContact
	}

	contact, err := s.contactRepo.FindByID(ctx, s.db, contactID)
	if err != nil {
		return domain.Purchase{}, err
	}
	if contact == nil || !contact.IsSupplier() {
		return domain.Purchase{}, domain.ErrInvalidContact
	}

	product := strings.TrimSpace(req.Product)
	if product == "" {
		return domain.Purchase{}, domain.ErrInvalidProduct
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(req.Quantity))
	if err != nil || !quantity.IsPositive() {
		return domain.Purchase{}, domain.ErrInvalidQuantity
	}
	unitPrice, err := decimal.NewFromString(strings.TrimSpace(req.UnitPrice))
	if err != nil || !unitPrice.IsPositive() {
		return domain.Purchase{}, domain.ErrInvalidPrice
	}

	pricingModel := domain.PricingModel(strings.TrimSpace(req.PricingModel))
	switch pricingModel {
	case domain.PricingModelFreightIncluded, domain.PricingModelFreightExcluded:
	case "":
		pricingModel = domain.PricingModelFreightExcluded
	default:
		return domain.Purchase{}, domain.ErrInvalidPricingModel
	}

	now := time.Now().UTC()
	purchase := domain.Purchase{
		ID:           s.genID.Generate(),
		ContactID:    contactID,
		Product:      product,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		PricingModel: pricingModel,
		Status:       domain.OrderStatusPending,
		TotalAmount:  quantity.Mul(unitPrice),
		Note:         strings.TrimSpace(req.Note),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&purchase).Error; err != nil {
		return domain.Purchase{}, err
	}

	_ = s.auditSvc.Record(ctx, "purchases", purchase.ID, auditdomain.ActionCreate, nil, map[string]any{
		"contact_id": contactID.String(),
		"product":    product,
		"quantity":   quantity.String(),
		"unit_price": unitPrice.String(),
	})

	return purchase, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePurchaseRequest) (domain.Purchase, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Purchase{}, domain.ErrInvalidID
	}

	purchase, err := s.Find(ctx, s.db, id)
	if err != nil {
		return domain.Purchase{}, err
	}
	if purchase == nil {
		return domain.Purchase{}, domain.ErrNotFound
	}

	old := *purchase
	if req.Product != nil {
		product := strings.TrimSpace(*req.Product)
		if product == "" {
			return domain.Purchase{}, domain.ErrInvalidProduct
		}
		purchase.Product = product
	}
	if req.Quantity != nil {
		quantity, err := decimal.NewFromString(strings.TrimSpace(*req.Quantity))
		if err != nil || !quantity.IsPositive() {
			return domain.Purchase{}, domain.ErrInvalidQuantity
		}
		purchase.Quantity = quantity
	}
	if req.UnitPrice != nil {
		unitPrice, err := decimal.NewFromString(strings.TrimSpace(*req.UnitPrice))
		if err != nil || !unitPrice.IsPositive() {
			return domain.Purchase{}, domain.ErrInvalidPrice
		}
		purchase.UnitPrice = unitPrice
	}
	if req.Note != nil {
		purchase.Note = strings.TrimSpace(*req.Note)
	}
	purchase.TotalAmount = purchase.Quantity.Mul(purchase.UnitPrice)
	purchase.UpdatedAt = time.Now().UTC()

	err = s.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"product":      purchase.Product,
			"quantity":     purchase.Quantity,
			"unit_price":   purchase.UnitPrice,
			"total_amount": purchase.TotalAmount,
			"note":         purchase.Note,
			"updated_at":   purchase.UpdatedAt,
		}).Error
	if err != nil {
		return domain.Purchase{}, err
	}

	_ = s.auditSvc.Record(ctx, "purchases", id, auditdomain.ActionUpdate,
		map[string]any{"unit_price": old.UnitPrice.String(), "quantity": old.Quantity.String()},
		map[string]any{"unit_price": purchase.UnitPrice.String(), "quantity": purchase.Quantity.String()},
	)

	return *purchase, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Purchase, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Purchase{}, domain.ErrInvalidID
	}
	purchase, err := s.Find(ctx, s.db, id)
	if err != nil {
		return domain.Purchase{}, err
	}
	if purchase == nil {
		return domain.Purchase{}, domain.ErrNotFound
	}
	return *purchase, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPurchaseRequest) ([]domain.Purchase, error) {
	stmt := s.db.WithContext(ctx).
		Model(&domain.Purchase{}).
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

	var purchases []domain.Purchase
	if err := stmt.Order("created_at desc, id desc").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *Service) UpdateStatus(ctx context.Context, rawID string, rawStatus string) (domain.Purchase, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Purchase{}, domain.ErrInvalidID
	}

	status := domain.OrderStatus(strings.TrimSpace(rawStatus))
	switch status {
	case domain.OrderStatusDraft, domain.OrderStatusConfirmed, domain.OrderStatusDelivered:
	case domain.OrderStatusCancelled:
		return s.Cancel(ctx, rawID)
	default:
		return domain.Purchase{}, domain.ErrInvalidStatus
	}

	purchase, err := s.Find(ctx, s.db, id)
	if err != nil {
		return domain.Purchase{}, err
	}
	if purchase == nil {
		return domain.Purchase{}, domain.ErrNotFound
	}
	if !domain.CanTransition(purchase.Status, status) {
		return domain.Purchase{}, domain.ErrInvalidTransition
	}

	if err := s.setStatus(ctx, s.db, id, status); err != nil {
		return domain.Purchase{}, err
	}
	purchase.Status = status

	_ = s.auditSvc.Record(ctx, "purchases", id, auditdomain.ActionUpdate,
		nil, map[string]any{"status": string(status)})

	return *purchase, nil
}

// Cancel reverses the purchase's ledger contribution and marks it cancelled.
func (s *Service) Cancel(ctx context.Context, rawID string) (domain.Purchase, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Purchase{}, domain.ErrInvalidID
	}

	purchase, err := s.Find(ctx, s.db, id)
	if err != nil {
		return domain.Purchase{}, err
	}
	if purchase == nil {
		return domain.Purchase{}, domain.ErrNotFound
	}
	if purchase.Status == domain.OrderStatusCancelled {
		return *purchase, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountIDs, err := s.accountSvc.SoftDeleteByReference(ctx, tx, accountdomain.ReferenceTypePurchase, id)
		if err != nil {
			return err
		}
		for _, accountID := range accountIDs {
			if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
				return err
			}
		}
		return s.setStatus(ctx, tx, id, domain.OrderStatusCancelled)
	})
	if err != nil {
		return domain.Purchase{}, err
	}
	purchase.Status = domain.OrderStatusCancelled

	_ = s.auditSvc.Record(ctx, "purchases", id, auditdomain.ActionUpdate,
		nil, map[string]any{"status": string(domain.OrderStatusCancelled)})

	return *purchase, nil
}

func (s *Service) SoftDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	purchase, err := s.Find(ctx, s.db, id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Purchase{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", now).Error
		if err != nil {
			return err
		}
		accountIDs, err := s.accountSvc.SoftDeleteByReference(ctx, tx, accountdomain.ReferenceTypePurchase, id)
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

	_ = s.auditSvc.Record(ctx, "purchases", id, auditdomain.ActionDelete,
		map[string]any{"product": purchase.Product}, nil)

	return nil
}

func (s *Service) Restore(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	var purchase domain.Purchase
	err = s.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Limit(1).
		Find(&purchase).Error
	if err != nil {
		return err
	}
	if purchase.ID == 0 {
		return domain.ErrNotDeleted
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Purchase{}).
			Where("id = ?", id).
			Update("deleted_at", nil).Error
		if err != nil {
			return err
		}
		accountIDs, err := s.accountSvc.RestoreByReference(ctx, tx, accountdomain.ReferenceTypePurchase, id)
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

	_ = s.auditSvc.Record(ctx, "purchases", id, auditdomain.ActionRestore, nil, nil)
	return nil
}

func (s *Service) PermanentDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountIDs, err := s.accountSvc.HardDeleteByReference(ctx, tx, accountdomain.ReferenceTypePurchase, id)
		if err != nil {
			return err
		}
		err = tx.WithContext(ctx).
			Where("id = ?", id).
			Delete(&domain.Purchase{}).Error
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

	_ = s.auditSvc.Record(ctx, "purchases", id, auditdomain.ActionDelete,
		map[string]any{"permanent": true}, nil)
	return nil
}

func (s *Service) Find(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Purchase, error) {
	var purchase domain.Purchase
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		Limit(1).
		Find(&purchase).Error
	if err != nil {
		return nil, err
	}
	if purchase.ID == 0 {
		return nil, nil
	}
	return &purchase, nil
}

func (s *Service) MarkDelivered(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return s.setStatus(ctx, db, id, domain.OrderStatusDelivered)
}

func (s *Service) setStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.OrderStatus) error {
	return db.WithContext(ctx).Model(&domain.Purchase{}).
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
