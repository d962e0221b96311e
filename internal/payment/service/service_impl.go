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
	"github.com/yemtakip/yemtakip/internal/metrics"
	"github.com/yemtakip/yemtakip/internal/payment/domain"
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
	auditSvc    auditdomain.Service
	metrics     *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		genID:       p.GenID,
		contactRepo: p.ContactRepo,
		accountSvc:  p.AccountSvc,
		carrierSvc:  p.CarrierSvc,
		auditSvc:    p.AuditSvc,
		metrics:     p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.Payment, error) {
	hasContact := strings.TrimSpace(req.ContactID) != ""
	hasCarrier := strings.TrimSpace(req.CarrierID) != ""
	if hasContact == hasCarrier {
		return domain.Payment{}, domain.ErrInvalidTarget
	}

	direction := domain.PaymentDirection(strings.TrimSpace(req.Direction))
	switch direction {
	case domain.PaymentDirectionInbound, domain.PaymentDirectionOutbound:
	default:
		return domain.Payment{}, domain.ErrInvalidDirection
	}

	method := domain.PaymentMethod(strings.TrimSpace(req.Method))
	switch method {
	case domain.PaymentMethodCash, domain.PaymentMethodBank, domain.PaymentMethodCheck:
	case "":
		method = domain.PaymentMethodCash
	default:
		return domain.Payment{}, domain.ErrInvalidMethod
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	paymentDate := time.Now().UTC()
	if raw := strings.TrimSpace(req.PaymentDate); raw != "" {
		paymentDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.Payment{}, domain.ErrInvalidDate
		}
		paymentDate = paymentDate.UTC()
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		ID:          s.genID.Generate(),
		Direction:   direction,
		Method:      method,
		Amount:      amount,
		PaymentDate: paymentDate,
		Note:        strings.TrimSpace(req.Note),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if hasContact {
			contactID, err := parseID(req.ContactID)
			if err != nil {
				return domain.ErrInvalidTarget
			}
			contact, err := s.contactRepo.FindByID(ctx, tx, contactID)
			if err != nil {
				return err
			}
			if contact == nil {
				return domain.ErrContactNotFound
			}
			account, err := s.accountSvc.EnsureForContact(ctx, tx, contactID)
			if err != nil {
				return err
			}
			payment.ContactID = &contactID

			if err := tx.WithContext(ctx).Create(&payment).Error; err != nil {
				return err
			}
			_, err = s.accountSvc.Post(ctx, tx, accountdomain.PostEntry{
				AccountID:       account.ID,
				Type:            ledgerType(direction),
				Amount:          amount,
				Description:     paymentDescription(direction, method),
				ReferenceType:   accountdomain.ReferenceTypePayment,
				ReferenceID:     payment.ID,
				TransactionDate: paymentDate,
			})
			if err != nil {
				return err
			}
			_, err = s.accountSvc.Recalculate(ctx, tx, account.ID)
			return err
		}

		carrierID, err := parseID(req.CarrierID)
		if err != nil {
			return domain.ErrInvalidTarget
		}
		carrier, err := s.carrierSvc.FindByID(ctx, tx, carrierID)
		if err != nil {
			return err
		}
		if carrier == nil {
			return domain.ErrCarrierNotFound
		}
		payment.CarrierID = &carrierID

		if err := tx.WithContext(ctx).Create(&payment).Error; err != nil {
			return err
		}
		_, err = s.carrierSvc.Post(ctx, tx, carrierdomain.PostEntry{
			CarrierID:       carrierID,
			Type:            carrierLedgerType(direction),
			Amount:          amount,
			Description:     paymentDescription(direction, method),
			ReferenceType:   carrierdomain.CarrierReferenceTypePayment,
			ReferenceID:     payment.ID,
			TransactionDate: paymentDate,
		})
		if err != nil {
			return err
		}
		_, err = s.carrierSvc.Recalculate(ctx, tx, carrierID)
		return err
	})
	if err != nil {
		return domain.Payment{}, err
	}

	_ = s.auditSvc.Record(ctx, "payments", payment.ID, auditdomain.ActionCreate, nil, map[string]any{
		"direction": string(direction),
		"method":    string(method),
		"amount":    amount.String(),
	})

	return payment, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Payment, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Payment{}, domain.ErrInvalidID
	}
	payment, err := s.find(ctx, s.db, id, false)
	if err != nil {
		return domain.Payment{}, err
	}
	if payment == nil {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *payment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) ([]domain.Payment, error) {
	stmt := s.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("deleted_at IS NULL")
	if raw := strings.TrimSpace(req.ContactID); raw != "" {
		contactID, err := parseID(raw)
		if err != nil {
			return nil, domain.ErrInvalidTarget
		}
		stmt = stmt.Where("contact_id = ?", contactID)
	}
	if raw := strings.TrimSpace(req.CarrierID); raw != "" {
		carrierID, err := parseID(raw)
		if err != nil {
			return nil, domain.ErrInvalidTarget
		}
		stmt = stmt.Where("carrier_id = ?", carrierID)
	}
	if direction := strings.TrimSpace(req.Direction); direction != "" {
		stmt = stmt.Where("direction = ?", direction)
	}
	if raw := strings.TrimSpace(req.From); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		stmt = stmt.Where("payment_date >= ?", from.UTC())
	}
	if raw := strings.TrimSpace(req.To); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		stmt = stmt.Where("payment_date <= ?", to.UTC())
	}

	var payments []domain.Payment
	if err := stmt.Order("payment_date desc, id desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *Service) SoftDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	payment, err := s.find(ctx, s.db, id, false)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Payment{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", now).Error
		if err != nil {
			return err
		}
		return s.reverse(ctx, tx, payment, reverseSoftDelete)
	})
	if err != nil {
		return err
	}

	_ = s.auditSvc.Record(ctx, "payments", id, auditdomain.ActionDelete,
		map[string]any{"amount": payment.Amount.String()}, nil)
	return nil
}

func (s *Service) Restore(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	payment, err := s.find(ctx, s.db, id, true)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotDeleted
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Payment{}).
			Where("id = ?", id).
			Update("deleted_at", nil).Error
		if err != nil {
			return err
		}
		return s.reverse(ctx, tx, payment, reverseRestore)
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.TrashRestores.WithLabelValues("payments").Inc()
	}
	_ = s.auditSvc.Record(ctx, "payments", id, auditdomain.ActionRestore, nil, nil)
	return nil
}

func (s *Service) PermanentDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	var payment domain.Payment
	err = s.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&payment).Error
	if err != nil {
		return err
	}
	if payment.ID == 0 {
		return domain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reverse(ctx, tx, &payment, reverseHardDelete); err != nil {
			return err
		}
		return tx.WithContext(ctx).
			Where("id = ?", id).
			Delete(&domain.Payment{}).Error
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.PermanentDeletes.WithLabelValues("payments").Inc()
	}
	_ = s.auditSvc.Record(ctx, "payments", id, auditdomain.ActionDelete,
		map[string]any{"permanent": true}, nil)
	return nil
}

type reverseMode int

const (
	reverseSoftDelete reverseMode = iota
	reverseRestore
	reverseHardDelete
)

// reverse applies the matching ledger mutation for the payment's target
// and recalculates every balance it touched.
func (s *Service) reverse(ctx context.Context, tx *gorm.DB, payment *domain.Payment, mode reverseMode) error {
	if payment.ContactID != nil {
		var accountIDs []snowflake.ID
		var err error
		switch mode {
		case reverseSoftDelete:
			accountIDs, err = s.accountSvc.SoftDeleteByReference(ctx, tx, accountdomain.ReferenceTypePayment, payment.ID)
		case reverseRestore:
			accountIDs, err = s.accountSvc.RestoreByReference(ctx, tx, accountdomain.ReferenceTypePayment, payment.ID)
		case reverseHardDelete:
			accountIDs, err = s.accountSvc.HardDeleteByReference(ctx, tx, accountdomain.ReferenceTypePayment, payment.ID)
		}
		if err != nil {
			return err
		}
		for _, accountID := range accountIDs {
			if _, err := s.accountSvc.Recalculate(ctx, tx, accountID); err != nil {
				return err
			}
		}
		return nil
	}

	var carrierIDs []snowflake.ID
	var err error
	switch mode {
	case reverseSoftDelete:
		carrierIDs, err = s.carrierSvc.SoftDeleteByReference(ctx, tx, carrierdomain.CarrierReferenceTypePayment, payment.ID)
	case reverseRestore:
		carrierIDs, err = s.carrierSvc.RestoreByReference(ctx, tx, carrierdomain.CarrierReferenceTypePayment, payment.ID)
	case reverseHardDelete:
		carrierIDs, err = s.carrierSvc.HardDeleteByReference(ctx, tx, carrierdomain.CarrierReferenceTypePayment, payment.ID)
	}
	if err != nil {
		return err
	}
	for _, carrierID := range carrierIDs {
		if _, err := s.carrierSvc.Recalculate(ctx, tx, carrierID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) find(ctx context.Context, db *gorm.DB, id snowflake.ID, deleted bool) (*domain.Payment, error) {
	state := "deleted_at IS NULL"
	if deleted {
		state = "deleted_at IS NOT NULL"
	}
	var payment domain.Payment
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Where(state).
		Limit(1).
		Find(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

// ledgerType maps the cash direction onto the account ledger: money
// received reduces what the contact owes us.
func ledgerType(direction domain.PaymentDirection) accountdomain.TransactionType {
	if direction == domain.PaymentDirectionInbound {
		return accountdomain.TransactionTypeCredit
	}
	return accountdomain.TransactionTypeDebit
}

func carrierLedgerType(direction domain.PaymentDirection) carrierdomain.CarrierTransactionType {
	if direction == domain.PaymentDirectionInbound {
		return carrierdomain.CarrierTransactionTypeCredit
	}
	return carrierdomain.CarrierTransactionTypeDebit
}

func paymentDescription(direction domain.PaymentDirection, method domain.PaymentMethod) string {
	label := "Tediye"
	if direction == domain.PaymentDirectionInbound {
		label = "Tahsilat"
	}
	switch method {
	case domain.PaymentMethodBank:
		return label + " (banka)"
	case domain.PaymentMethodCheck:
		return label + " (çek)"
	}
	return label + " (nakit)"
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
