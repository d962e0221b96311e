package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	auditdomain "github.com/yemtakip/yemtakip/internal/audit/domain"
	"github.com/yemtakip/yemtakip/internal/check/domain"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
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
		log:         p.Log.Named("check.service"),
		genID:       p.GenID,
		contactRepo: p.ContactRepo,
		accountSvc:  p.AccountSvc,
		auditSvc:    p.AuditSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCheckRequest) (domain.Check, error) {
	contactID, err := parseID(req.ContactID)
	if err != nil {
		return domain.Check{}, domain.ErrInvalidContact
	}
	contact, err := s.contactRepo.FindByID(ctx, s.db, contactID)
	if err != nil {
		return domain.Check{}, err
	}
	if contact == nil {
		return domain.Check{}, domain.ErrInvalidContact
	}

	kind := domain.CheckKind(strings.TrimSpace(req.Kind))
	switch kind {
	case domain.CheckKindCheck, domain.CheckKindNote:
	case "":
		kind = domain.CheckKindCheck
	default:
		return domain.Check{}, domain.ErrInvalidKind
	}

	direction := domain.CheckDirection(strings.TrimSpace(req.Direction))
	switch direction {
	case domain.CheckDirectionReceived, domain.CheckDirectionIssued:
	default:
		return domain.Check{}, domain.ErrInvalidDirection
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return domain.Check{}, domain.ErrInvalidAmount
	}

	dueDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.DueDate))
	if err != nil {
		return domain.Check{}, domain.ErrInvalidDate
	}

	now := time.Now().UTC()
	check := domain.Check{
		ID:        s.genID.Generate(),
		ContactID: contactID,
		Kind:      kind,
		Direction: direction,
		CheckNo:   strings.TrimSpace(req.CheckNo),
		BankName:  strings.TrimSpace(req.BankName),
		Amount:    amount,
		DueDate:   dueDate.UTC(),
		Status:    domain.CheckStatusPending,
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&check).Error; err != nil {
		return domain.Check{}, err
	}

	_ = s.auditSvc.Record(ctx, "checks", check.ID, auditdomain.ActionCreate, nil, map[string]any{
		"contact_id": contactID.String(),
		"kind":       string(kind),
		"direction":  string(direction),
		"amount":     amount.String(),
	})

	return check, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Check, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Check{}, domain.ErrInvalidID
	}
	check, err := s.find(ctx, s.db, id, false)
	if err != nil {
		return domain.Check{}, err
	}
	if check == nil {
		return domain.Check{}, domain.ErrNotFound
	}
	return *check, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCheckRequest) ([]domain.Check, error) {
	stmt := s.db.WithContext(ctx).
		Model(&domain.Check{}).
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
	if raw := strings.TrimSpace(req.DueFrom); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		stmt = stmt.Where("due_date >= ?", from.UTC())
	}
	if raw := strings.TrimSpace(req.DueTo); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		stmt = stmt.Where("due_date <= ?", to.UTC())
	}

	var checks []domain.Check
	if err := stmt.Order("due_date asc, id asc").Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

func (s *Service) UpdateStatus(ctx context.Context, rawID string, rawStatus string) (domain.Check, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Check{}, domain.ErrInvalidID
	}

	status := domain.CheckStatus(strings.TrimSpace(rawStatus))
	switch status {
	case domain.CheckStatusPending, domain.CheckStatusDeposited, domain.CheckStatusCleared,
		domain.CheckStatusBounced, domain.CheckStatusCancelled:
	case domain.CheckStatusEndorsed:
		// Endorsing needs a target contact; it has its own entry point.
		return domain.Check{}, domain.ErrInvalidStatus
	default:
		return domain.Check{}, domain.ErrInvalidStatus
	}

	check, err := s.find(ctx, s.db, id, false)
	if err != nil {
		return domain.Check{}, err
	}
	if check == nil {
		return domain.Check{}, domain.ErrNotFound
	}
	if !domain.CanTransition(check.Status, status) {
		return domain.Check{}, domain.ErrInvalidTransition
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.setStatus(ctx, tx, id, status); err != nil {
			return err
		}
		if status != domain.CheckStatusCleared {
			return nil
		}
		// Money moved: a received check pays the contact's debt, an
		// issued check pays ours.
		account, err := s.accountSvc.EnsureForContact(ctx, tx, check.ContactID)
		if err != nil {
			return err
		}
		entryType := accountdomain.TransactionTypeCredit
		if check.Direction == domain.CheckDirectionIssued {
			entryType = accountdomain.TransactionTypeDebit
		}
		_, err = s.accountSvc.Post(ctx, tx, accountdomain.PostEntry{
			AccountID:       account.ID,
			Type:            entryType,
			Amount:          check.Amount,
			Description:     clearDescription(*check),
			ReferenceType:   accountdomain.ReferenceTypeCheck,
			ReferenceID:     check.ID,
			TransactionDate: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		_, err = s.accountSvc.Recalculate(ctx, tx, account.ID)
		return err
	})
	if err != nil {
		return domain.Check{}, err
	}
	check.Status = status

	_ = s.auditSvc.Record(ctx, "checks", id, auditdomain.ActionUpdate,
		nil, map[string]any{"status": string(status)})

	return *check, nil
}

func (s *Service) Endorse(ctx context.Context, req domain.EndorseCheckRequest) (domain.Check, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Check{}, domain.ErrInvalidID
	}
	targetID, err := parseID(req.TargetContactID)
	if err != nil {
		return domain.Check{}, domain.ErrInvalidContact
	}

	check, err := s.find(ctx, s.db, id, false)
	if err != nil {
		return domain.Check{}, err
	}
	if check == nil {
		return domain.Check{}, domain.ErrNotFound
	}
	if check.Direction != domain.CheckDirectionReceived {
		return domain.Check{}, domain.ErrNotEndorsable
	}
	if !domain.CanTransition(check.Status, domain.CheckStatusEndorsed) {
		return domain.Check{}, domain.ErrInvalidTransition
	}
	if check.ContactID == targetID {
		return domain.Check{}, domain.ErrSameContact
	}

	target, err := s.contactRepo.FindByID(ctx, s.db, targetID)
	if err != nil {
		return domain.Check{}, err
	}
	if target == nil {
		return domain.Check{}, domain.ErrInvalidContact
	}

	now := time.Now().UTC()
	endorsed := domain.Check{
		ID:            s.genID.Generate(),
		ContactID:     targetID,
		Kind:          check.Kind,
		Direction:     domain.CheckDirectionIssued,
		CheckNo:       check.CheckNo,
		BankName:      check.BankName,
		Amount:        check.Amount,
		DueDate:       check.DueDate,
		Status:        domain.CheckStatusEndorsed,
		OriginCheckID: &check.ID,
		Note:          "Ciro: " + check.ContactID.String(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sourceAccount, err := s.accountSvc.EnsureForContact(ctx, tx, check.ContactID)
		if err != nil {
			return err
		}
		targetAccount, err := s.accountSvc.EnsureForContact(ctx, tx, targetID)
		if err != nil {
			return err
		}

		err = tx.WithContext(ctx).Model(&domain.Check{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(map[string]any{
				"status":         domain.CheckStatusEndorsed,
				"endorsed_to_id": targetID,
				"updated_at":     now,
			}).Error
		if err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Create(&endorsed).Error; err != nil {
			return err
		}

		// The source contact's debt is settled by the paper, the target
		// gets paid with it.
		_, err = s.accountSvc.Post(ctx, tx, accountdomain.PostEntry{
			AccountID:       sourceAccount.ID,
			Type:            accountdomain.TransactionTypeCredit,
			Amount:          check.Amount,
			Description:     "Çek cirosu " + check.CheckNo,
			ReferenceType:   accountdomain.ReferenceTypeCheck,
			ReferenceID:     check.ID,
			TransactionDate: now,
		})
		if err != nil {
			return err
		}
		_, err = s.accountSvc.Post(ctx, tx, accountdomain.PostEntry{
			AccountID:       targetAccount.ID,
			Type:            accountdomain.TransactionTypeDebit,
			Amount:          check.Amount,
			Description:     "Çek cirosu " + check.CheckNo,
			ReferenceType:   accountdomain.ReferenceTypeCheck,
			ReferenceID:     endorsed.ID,
			TransactionDate: now,
		})
		if err != nil {
			return err
		}

		if _, err := s.accountSvc.Recalculate(ctx, tx, sourceAccount.ID); err != nil {
			return err
		}
		_, err = s.accountSvc.Recalculate(ctx, tx, targetAccount.ID)
		return err
	})
	if err != nil {
		return domain.Check{}, err
	}

	_ = s.auditSvc.Record(ctx, "checks", id, auditdomain.ActionUpdate,
		map[string]any{"status": string(check.Status)},
		map[string]any{"status": string(domain.CheckStatusEndorsed), "endorsed_to": targetID.String()})

	return endorsed, nil
}

func (s *Service) SoftDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	check, err := s.find(ctx, s.db, id, false)
	if err != nil {
		return err
	}
	if check == nil {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Check{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", now).Error
		if err != nil {
			return err
		}
		accountIDs, err := s.accountSvc.SoftDeleteByReference(ctx, tx, accountdomain.ReferenceTypeCheck, id)
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

	_ = s.auditSvc.Record(ctx, "checks", id, auditdomain.ActionDelete,
		map[string]any{"amount": check.Amount.String()}, nil)
	return nil
}

func (s *Service) Restore(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	check, err := s.find(ctx, s.db, id, true)
	if err != nil {
		return err
	}
	if check == nil {
		return domain.ErrNotDeleted
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Model(&domain.Check{}).
			Where("id = ?", id).
			Update("deleted_at", nil).Error
		if err != nil {
			return err
		}
		accountIDs, err := s.accountSvc.RestoreByReference(ctx, tx, accountdomain.ReferenceTypeCheck, id)
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

	_ = s.auditSvc.Record(ctx, "checks", id, auditdomain.ActionRestore, nil, nil)
	return nil
}

func (s *Service) PermanentDelete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accountIDs, err := s.accountSvc.HardDeleteByReference(ctx, tx, accountdomain.ReferenceTypeCheck, id)
		if err != nil {
			return err
		}
		err = tx.WithContext(ctx).
			Where("id = ?", id).
			Delete(&domain.Check{}).Error
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

	_ = s.auditSvc.Record(ctx, "checks", id, auditdomain.ActionDelete,
		map[string]any{"permanent": true}, nil)
	return nil
}

func (s *Service) find(ctx context.Context, db *gorm.DB, id snowflake.ID, deleted bool) (*domain.Check, error) {
	state := "deleted_at IS NULL"
	if deleted {
		state = "deleted_at IS NOT NULL"
	}
	var check domain.Check
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Where(state).
		Limit(1).
		Find(&check).Error
	if err != nil {
		return nil, err
	}
	if check.ID == 0 {
		return nil, nil
	}
	return &check, nil
}

func (s *Service) setStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.CheckStatus) error {
	return db.WithContext(ctx).Model(&domain.Check{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func clearDescription(check domain.Check) string {
	label := "Çek tahsili"
	if check.Kind == domain.CheckKindNote {
		label = "Senet tahsili"
	}
	if check.Direction == domain.CheckDirectionIssued {
		label = "Çek ödemesi"
		if check.Kind == domain.CheckKindNote {
			label = "Senet ödemesi"
		}
	}
	if check.CheckNo != "" {
		return label + " " + check.CheckNo
	}
	return label
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
