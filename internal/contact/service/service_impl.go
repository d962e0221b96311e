package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	auditdomain "github.com/yemtakip/yemtakip/internal/audit/domain"
	"github.com/yemtakip/yemtakip/internal/contact/domain"
	"github.com/yemtakip/yemtakip/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	AccountSvc accountdomain.Service
	AuditSvc   auditdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	accountSvc accountdomain.Service
	auditSvc   auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("contact.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		accountSvc: p.AccountSvc,
		auditSvc:   p.AuditSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateContactRequest) (domain.Contact, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Contact{}, domain.ErrInvalidName
	}

	contactType := domain.ContactType(strings.TrimSpace(req.Type))
	switch contactType {
	case domain.ContactTypeSupplier, domain.ContactTypeCustomer, domain.ContactTypeBoth:
	default:
		return domain.Contact{}, domain.ErrInvalidType
	}

	if req.CreditLimit != nil && req.CreditLimit.IsNegative() {
		return domain.Contact{}, domain.ErrInvalidLimit
	}

	now := time.Now().UTC()
	contact := domain.Contact{
		ID:          s.genID.Generate(),
		Name:        name,
		Type:        contactType,
		Phone:       strings.TrimSpace(req.Phone),
		TaxNumber:   strings.TrimSpace(req.TaxNumber),
		Address:     strings.TrimSpace(req.Address),
		CreditLimit: req.CreditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// A contact and its account are born together.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &contact); err != nil {
			return err
		}
		_, err := s.accountSvc.EnsureForContact(ctx, tx, contact.ID)
		return err
	})
	if err != nil {
		return domain.Contact{}, err
	}

	_ = s.auditSvc.Record(ctx, "contacts", contact.ID, auditdomain.ActionCreate, nil, map[string]any{
		"name": contact.Name,
		"type": string(contact.Type),
	})

	return contact, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateContactRequest) (domain.Contact, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Contact{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Contact{}, err
	}
	if existing == nil {
		return domain.Contact{}, domain.ErrNotFound
	}

	old := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Contact{}, domain.ErrInvalidName
		}
		existing.Name = name
	}
	if req.Phone != nil {
		existing.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.TaxNumber != nil {
		existing.TaxNumber = strings.TrimSpace(*req.TaxNumber)
	}
	if req.Address != nil {
		existing.Address = strings.TrimSpace(*req.Address)
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return domain.Contact{}, domain.ErrInvalidLimit
		}
		existing.CreditLimit = req.CreditLimit
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return domain.Contact{}, err
	}

	_ = s.auditSvc.Record(ctx, "contacts", existing.ID, auditdomain.ActionUpdate,
		map[string]any{"name": old.Name, "phone": old.Phone},
		map[string]any{"name": existing.Name, "phone": existing.Phone},
	)

	return *existing, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetContactRequest) (domain.Contact, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Contact{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Contact{}, err
	}
	if item == nil {
		return domain.Contact{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListContactRequest) (domain.ListContactResponse, error) {
	filter := domain.ListContactFilter{
		Name: strings.TrimSpace(req.Name),
		Type: domain.ContactType(strings.TrimSpace(req.Type)),
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListContactResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(contact *domain.Contact) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        contact.ID.String(),
			CreatedAt: contact.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	contacts := make([]domain.Contact, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		contacts = append(contacts, *item)
	}

	resp := domain.ListContactResponse{Contacts: contacts}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) SoftDelete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Model(&domain.Contact{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
	if err != nil {
		return err
	}

	_ = s.auditSvc.Record(ctx, "contacts", id, auditdomain.ActionDelete,
		map[string]any{"name": existing.Name}, nil)

	return nil
}

func (s *Service) Restore(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	var contact domain.Contact
	err = s.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Limit(1).
		Find(&contact).Error
	if err != nil {
		return err
	}
	if contact.ID == 0 {
		return domain.ErrNotDeleted
	}

	err = s.db.WithContext(ctx).Model(&domain.Contact{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
	if err != nil {
		return err
	}

	_ = s.auditSvc.Record(ctx, "contacts", id, auditdomain.ActionRestore, nil, nil)
	return nil
}

func (s *Service) PermanentDelete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.accountSvc.FindByContact(ctx, tx, id)
		if err != nil {
			return err
		}
		if account != nil {
			err = tx.WithContext(ctx).
				Where("account_id = ?", account.ID).
				Delete(&accountdomain.AccountTransaction{}).Error
			if err != nil {
				return err
			}
			err = tx.WithContext(ctx).
				Where("id = ?", account.ID).
				Delete(&accountdomain.Account{}).Error
			if err != nil {
				return err
			}
		}
		return tx.WithContext(ctx).
			Where("id = ?", id).
			Delete(&domain.Contact{}).Error
	})
	if err != nil {
		return err
	}

	_ = s.auditSvc.Record(ctx, "contacts", id, auditdomain.ActionDelete,
		map[string]any{"permanent": true}, nil)
	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
