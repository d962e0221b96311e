package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/yemtakip/yemtakip/internal/contact/domain"
	"github.com/yemtakip/yemtakip/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, contact *domain.Contact) error {
	return db.WithContext(ctx).Create(contact).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, contact *domain.Contact) error {
	return db.WithContext(ctx).Model(&domain.Contact{}).
		Where("id = ? AND deleted_at IS NULL", contact.ID).
		Updates(map[string]any{
			"name":         contact.Name,
			"phone":        contact.Phone,
			"tax_number":   contact.TaxNumber,
			"address":      contact.Address,
			"credit_limit": contact.CreditLimit,
			"updated_at":   contact.UpdatedAt,
		}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Contact, error) {
	var contact domain.Contact
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		Limit(1).
		Find(&contact).Error
	if err != nil {
		return nil, err
	}
	if contact.ID == 0 {
		return nil, nil
	}
	return &contact, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListContactFilter, page pagination.Pagination) ([]*domain.Contact, error) {
	var contacts []*domain.Contact
	stmt := db.WithContext(ctx).
		Model(&domain.Contact{}).
		Where("deleted_at IS NULL")
	if name := strings.TrimSpace(filter.Name); name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+name+"%")
	}
	if filter.Type != "" {
		if filter.Type == domain.ContactTypeBoth {
			stmt = stmt.Where("type = ?", filter.Type)
		} else {
			stmt = stmt.Where("type IN ?", []domain.ContactType{filter.Type, domain.ContactTypeBoth})
		}
	}
	if token := strings.TrimSpace(page.PageToken); token != "" {
		cursor, err := pagination.DecodeCursor(token)
		if err != nil {
			return nil, err
		}
		id, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(time.RFC3339, cursor.CreatedAt)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)", createdAt, createdAt, id)
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}
