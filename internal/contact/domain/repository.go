package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/yemtakip/yemtakip/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListContactFilter struct {
	Name string
	Type ContactType
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contact *Contact) error
	Update(ctx context.Context, db *gorm.DB, contact *Contact) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Contact, error)
	List(ctx context.Context, db *gorm.DB, filter ListContactFilter, page pagination.Pagination) ([]*Contact, error)
}
