package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateSaleRequest struct {
	ContactID string
	Product   string
	Quantity  string
	UnitPrice string
	Note      string
}

type UpdateSaleRequest struct {
	ID        string
	Product   *string
	Quantity  *string
	UnitPrice *string
	Note      *string
}

type ListSaleRequest struct {
	ContactID string
	Status    string
}

// ReassignSaleRequest moves a sale onto a different customer, optionally
// at a new unit price.
type ReassignSaleRequest struct {
	ID           string
	NewContactID string
	NewUnitPrice *string
}

type Service interface {
	Create(context.Context, CreateSaleRequest) (Sale, error)
	Update(context.Context, UpdateSaleRequest) (Sale, error)
	GetByID(ctx context.Context, id string) (Sale, error)
	List(context.Context, ListSaleRequest) ([]Sale, error)
	UpdateStatus(ctx context.Context, id string, status string) (Sale, error)
	// Cancel reverses every ledger posting referencing the sale and marks
	// it cancelled.
	Cancel(ctx context.Context, id string) (Sale, error)
	// Reassign reverses the old customer's postings and reposts each
	// surviving delivery under the new contact at the effective price.
	Reassign(context.Context, ReassignSaleRequest) (Sale, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error

	// Find loads a sale by its raw ID inside the caller's transaction.
	Find(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Sale, error)
}

var (
	ErrInvalidContact    = errors.New("invalid_contact")
	ErrInvalidProduct    = errors.New("invalid_product")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrSameContact       = errors.New("same_contact")
	ErrNotFound          = errors.New("not_found")
	ErrNotDeleted        = errors.New("not_deleted")
)
