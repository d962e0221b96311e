package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreatePurchaseRequest struct {
	ContactID    string
	Product      string
	Quantity     string
	UnitPrice    string
	PricingModel string
	Note         string
}

type UpdatePurchaseRequest struct {
	ID        string
	Product   *string
	Quantity  *string
	UnitPrice *string
	Note      *string
}

type ListPurchaseRequest struct {
	ContactID string
	Status    string
}

type Service interface {
	Create(context.Context, CreatePurchaseRequest) (Purchase, error)
	Update(context.Context, UpdatePurchaseRequest) (Purchase, error)
	GetByID(ctx context.Context, id string) (Purchase, error)
	List(context.Context, ListPurchaseRequest) ([]Purchase, error)
	UpdateStatus(ctx context.Context, id string, status string) (Purchase, error)
	// Cancel reverses every ledger posting referencing the purchase and
	// marks it cancelled.
	Cancel(ctx context.Context, id string) (Purchase, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error

	// Find loads a purchase by its raw ID inside the caller's transaction.
	Find(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Purchase, error)
	// MarkDelivered is invoked by the delivery flow once the delivered
	// weight covers the ordered quantity.
	MarkDelivered(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

var (
	ErrInvalidContact      = errors.New("invalid_contact")
	ErrInvalidProduct      = errors.New("invalid_product")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidPricingModel = errors.New("invalid_pricing_model")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidTransition   = errors.New("invalid_transition")
	ErrNotFound            = errors.New("not_found")
	ErrNotDeleted          = errors.New("not_deleted")
)
