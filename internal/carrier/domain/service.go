package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PostEntry describes one carrier ledger posting.
type PostEntry struct {
	CarrierID       snowflake.ID
	Type            CarrierTransactionType
	Amount          decimal.Decimal
	Description     string
	ReferenceType   CarrierReferenceType
	ReferenceID     snowflake.ID
	TransactionDate time.Time
}

// Service mirrors the account ledger for freight payable to carriers.
// Methods take the caller's *gorm.DB so flows share one transaction.
type Service interface {
	// EnsureByName returns the carrier with the given name, creating it
	// when absent. Used as the upsert path from deliveries.
	EnsureByName(ctx context.Context, db *gorm.DB, name string) (*Carrier, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Carrier, error)
	List(ctx context.Context, db *gorm.DB) ([]Carrier, error)

	Post(ctx context.Context, db *gorm.DB, entry PostEntry) (*CarrierTransaction, error)
	Recalculate(ctx context.Context, db *gorm.DB, carrierID snowflake.ID) (*Carrier, error)
	SoftDeleteByReference(ctx context.Context, db *gorm.DB, refType CarrierReferenceType, refID snowflake.ID) ([]snowflake.ID, error)
	RestoreByReference(ctx context.Context, db *gorm.DB, refType CarrierReferenceType, refID snowflake.ID) ([]snowflake.ID, error)
	HardDeleteByReference(ctx context.Context, db *gorm.DB, refType CarrierReferenceType, refID snowflake.ID) ([]snowflake.ID, error)

	// UpsertVehicle records a weighbridge plate, optionally tied to a carrier.
	UpsertVehicle(ctx context.Context, db *gorm.DB, plate string, carrierID *snowflake.ID) (*Vehicle, error)
	Transactions(ctx context.Context, db *gorm.DB, carrierID snowflake.ID) ([]CarrierTransaction, error)
}

var (
	ErrInvalidCarrier   = errors.New("invalid_carrier")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidType      = errors.New("invalid_type")
	ErrInvalidReference = errors.New("invalid_reference")
	ErrInvalidPlate     = errors.New("invalid_plate")
	ErrNotFound         = errors.New("not_found")
)
