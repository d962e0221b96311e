package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PostEntry describes one ledger posting to append.
type PostEntry struct {
	AccountID       snowflake.ID
	Type            TransactionType
	Amount          decimal.Decimal
	Description     string
	ReferenceType   ReferenceType
	ReferenceID     snowflake.ID
	DeliveryID      *snowflake.ID
	TransactionDate time.Time
}

// StatementLine is one row of an account statement with its running balance.
type StatementLine struct {
	Transaction    AccountTransaction `json:"transaction"`
	RunningBalance decimal.Decimal    `json:"running_balance"`
}

type Statement struct {
	Account     Account         `json:"account"`
	Lines       []StatementLine `json:"lines"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// Service is the account registry, transaction ledger, and recalculation
// engine. Methods take the caller's *gorm.DB handle so multi-step flows
// run inside one database transaction.
type Service interface {
	// EnsureForContact returns the contact's account, creating it when absent.
	EnsureForContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) (*Account, error)
	FindByContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) (*Account, error)
	FindByID(ctx context.Context, db *gorm.DB, accountID snowflake.ID) (*Account, error)

	// Post appends one transaction. Amounts must be positive.
	Post(ctx context.Context, db *gorm.DB, entry PostEntry) (*AccountTransaction, error)

	// Recalculate re-sums the account's non-deleted transactions and writes
	// total_debit, total_credit, and balance back. Every mutation path
	// funnels through it; nothing does incremental arithmetic.
	Recalculate(ctx context.Context, db *gorm.DB, accountID snowflake.ID) (*Account, error)

	// Reversal helpers. Each returns the distinct account IDs whose rows
	// changed so the caller can recalculate them.
	SoftDeleteByReference(ctx context.Context, db *gorm.DB, refType ReferenceType, refID snowflake.ID) ([]snowflake.ID, error)
	RestoreByReference(ctx context.Context, db *gorm.DB, refType ReferenceType, refID snowflake.ID) ([]snowflake.ID, error)
	HardDeleteByReference(ctx context.Context, db *gorm.DB, refType ReferenceType, refID snowflake.ID) ([]snowflake.ID, error)
	SoftDeleteByDelivery(ctx context.Context, db *gorm.DB, deliveryID snowflake.ID) ([]snowflake.ID, error)
	RestoreByDelivery(ctx context.Context, db *gorm.DB, deliveryID snowflake.ID) ([]snowflake.ID, error)
	HardDeleteByDelivery(ctx context.Context, db *gorm.DB, deliveryID snowflake.ID) ([]snowflake.ID, error)

	// Statement returns the account's non-deleted transactions in date order
	// with running balances, optionally bounded by [from, to].
	Statement(ctx context.Context, db *gorm.DB, contactID snowflake.ID, from, to *time.Time) (Statement, error)
}

var (
	ErrInvalidContact   = errors.New("invalid_contact")
	ErrInvalidAccount   = errors.New("invalid_account")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidType      = errors.New("invalid_type")
	ErrInvalidReference = errors.New("invalid_reference")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrAccountNotFound  = errors.New("account_not_found")
)
