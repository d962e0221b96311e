package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TransactionType represents debit or credit postings.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// ReferenceType tags a posting with the business document that produced it.
type ReferenceType string

const (
	ReferenceTypeSale     ReferenceType = "sale"
	ReferenceTypePurchase ReferenceType = "purchase"
	ReferenceTypePayment  ReferenceType = "payment"
	ReferenceTypeCheck    ReferenceType = "check"
)

// Account is the single running account owned by a contact.
// Balance is a cache: it must always equal the sum of the account's
// non-deleted transactions' signed amounts (debit − credit).
type Account struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	ContactID   snowflake.ID    `gorm:"not null;uniqueIndex" json:"contact_id"`
	TotalDebit  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_debit"`
	TotalCredit decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_credit"`
	Balance     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "accounts" }

// AccountTransaction is an append-only ledger row. Once written it is
// immutable except for soft delete; reversing an operation soft-deletes
// the matching rows, it never negates amounts in place.
type AccountTransaction struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	AccountID       snowflake.ID    `gorm:"not null;index" json:"account_id"`
	Type            TransactionType `gorm:"type:text;not null" json:"type"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Description     string          `json:"description,omitempty"`
	ReferenceType   ReferenceType   `gorm:"type:text;not null;index:idx_account_transactions_ref" json:"reference_type"`
	ReferenceID     snowflake.ID    `gorm:"not null;index:idx_account_transactions_ref" json:"reference_id"`
	DeliveryID      *snowflake.ID   `gorm:"index" json:"delivery_id,omitempty"`
	TransactionDate time.Time       `gorm:"not null;index" json:"transaction_date"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	DeletedAt       *time.Time      `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (AccountTransaction) TableName() string { return "account_transactions" }

// SignedAmount returns the transaction's contribution to the balance.
func (t AccountTransaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeCredit {
		return t.Amount.Neg()
	}
	return t.Amount
}
