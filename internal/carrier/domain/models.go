package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Carrier hauls deliveries; freight payable to it is tracked in a
// mini-ledger parallel to contact accounts.
type Carrier struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null;uniqueIndex" json:"name"`
	Phone       string          `json:"phone,omitempty"`
	TotalDebit  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_debit"`
	TotalCredit decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_credit"`
	Balance     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   *time.Time      `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (Carrier) TableName() string { return "carriers" }

// CarrierTransactionType mirrors the account ledger directions.
type CarrierTransactionType string

const (
	CarrierTransactionTypeDebit  CarrierTransactionType = "debit"
	CarrierTransactionTypeCredit CarrierTransactionType = "credit"
)

// CarrierReferenceType tags a carrier posting with its source document.
type CarrierReferenceType string

const (
	CarrierReferenceTypeDelivery CarrierReferenceType = "delivery"
	CarrierReferenceTypePayment  CarrierReferenceType = "payment"
)

// CarrierTransaction follows the same debit/credit-by-reference pattern
// as AccountTransaction: immutable except soft delete.
type CarrierTransaction struct {
	ID              snowflake.ID           `gorm:"primaryKey" json:"id"`
	CarrierID       snowflake.ID           `gorm:"not null;index" json:"carrier_id"`
	Type            CarrierTransactionType `gorm:"type:text;not null" json:"type"`
	Amount          decimal.Decimal        `gorm:"type:numeric(18,2);not null" json:"amount"`
	Description     string                 `json:"description,omitempty"`
	ReferenceType   CarrierReferenceType   `gorm:"type:text;not null;index:idx_carrier_transactions_ref" json:"reference_type"`
	ReferenceID     snowflake.ID           `gorm:"not null;index:idx_carrier_transactions_ref" json:"reference_id"`
	TransactionDate time.Time              `gorm:"not null;index" json:"transaction_date"`
	CreatedAt       time.Time              `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	DeletedAt       *time.Time             `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (CarrierTransaction) TableName() string { return "carrier_transactions" }

// Vehicle is a weighbridge plate lookup upserted from deliveries.
type Vehicle struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	Plate     string        `gorm:"not null;uniqueIndex" json:"plate"`
	CarrierID *snowflake.ID `gorm:"index" json:"carrier_id,omitempty"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Vehicle) TableName() string { return "vehicles" }
