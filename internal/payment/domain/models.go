package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PaymentDirection distinguishes money received from money paid out.
type PaymentDirection string

const (
	// PaymentDirectionInbound is a collection ("tahsilat"), usually from
	// a customer. It credits the contact's account.
	PaymentDirectionInbound PaymentDirection = "inbound"
	// PaymentDirectionOutbound is a disbursement ("tediye"), usually to a
	// supplier or carrier. It debits the ledger it lands on.
	PaymentDirectionOutbound PaymentDirection = "outbound"
)

// PaymentMethod is free-form in the database but these are the values
// the handlers accept.
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodBank  PaymentMethod = "bank"
	PaymentMethodCheck PaymentMethod = "check"
)

// Payment is one cash or bank movement. Exactly one of ContactID and
// CarrierID is set: contact payments post to the account ledger,
// carrier payments to the freight ledger.
type Payment struct {
	ID          snowflake.ID     `gorm:"primaryKey" json:"id"`
	ContactID   *snowflake.ID    `gorm:"index" json:"contact_id,omitempty"`
	CarrierID   *snowflake.ID    `gorm:"index" json:"carrier_id,omitempty"`
	Direction   PaymentDirection `gorm:"type:text;not null" json:"direction"`
	Method      PaymentMethod    `gorm:"type:text;not null" json:"method"`
	Amount      decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"amount"`
	PaymentDate time.Time        `gorm:"not null;index" json:"payment_date"`
	Note        string           `json:"note,omitempty"`
	CreatedAt   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   *time.Time       `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
