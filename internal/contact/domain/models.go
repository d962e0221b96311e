package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ContactType classifies which side of the trade a contact sits on.
type ContactType string

const (
	ContactTypeSupplier ContactType = "supplier"
	ContactTypeCustomer ContactType = "customer"
	ContactTypeBoth     ContactType = "both"
)

// Contact is a supplier, customer, or both. Every contact owns exactly
// one running account, created together with the contact.
type Contact struct {
	ID          snowflake.ID     `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"not null;index" json:"name"`
	Type        ContactType      `gorm:"type:text;not null;index" json:"type"`
	Phone       string           `json:"phone,omitempty"`
	TaxNumber   string           `json:"tax_number,omitempty"`
	Address     string           `json:"address,omitempty"`
	CreditLimit *decimal.Decimal `gorm:"type:numeric(18,2)" json:"credit_limit,omitempty"`
	CreatedAt   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   *time.Time       `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (Contact) TableName() string { return "contacts" }

// IsCustomer reports whether the contact can appear on the customer side.
func (c Contact) IsCustomer() bool {
	return c.Type == ContactTypeCustomer || c.Type == ContactTypeBoth
}

// IsSupplier reports whether the contact can appear on the supplier side.
func (c Contact) IsSupplier() bool {
	return c.Type == ContactTypeSupplier || c.Type == ContactTypeBoth
}
