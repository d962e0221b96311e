package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
)

// Sale is a customer-side order header. It shares the purchase
// lifecycle; total_amount is informational and the ledger is driven by
// per-delivery transactions.
type Sale struct {
	ID          snowflake.ID               `gorm:"primaryKey" json:"id"`
	ContactID   snowflake.ID               `gorm:"not null;index" json:"contact_id"`
	Product     string                     `gorm:"not null" json:"product"`
	Quantity    decimal.Decimal            `gorm:"type:numeric(18,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal            `gorm:"type:numeric(18,4);not null" json:"unit_price"`
	Status      purchasedomain.OrderStatus `gorm:"type:text;not null;index" json:"status"`
	TotalAmount decimal.Decimal            `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	Note        string                     `json:"note,omitempty"`
	CreatedAt   time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   *time.Time                 `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (Sale) TableName() string { return "sales" }
