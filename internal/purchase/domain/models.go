package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PricingModel states whether the agreed supplier price includes freight.
type PricingModel string

const (
	// PricingModelFreightIncluded ("nakliye dahil"): freight comes out of
	// the supplier's side unless the supplier is already paying it.
	PricingModelFreightIncluded PricingModel = "nakliye_dahil"
	// PricingModelFreightExcluded ("nakliye hariç"): supplier price is net
	// of freight.
	PricingModelFreightExcluded PricingModel = "nakliye_haric"
)

// OrderStatus is the shared sale/purchase lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusDraft, OrderStatusCancelled},
	OrderStatusDraft:     {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {OrderStatusCancelled},
	OrderStatusCancelled: {},
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Purchase is a supplier-side order header. total_amount is informational;
// the ledger is driven by per-delivery transactions.
type Purchase struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	ContactID    snowflake.ID    `gorm:"not null;index" json:"contact_id"`
	Product      string          `gorm:"not null" json:"product"`
	Quantity     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"unit_price"`
	PricingModel PricingModel    `gorm:"type:text;not null" json:"pricing_model"`
	Status       OrderStatus     `gorm:"type:text;not null;index" json:"status"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    *time.Time      `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (Purchase) TableName() string { return "purchases" }
