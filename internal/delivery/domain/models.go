package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// FreightPayer states who carries the freight cost of a delivery.
type FreightPayer string

const (
	FreightPayerCustomer FreightPayer = "customer"
	FreightPayerMe       FreightPayer = "me"
	FreightPayerSupplier FreightPayer = "supplier"
)

// Delivery is one weighbridge ticket ("kantar fişi"). Each delivery
// yields exactly one customer-side and one supplier-side account
// transaction, computed by ComputeAmounts.
type Delivery struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	SaleID       *snowflake.ID   `gorm:"index" json:"sale_id,omitempty"`
	PurchaseID   *snowflake.ID   `gorm:"index" json:"purchase_id,omitempty"`
	TicketNo     string          `gorm:"index" json:"ticket_no,omitempty"`
	DeliveryDate time.Time       `gorm:"not null;index" json:"delivery_date"`
	GrossWeight  decimal.Decimal `gorm:"type:numeric(18,2)" json:"gross_weight"`
	TareWeight   decimal.Decimal `gorm:"type:numeric(18,2)" json:"tare_weight"`
	NetWeight    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"net_weight"`
	FreightCost  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"freight_cost"`
	FreightPayer FreightPayer    `gorm:"type:text;not null" json:"freight_payer"`
	VehiclePlate string          `json:"vehicle_plate,omitempty"`
	CarrierID    *snowflake.ID   `gorm:"index" json:"carrier_id,omitempty"`
	CarrierName  string          `json:"carrier_name,omitempty"`
	DriverName   string          `json:"driver_name,omitempty"`
	ReturnedKg   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"returned_kg"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    *time.Time      `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (Delivery) TableName() string { return "deliveries" }
