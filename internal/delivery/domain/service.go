package domain

import (
	"context"
	"errors"
)

type CreateDeliveryRequest struct {
	SaleID       string
	PurchaseID   string
	TicketNo     string
	DeliveryDate string
	GrossWeight  string
	TareWeight   string
	NetWeight    string
	FreightCost  string
	FreightPayer string
	VehiclePlate string
	CarrierName  string
	DriverName   string
}

type ListDeliveryRequest struct {
	SaleID     string
	PurchaseID string
	From       string
	To         string
}

type ReturnDeliveryRequest struct {
	ID         string
	ReturnedKg string
	Reason     string
}

type Service interface {
	// Create compiles the delivery into its ledger postings and writes
	// everything in one database transaction. If either side's account
	// cannot be resolved, nothing is written.
	Create(context.Context, CreateDeliveryRequest) (Delivery, error)
	GetByID(ctx context.Context, id string) (Delivery, error)
	List(context.Context, ListDeliveryRequest) ([]Delivery, error)

	// SoftDelete reverses both the sale-side and purchase-side postings.
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error

	// Return books a partial return: opposite-direction postings sized
	// proportionally to the returned weight, and a reduced net weight.
	Return(context.Context, ReturnDeliveryRequest) (Delivery, error)
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidOrder      = errors.New("invalid_order")
	ErrInvalidDate       = errors.New("invalid_date")
	ErrInvalidWeight     = errors.New("invalid_weight")
	ErrInvalidFreight    = errors.New("invalid_freight")
	ErrInvalidPayer      = errors.New("invalid_freight_payer")
	ErrInvalidReturn     = errors.New("invalid_return")
	ErrOrderNotFound     = errors.New("order_not_found")
	ErrContactNotFound   = errors.New("contact_not_found")
	ErrNotFound          = errors.New("not_found")
	ErrNotDeleted        = errors.New("not_deleted")
	ErrAlreadyDeleted    = errors.New("already_deleted")
	ErrOrderCancelled    = errors.New("order_cancelled")
	ErrReturnExceedsLoad = errors.New("return_exceeds_delivered_weight")
)
