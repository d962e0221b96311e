package domain

import (
	"context"
	"errors"
)

type CreatePaymentRequest struct {
	ContactID   string
	CarrierID   string
	Direction   string
	Method      string
	Amount      string
	PaymentDate string
	Note        string
}

type ListPaymentRequest struct {
	ContactID string
	CarrierID string
	Direction string
	From      string
	To        string
}

type Service interface {
	// Create writes the payment and its ledger posting in one database
	// transaction and recalculates the target balance.
	Create(context.Context, CreatePaymentRequest) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	List(context.Context, ListPaymentRequest) ([]Payment, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidTarget    = errors.New("invalid_target")
	ErrInvalidDirection = errors.New("invalid_direction")
	ErrInvalidMethod    = errors.New("invalid_method")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrContactNotFound  = errors.New("contact_not_found")
	ErrCarrierNotFound  = errors.New("carrier_not_found")
	ErrNotFound         = errors.New("not_found")
	ErrNotDeleted       = errors.New("not_deleted")
)
