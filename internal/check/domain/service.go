package domain

import (
	"context"
	"errors"
)

type CreateCheckRequest struct {
	ContactID string
	Kind      string
	Direction string
	CheckNo   string
	BankName  string
	Amount    string
	DueDate   string
	Note      string
}

type ListCheckRequest struct {
	ContactID string
	Status    string
	DueFrom   string
	DueTo     string
}

type EndorseCheckRequest struct {
	ID              string
	TargetContactID string
}

type Service interface {
	Create(context.Context, CreateCheckRequest) (Check, error)
	GetByID(ctx context.Context, id string) (Check, error)
	List(context.Context, ListCheckRequest) ([]Check, error)

	// UpdateStatus walks the lifecycle. Clearing posts the money movement
	// to the contact's account; deposit, bounce, and cancel never touch
	// the ledger.
	UpdateStatus(ctx context.Context, id string, status string) (Check, error)

	// Endorse hands a received check over to another contact: the source
	// check becomes endorsed and the target gets a fresh issued check.
	// The source contact is credited and the target debited.
	Endorse(context.Context, EndorseCheckRequest) (Check, error)

	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidContact    = errors.New("invalid_contact")
	ErrInvalidKind       = errors.New("invalid_kind")
	ErrInvalidDirection  = errors.New("invalid_direction")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidDate       = errors.New("invalid_date")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrNotEndorsable     = errors.New("not_endorsable")
	ErrSameContact       = errors.New("same_contact")
	ErrNotFound          = errors.New("not_found")
	ErrNotDeleted        = errors.New("not_deleted")
)
