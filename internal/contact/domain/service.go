package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/yemtakip/yemtakip/pkg/db/pagination"
)

type CreateContactRequest struct {
	Name        string
	Type        string
	Phone       string
	TaxNumber   string
	Address     string
	CreditLimit *decimal.Decimal
}

type UpdateContactRequest struct {
	ID          string
	Name        *string
	Phone       *string
	TaxNumber   *string
	Address     *string
	CreditLimit *decimal.Decimal
}

type ListContactRequest struct {
	PageToken string
	PageSize  int
	Name      string
	Type      string
}

type ListContactResponse struct {
	pagination.PageInfo
	Contacts []Contact `json:"contacts"`
}

type GetContactRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateContactRequest) (Contact, error)
	Update(context.Context, UpdateContactRequest) (Contact, error)
	GetByID(context.Context, GetContactRequest) (Contact, error)
	List(context.Context, ListContactRequest) (ListContactResponse, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	// PermanentDelete removes the contact together with its account and
	// every transaction on it.
	PermanentDelete(ctx context.Context, id string) error
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidType  = errors.New("invalid_type")
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidLimit = errors.New("invalid_credit_limit")
	ErrNotFound     = errors.New("not_found")
	ErrNotDeleted   = errors.New("not_deleted")
)
