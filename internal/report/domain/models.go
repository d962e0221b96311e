package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
)

// ProfitLossReport aggregates the trading result over a period. Numbers
// come from the deliveries themselves, recomputed through the same
// formulas the ledger postings were born from.
type ProfitLossReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	FreightBorne  decimal.Decimal `json:"freight_borne"`
	Profit        decimal.Decimal `json:"profit"`
	DeliveryCount int             `json:"delivery_count"`
}

type Service interface {
	// Statement returns a contact's dated ledger lines with running balance.
	Statement(ctx context.Context, contactID string, from, to string) (accountdomain.Statement, error)
	// ProfitLoss sums revenue, cost, and own freight over [from, to].
	ProfitLoss(ctx context.Context, from, to string) (ProfitLossReport, error)
}

var (
	ErrInvalidContact = errors.New("invalid_contact")
	ErrInvalidDate    = errors.New("invalid_date")
)
