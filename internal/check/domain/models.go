package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CheckKind distinguishes a bank check from a promissory note ("senet").
type CheckKind string

const (
	CheckKindCheck CheckKind = "cek"
	CheckKindNote  CheckKind = "senet"
)

// CheckDirection states which way the paper travels.
type CheckDirection string

const (
	// CheckDirectionReceived: a customer handed it to us.
	CheckDirectionReceived CheckDirection = "received"
	// CheckDirectionIssued: we handed it to a supplier or carrier.
	CheckDirectionIssued CheckDirection = "issued"
)

// CheckStatus is the paper's lifecycle state. No ledger posting exists
// until the money actually moves: clearing posts, endorsing posts,
// deposit and bounce do not.
type CheckStatus string

const (
	CheckStatusPending   CheckStatus = "pending"
	CheckStatusDeposited CheckStatus = "deposited"
	CheckStatusCleared   CheckStatus = "cleared"
	CheckStatusBounced   CheckStatus = "bounced"
	CheckStatusEndorsed  CheckStatus = "endorsed"
	CheckStatusCancelled CheckStatus = "cancelled"
)

var checkTransitions = map[CheckStatus][]CheckStatus{
	CheckStatusPending:   {CheckStatusDeposited, CheckStatusEndorsed, CheckStatusCancelled},
	CheckStatusDeposited: {CheckStatusCleared, CheckStatusBounced, CheckStatusCancelled},
	CheckStatusBounced:   {CheckStatusPending},
	CheckStatusCleared:   {},
	CheckStatusEndorsed:  {},
	CheckStatusCancelled: {},
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another.
func CanTransition(from, to CheckStatus) bool {
	for _, next := range checkTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Check is one çek or senet. An endorsement links two rows: the source
// check ends up endorsed and the target contact gets a fresh issued
// check pointing back via OriginCheckID.
type Check struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	ContactID     snowflake.ID    `gorm:"not null;index" json:"contact_id"`
	Kind          CheckKind       `gorm:"type:text;not null" json:"kind"`
	Direction     CheckDirection  `gorm:"type:text;not null" json:"direction"`
	CheckNo       string          `json:"check_no,omitempty"`
	BankName      string          `json:"bank_name,omitempty"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	DueDate       time.Time       `gorm:"not null;index" json:"due_date"`
	Status        CheckStatus     `gorm:"type:text;not null;index" json:"status"`
	EndorsedToID  *snowflake.ID   `gorm:"index" json:"endorsed_to_id,omitempty"`
	OriginCheckID *snowflake.ID   `gorm:"index" json:"origin_check_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt     *time.Time      `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the database table name.
func (Check) TableName() string { return "checks" }
