package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	"github.com/yemtakip/yemtakip/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *metrics.Metrics
}

func NewService(p Params) accountdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("account.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
	}
}

func (s *Service) EnsureForContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) (*accountdomain.Account, error) {
	if contactID == 0 {
		return nil, accountdomain.ErrInvalidContact
	}

	existing, err := s.FindByContact(ctx, db, contactID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	account := accountdomain.Account{
		ID:          s.genID.Generate(),
		ContactID:   contactID,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Balance:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Service) FindByContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) (*accountdomain.Account, error) {
	if contactID == 0 {
		return nil, accountdomain.ErrInvalidContact
	}
	var account accountdomain.Account
	err := db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Limit(1).
		Find(&account).Error
	if err != nil {
		return nil, err
	}
	if account.ID == 0 {
		return nil, nil
	}
	return &account, nil
}

func (s *Service) FindByID(ctx context.Context, db *gorm.DB, accountID snowflake.ID) (*accountdomain.Account, error) {
	if accountID == 0 {
		return nil, accountdomain.ErrInvalidAccount
	}
	var account accountdomain.Account
	err := db.WithContext(ctx).
		Where("id = ?", accountID).
		Limit(1).
		Find(&account).Error
	if err != nil {
		return nil, err
	}
	if account.ID == 0 {
		return nil, nil
	}
	return &account, nil
}

func (s *Service) Post(ctx context.Context, db *gorm.DB, entry accountdomain.PostEntry) (*accountdomain.AccountTransaction, error) {
	if entry.AccountID == 0 {
		return nil, accountdomain.ErrInvalidAccount
	}
	switch entry.Type {
	case accountdomain.TransactionTypeDebit, accountdomain.TransactionTypeCredit:
	default:
		return nil, accountdomain.ErrInvalidType
	}
	if !entry.Amount.IsPositive() {
		return nil, accountdomain.ErrInvalidAmount
	}
	switch entry.ReferenceType {
	case accountdomain.ReferenceTypeSale, accountdomain.ReferenceTypePurchase,
		accountdomain.ReferenceTypePayment, accountdomain.ReferenceTypeCheck:
	default:
		return nil, accountdomain.ErrInvalidReference
	}
	if entry.ReferenceID == 0 {
		return nil, accountdomain.ErrInvalidReference
	}
	if entry.TransactionDate.IsZero() {
		return nil, accountdomain.ErrInvalidDate
	}

	txn := accountdomain.AccountTransaction{
		ID:              s.genID.Generate(),
		AccountID:       entry.AccountID,
		Type:            entry.Type,
		Amount:          entry.Amount,
		Description:     entry.Description,
		ReferenceType:   entry.ReferenceType,
		ReferenceID:     entry.ReferenceID,
		DeliveryID:      entry.DeliveryID,
		TransactionDate: entry.TransactionDate.UTC(),
		CreatedAt:       time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PostingsWritten.WithLabelValues(string(entry.ReferenceType)).Inc()
	}
	return &txn, nil
}

// Recalculate reads every non-deleted transaction for the account and sums
// it in memory. Recomputing from the source of truth rather than adjusting
// incrementally keeps the cached balance drift-free.
func (s *Service) Recalculate(ctx context.Context, db *gorm.DB, accountID snowflake.ID) (*accountdomain.Account, error) {
	if accountID == 0 {
		return nil, accountdomain.ErrInvalidAccount
	}

	var txns []accountdomain.AccountTransaction
	err := db.WithContext(ctx).
		Where("account_id = ? AND deleted_at IS NULL", accountID).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, txn := range txns {
		switch txn.Type {
		case accountdomain.TransactionTypeDebit:
			totalDebit = totalDebit.Add(txn.Amount)
		case accountdomain.TransactionTypeCredit:
			totalCredit = totalCredit.Add(txn.Amount)
		}
	}
	balance := totalDebit.Sub(totalCredit)

	now := time.Now().UTC()
	result := db.WithContext(ctx).Model(&accountdomain.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"total_debit":  totalDebit,
			"total_credit": totalCredit,
			"balance":      balance,
			"updated_at":   now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, accountdomain.ErrAccountNotFound
	}

	if s.metrics != nil {
		s.metrics.Recalculations.Inc()
	}
	s.log.Debug("account recalculated",
		zap.String("account_id", accountID.String()),
		zap.String("balance", balance.String()),
	)

	return s.FindByID(ctx, db, accountID)
}

func (s *Service) SoftDeleteByReference(ctx context.Context, db *gorm.DB, refType accountdomain.ReferenceType, refID snowflake.ID) ([]snowflake.ID, error) {
	return s.markByScope(ctx, db, scopeReference(refType, refID), "deleted_at IS NULL", time.Now().UTC())
}

func (s *Service) RestoreByReference(ctx context.Context, db *gorm.DB, refType accountdomain.ReferenceType, refID snowflake.ID) ([]snowflake.ID, error) {
	return s.markByScope(ctx, db, scopeReference(refType, refID), "deleted_at IS NOT NULL", nil)
}

func (s *Service) HardDeleteByReference(ctx context.Context, db *gorm.DB, refType accountdomain.ReferenceType, refID snowflake.ID) ([]snowflake.ID, error) {
	return s.hardDeleteByScope(ctx, db, scopeReference(refType, refID))
}

func (s *Service) SoftDeleteByDelivery(ctx context.Context, db *gorm.DB, deliveryID snowflake.ID) ([]snowflake.ID, error) {
	return s.markByScope(ctx, db, scopeDelivery(deliveryID), "deleted_at IS NULL", time.Now().UTC())
}

func (s *Service) RestoreByDelivery(ctx context.Context, db *gorm.DB, deliveryID snowflake.ID) ([]snowflake.ID, error) {
	return s.markByScope(ctx, db, scopeDelivery(deliveryID), "deleted_at IS NOT NULL", nil)
}

func (s *Service) HardDeleteByDelivery(ctx context.Context, db *gorm.DB, deliveryID snowflake.ID) ([]snowflake.ID, error) {
	return s.hardDeleteByScope(ctx, db, scopeDelivery(deliveryID))
}

func (s *Service) Statement(ctx context.Context, db *gorm.DB, contactID snowflake.ID, from, to *time.Time) (accountdomain.Statement, error) {
	account, err := s.FindByContact(ctx, db, contactID)
	if err != nil {
		return accountdomain.Statement{}, err
	}
	if account == nil {
		return accountdomain.Statement{}, accountdomain.ErrAccountNotFound
	}

	stmt := db.WithContext(ctx).
		Where("account_id = ? AND deleted_at IS NULL", account.ID)
	if from != nil {
		stmt = stmt.Where("transaction_date >= ?", from.UTC())
	}
	if to != nil {
		stmt = stmt.Where("transaction_date <= ?", to.UTC())
	}

	var txns []accountdomain.AccountTransaction
	if err := stmt.Order("transaction_date asc, created_at asc, id asc").Find(&txns).Error; err != nil {
		return accountdomain.Statement{}, err
	}

	statement := accountdomain.Statement{
		Account:     *account,
		Lines:       make([]accountdomain.StatementLine, 0, len(txns)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	running := decimal.Zero
	for _, txn := range txns {
		running = running.Add(txn.SignedAmount())
		switch txn.Type {
		case accountdomain.TransactionTypeDebit:
			statement.TotalDebit = statement.TotalDebit.Add(txn.Amount)
		case accountdomain.TransactionTypeCredit:
			statement.TotalCredit = statement.TotalCredit.Add(txn.Amount)
		}
		statement.Lines = append(statement.Lines, accountdomain.StatementLine{
			Transaction:    txn,
			RunningBalance: running,
		})
	}
	return statement, nil
}

type scope struct {
	query string
	args  []any
}

func scopeReference(refType accountdomain.ReferenceType, refID snowflake.ID) scope {
	return scope{
		query: "reference_type = ? AND reference_id = ?",
		args:  []any{refType, refID},
	}
}

func scopeDelivery(deliveryID snowflake.ID) scope {
	return scope{
		query: "delivery_id = ?",
		args:  []any{deliveryID},
	}
}

func (s *Service) markByScope(ctx context.Context, db *gorm.DB, sc scope, state string, deletedAt any) ([]snowflake.ID, error) {
	accountIDs, err := s.accountIDsForScope(ctx, db, sc, state)
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return nil, nil
	}

	err = db.WithContext(ctx).Model(&accountdomain.AccountTransaction{}).
		Where(sc.query, sc.args...).
		Where(state).
		Update("deleted_at", deletedAt).Error
	if err != nil {
		return nil, err
	}
	return accountIDs, nil
}

func (s *Service) hardDeleteByScope(ctx context.Context, db *gorm.DB, sc scope) ([]snowflake.ID, error) {
	accountIDs, err := s.accountIDsForScope(ctx, db, sc, "")
	if err != nil {
		return nil, err
	}
	if len(accountIDs) == 0 {
		return nil, nil
	}

	err = db.WithContext(ctx).
		Where(sc.query, sc.args...).
		Delete(&accountdomain.AccountTransaction{}).Error
	if err != nil {
		return nil, err
	}
	return accountIDs, nil
}

func (s *Service) accountIDsForScope(ctx context.Context, db *gorm.DB, sc scope, state string) ([]snowflake.ID, error) {
	stmt := db.WithContext(ctx).Model(&accountdomain.AccountTransaction{}).
		Distinct("account_id").
		Where(sc.query, sc.args...)
	if state != "" {
		stmt = stmt.Where(state)
	}

	var ids []snowflake.ID
	if err := stmt.Pluck("account_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
