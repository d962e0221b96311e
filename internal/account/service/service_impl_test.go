package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	"github.com/yemtakip/yemtakip/internal/migration"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (accountdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	})
	return svc, db, node
}

func TestEnsureForContactIsIdempotent(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	contactID := node.Generate()

	first, err := svc.EnsureForContact(ctx, db, contactID)
	require.NoError(t, err)
	require.Equal(t, contactID, first.ContactID)
	require.True(t, first.Balance.IsZero())

	second, err := svc.EnsureForContact(ctx, db, contactID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestRecalculateSumsNonDeletedTransactions(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	account, err := svc.EnsureForContact(ctx, db, node.Generate())
	require.NoError(t, err)

	saleID := node.Generate()
	paymentID := node.Generate()
	now := time.Now().UTC()

	_, err = svc.Post(ctx, db, accountdomain.PostEntry{
		AccountID:       account.ID,
		Type:            accountdomain.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(100),
		ReferenceType:   accountdomain.ReferenceTypeSale,
		ReferenceID:     saleID,
		TransactionDate: now,
	})
	require.NoError(t, err)

	_, err = svc.Post(ctx, db, accountdomain.PostEntry{
		AccountID:       account.ID,
		Type:            accountdomain.TransactionTypeCredit,
		Amount:          decimal.NewFromInt(40),
		ReferenceType:   accountdomain.ReferenceTypePayment,
		ReferenceID:     paymentID,
		TransactionDate: now,
	})
	require.NoError(t, err)

	updated, err := svc.Recalculate(ctx, db, account.ID)
	require.NoError(t, err)
	require.True(t, updated.TotalDebit.Equal(decimal.NewFromInt(100)), "total_debit = %s", updated.TotalDebit)
	require.True(t, updated.TotalCredit.Equal(decimal.NewFromInt(40)), "total_credit = %s", updated.TotalCredit)
	require.True(t, updated.Balance.Equal(decimal.NewFromInt(60)), "balance = %s", updated.Balance)
}

func TestPostRejectsNonPositiveAmount(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	account, err := svc.EnsureForContact(ctx, db, node.Generate())
	require.NoError(t, err)

	_, err = svc.Post(ctx, db, accountdomain.PostEntry{
		AccountID:       account.ID,
		Type:            accountdomain.TransactionTypeDebit,
		Amount:          decimal.Zero,
		ReferenceType:   accountdomain.ReferenceTypeSale,
		ReferenceID:     node.Generate(),
		TransactionDate: time.Now().UTC(),
	})
	require.ErrorIs(t, err, accountdomain.ErrInvalidAmount)

	_, err = svc.Post(ctx, db, accountdomain.PostEntry{
		AccountID:       account.ID,
		Type:            accountdomain.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(-5),
		ReferenceType:   accountdomain.ReferenceTypeSale,
		ReferenceID:     node.Generate(),
		TransactionDate: time.Now().UTC(),
	})
	require.ErrorIs(t, err, accountdomain.ErrInvalidAmount)
}

func TestSoftDeleteAndRestoreByReference(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	account, err := svc.EnsureForContact(ctx, db, node.Generate())
	require.NoError(t, err)

	paymentID := node.Generate()
	_, err = svc.Post(ctx, db, accountdomain.PostEntry{
		AccountID:       account.ID,
		Type:            accountdomain.TransactionTypeCredit,
		Amount:          decimal.NewFromInt(250),
		ReferenceType:   accountdomain.ReferenceTypePayment,
		ReferenceID:     paymentID,
		TransactionDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	touched, err := svc.SoftDeleteByReference(ctx, db, accountdomain.ReferenceTypePayment, paymentID)
	require.NoError(t, err)
	require.Equal(t, []snowflake.ID{account.ID}, touched)

	afterDelete, err := svc.Recalculate(ctx, db, account.ID)
	require.NoError(t, err)
	require.True(t, afterDelete.Balance.IsZero(), "balance = %s", afterDelete.Balance)

	touched, err = svc.RestoreByReference(ctx, db, accountdomain.ReferenceTypePayment, paymentID)
	require.NoError(t, err)
	require.Equal(t, []snowflake.ID{account.ID}, touched)

	afterRestore, err := svc.Recalculate(ctx, db, account.ID)
	require.NoError(t, err)
	require.True(t, afterRestore.Balance.Equal(decimal.NewFromInt(-250)), "balance = %s", afterRestore.Balance)
}

func TestStatementRunningBalance(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	contactID := node.Generate()

	account, err := svc.EnsureForContact(ctx, db, contactID)
	require.NoError(t, err)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []accountdomain.PostEntry{
		{
			AccountID:       account.ID,
			Type:            accountdomain.TransactionTypeDebit,
			Amount:          decimal.NewFromInt(500),
			ReferenceType:   accountdomain.ReferenceTypeSale,
			ReferenceID:     node.Generate(),
			TransactionDate: base,
		},
		{
			AccountID:       account.ID,
			Type:            accountdomain.TransactionTypeCredit,
			Amount:          decimal.NewFromInt(200),
			ReferenceType:   accountdomain.ReferenceTypePayment,
			ReferenceID:     node.Generate(),
			TransactionDate: base.Add(24 * time.Hour),
		},
	}
	for _, entry := range entries {
		_, err := svc.Post(ctx, db, entry)
		require.NoError(t, err)
	}

	statement, err := svc.Statement(ctx, db, contactID, nil, nil)
	require.NoError(t, err)
	require.Len(t, statement.Lines, 2)
	require.True(t, statement.Lines[0].RunningBalance.Equal(decimal.NewFromInt(500)))
	require.True(t, statement.Lines[1].RunningBalance.Equal(decimal.NewFromInt(300)))
	require.True(t, statement.TotalDebit.Equal(decimal.NewFromInt(500)))
	require.True(t, statement.TotalCredit.Equal(decimal.NewFromInt(200)))

	from := base.Add(12 * time.Hour)
	bounded, err := svc.Statement(ctx, db, contactID, &from, nil)
	require.NoError(t, err)
	require.Len(t, bounded.Lines, 1)
}
