package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	annotationdomain "github.com/yemtakip/yemtakip/internal/annotation/domain"
	auditdomain "github.com/yemtakip/yemtakip/internal/audit/domain"
	carrierdomain "github.com/yemtakip/yemtakip/internal/carrier/domain"
	checkdomain "github.com/yemtakip/yemtakip/internal/check/domain"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	deliverydomain "github.com/yemtakip/yemtakip/internal/delivery/domain"
	paymentdomain "github.com/yemtakip/yemtakip/internal/payment/domain"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	saledomain "github.com/yemtakip/yemtakip/internal/sale/domain"
	"gorm.io/gorm"
)

// RunMigrations applies the embedded SQL migrations against postgres so
// a fresh database is fully usable on startup.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the schema from the gorm models. The embedded SQL
// is postgres-only; mysql and sqlite installs go through here instead.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&contactdomain.Contact{},
		&accountdomain.Account{},
		&accountdomain.AccountTransaction{},
		&carrierdomain.Carrier{},
		&carrierdomain.CarrierTransaction{},
		&carrierdomain.Vehicle{},
		&saledomain.Sale{},
		&purchasedomain.Purchase{},
		&deliverydomain.Delivery{},
		&paymentdomain.Payment{},
		&checkdomain.Check{},
		&auditdomain.AuditEntry{},
		&annotationdomain.Annotation{},
	)
}
