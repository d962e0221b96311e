package service

import (
	"context"
	"time"

	checkdomain "github.com/yemtakip/yemtakip/internal/check/domain"
	"github.com/yemtakip/yemtakip/internal/config"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	deliverydomain "github.com/yemtakip/yemtakip/internal/delivery/domain"
	"github.com/yemtakip/yemtakip/internal/metrics"
	paymentdomain "github.com/yemtakip/yemtakip/internal/payment/domain"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	saledomain "github.com/yemtakip/yemtakip/internal/sale/domain"
	"github.com/yemtakip/yemtakip/internal/trash/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Config      config.Config
	ContactSvc  contactdomain.Service
	SaleSvc     saledomain.Service
	PurchaseSvc purchasedomain.Service
	DeliverySvc deliverydomain.Service
	PaymentSvc  paymentdomain.Service
	CheckSvc    checkdomain.Service
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	retention time.Duration
	contacts  contactdomain.Service
	sales     saledomain.Service
	purchases purchasedomain.Service
	delivered deliverydomain.Service
	payments  paymentdomain.Service
	checks    checkdomain.Service
	metrics   *metrics.Metrics
}

func NewService(p Params) domain.Service {
	days := p.Config.TrashRetentionDays
	if days <= 0 {
		days = 30
	}
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("trash.service"),
		retention: time.Duration(days) * 24 * time.Hour,
		contacts:  p.ContactSvc,
		sales:     p.SaleSvc,
		purchases: p.PurchaseSvc,
		delivered: p.DeliverySvc,
		payments:  p.PaymentSvc,
		checks:    p.CheckSvc,
		metrics:   p.Metrics,
	}
}

// trashTables lists every soft-deletable table with the column used as
// the human-readable label in the trash listing.
var trashTables = []struct {
	name  string
	label string
}{
	{"contacts", "name"},
	{"sales", "product"},
	{"purchases", "product"},
	{"deliveries", "ticket_no"},
	{"payments", "note"},
	{"checks", "check_no"},
}

func (s *Service) List(ctx context.Context) ([]domain.TrashItem, error) {
	cutoff := time.Now().UTC().Add(-s.retention)

	items := make([]domain.TrashItem, 0)
	for _, table := range trashTables {
		var rows []domain.TrashItem
		err := s.db.WithContext(ctx).
			Table(table.name).
			Select("? AS table_name, id AS record_id, "+table.label+" AS label, deleted_at", table.name).
			Where("deleted_at IS NOT NULL AND deleted_at >= ?", cutoff).
			Order("deleted_at desc").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		items = append(items, rows...)
	}
	return items, nil
}

func (s *Service) Restore(ctx context.Context, tableName, id string) error {
	switch tableName {
	case "contacts":
		return s.contacts.Restore(ctx, id)
	case "sales":
		return s.sales.Restore(ctx, id)
	case "purchases":
		return s.purchases.Restore(ctx, id)
	case "deliveries":
		return s.delivered.Restore(ctx, id)
	case "payments":
		return s.payments.Restore(ctx, id)
	case "checks":
		return s.checks.Restore(ctx, id)
	default:
		return domain.ErrUnknownTable
	}
}

func (s *Service) PermanentDelete(ctx context.Context, tableName, id string) error {
	switch tableName {
	case "contacts":
		return s.contacts.PermanentDelete(ctx, id)
	case "sales":
		return s.sales.PermanentDelete(ctx, id)
	case "purchases":
		return s.purchases.PermanentDelete(ctx, id)
	case "deliveries":
		return s.delivered.PermanentDelete(ctx, id)
	case "payments":
		return s.payments.PermanentDelete(ctx, id)
	case "checks":
		return s.checks.PermanentDelete(ctx, id)
	default:
		return domain.ErrUnknownTable
	}
}

// Purge walks every trash table and permanently deletes the records
// whose soft delete fell out of the retention window. Each record goes
// through its owning service so ledger rows are cleaned up with it.
func (s *Service) Purge(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.retention)

	purged := 0
	for _, table := range trashTables {
		var ids []string
		err := s.db.WithContext(ctx).
			Table(table.name).
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Pluck("id", &ids).Error
		if err != nil {
			return purged, err
		}
		for _, id := range ids {
			if err := s.PermanentDelete(ctx, table.name, id); err != nil {
				s.log.Warn("purge failed",
					zap.String("table", table.name),
					zap.String("id", id),
					zap.Error(err))
				continue
			}
			purged++
		}
	}

	if purged > 0 {
		s.log.Info("trash purged", zap.Int("records", purged))
	}
	return purged, nil
}
