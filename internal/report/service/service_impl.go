package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	deliverydomain "github.com/yemtakip/yemtakip/internal/delivery/domain"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	"github.com/yemtakip/yemtakip/internal/report/domain"
	saledomain "github.com/yemtakip/yemtakip/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	AccountSvc accountdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	accountSvc accountdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("report.service"),
		accountSvc: p.AccountSvc,
	}
}

func (s *Service) Statement(ctx context.Context, rawContactID string, rawFrom, rawTo string) (accountdomain.Statement, error) {
	contactID, err := snowflake.ParseString(strings.TrimSpace(rawContactID))
	if err != nil || contactID == 0 {
		return accountdomain.Statement{}, domain.ErrInvalidContact
	}

	var from, to *time.Time
	if raw := strings.TrimSpace(rawFrom); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return accountdomain.Statement{}, domain.ErrInvalidDate
		}
		parsed = parsed.UTC()
		from = &parsed
	}
	if raw := strings.TrimSpace(rawTo); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return accountdomain.Statement{}, domain.ErrInvalidDate
		}
		parsed = parsed.UTC()
		to = &parsed
	}

	return s.accountSvc.Statement(ctx, s.db, contactID, from, to)
}

// ProfitLoss recomputes each delivery's customer and supplier amounts
// from the order prices rather than reading the ledger, so cancelled or
// soft-deleted postings can never skew the report.
func (s *Service) ProfitLoss(ctx context.Context, rawFrom, rawTo string) (domain.ProfitLossReport, error) {
	from, err := time.Parse("2006-01-02", strings.TrimSpace(rawFrom))
	if err != nil {
		return domain.ProfitLossReport{}, domain.ErrInvalidDate
	}
	to, err := time.Parse("2006-01-02", strings.TrimSpace(rawTo))
	if err != nil {
		return domain.ProfitLossReport{}, domain.ErrInvalidDate
	}
	from = from.UTC()
	to = to.UTC()

	var deliveries []deliverydomain.Delivery
	err = s.db.WithContext(ctx).
		Where("deleted_at IS NULL AND delivery_date >= ? AND delivery_date <= ?", from, to).
		Order("delivery_date asc").
		Find(&deliveries).Error
	if err != nil {
		return domain.ProfitLossReport{}, err
	}

	report := domain.ProfitLossReport{
		From:         from,
		To:           to,
		Revenue:      decimal.Zero,
		Cost:         decimal.Zero,
		FreightBorne: decimal.Zero,
		Profit:       decimal.Zero,
	}

	for _, delivery := range deliveries {
		customerPrice := decimal.Zero
		supplierPrice := decimal.Zero
		pricingModel := purchasedomain.PricingModelFreightExcluded

		if delivery.SaleID != nil {
			var sale saledomain.Sale
			err := s.db.WithContext(ctx).
				Where("id = ?", *delivery.SaleID).
				Limit(1).
				Find(&sale).Error
			if err != nil {
				return domain.ProfitLossReport{}, err
			}
			if sale.ID != 0 && sale.Status != purchasedomain.OrderStatusCancelled {
				customerPrice = sale.UnitPrice
			}
		}
		if delivery.PurchaseID != nil {
			var purchase purchasedomain.Purchase
			err := s.db.WithContext(ctx).
				Where("id = ?", *delivery.PurchaseID).
				Limit(1).
				Find(&purchase).Error
			if err != nil {
				return domain.ProfitLossReport{}, err
			}
			if purchase.ID != 0 && purchase.Status != purchasedomain.OrderStatusCancelled {
				supplierPrice = purchase.UnitPrice
				pricingModel = purchase.PricingModel
			}
		}

		amounts := deliverydomain.ComputeAmounts(
			delivery.NetWeight, customerPrice, supplierPrice,
			delivery.FreightCost, delivery.FreightPayer, pricingModel)

		report.Revenue = report.Revenue.Add(amounts.Customer)
		report.Cost = report.Cost.Add(amounts.Supplier)
		if delivery.FreightPayer == deliverydomain.FreightPayerMe {
			report.FreightBorne = report.FreightBorne.Add(delivery.FreightCost)
		}
		report.DeliveryCount++
	}

	report.Profit = report.Revenue.Sub(report.Cost).Sub(report.FreightBorne)
	return report, nil
}
