package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"

	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	checkdomain "github.com/yemtakip/yemtakip/internal/check/domain"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	deliverydomain "github.com/yemtakip/yemtakip/internal/delivery/domain"
	"github.com/yemtakip/yemtakip/internal/export/domain"
	paymentdomain "github.com/yemtakip/yemtakip/internal/payment/domain"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	saledomain "github.com/yemtakip/yemtakip/internal/sale/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(p Params) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("export.service"),
	}
}

// table describes one exportable dataset as a header row plus a loader
// that renders every row as strings.
type table struct {
	sheet  string
	header []string
	load   func(ctx context.Context, db *gorm.DB) ([][]string, error)
}

func exportTables() map[string]table {
	return map[string]table{
		"contacts": {
			sheet:  "Cariler",
			header: []string{"id", "name", "type", "phone", "tax_number", "address", "created_at"},
			load: func(ctx context.Context, db *gorm.DB) ([][]string, error) {
				var items []contactdomain.Contact
				if err := db.WithContext(ctx).Where("deleted_at IS NULL").Order("id").Find(&items).Error; err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(items))
				for _, c := range items {
					rows = append(rows, []string{
						c.ID.String(), c.Name, string(c.Type), c.Phone, c.TaxNumber, c.Address,
						c.CreatedAt.Format("2006-01-02 15:04:05"),
					})
				}
				return rows, nil
			},
		},
		"sales": {
			sheet:  "Satislar",
			header: []string{"id", "contact_id", "product", "quantity", "unit_price", "status", "total_amount"},
			load: func(ctx context.Context, db *gorm.DB) ([][]string, error) {
				var items []saledomain.Sale
				if err := db.WithContext(ctx).Where("deleted_at IS NULL").Order("id").Find(&items).Error; err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(items))
				for _, s := range items {
					rows = append(rows, []string{
						s.ID.String(), s.ContactID.String(), s.Product, s.Quantity.String(),
						s.UnitPrice.String(), string(s.Status), s.TotalAmount.String(),
					})
				}
				return rows, nil
			},
		},
		"purchases": {
			sheet:  "Alislar",
			header: []string{"id", "contact_id", "product", "quantity", "unit_price", "pricing_model", "status", "total_amount"},
			load: func(ctx context.Context, db *gorm.DB) ([][]string, error) {
				var items []purchasedomain.Purchase
				if err := db.WithContext(ctx).Where("deleted_at IS NULL").Order("id").Find(&items).Error; err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(items))
				for _, p := range items {
					rows = append(rows, []string{
						p.ID.String(), p.ContactID.String(), p.Product, p.Quantity.String(),
						p.UnitPrice.String(), string(p.PricingModel), string(p.Status), p.TotalAmount.String(),
					})
				}
				return rows, nil
			},
		},
		"deliveries": {
			sheet:  "Teslimatlar",
			header: []string{"id", "sale_id", "purchase_id", "ticket_no", "delivery_date", "net_weight", "freight_cost", "freight_payer", "vehicle_plate", "driver_name"},
			load: func(ctx context.Context, db *gorm.DB) ([][]string, error) {
				var items []deliverydomain.Delivery
				if err := db.WithContext(ctx).Where("deleted_at IS NULL").Order("id").Find(&items).Error; err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(items))
				for _, d := range items {
					saleID, purchaseID := "", ""
					if d.SaleID != nil {
						saleID = d.SaleID.String()
					}
					if d.PurchaseID != nil {
						purchaseID = d.PurchaseID.String()
					}
					rows = append(rows, []string{
						d.ID.String(), saleID, purchaseID, d.TicketNo,
						d.DeliveryDate.Format("2006-01-02"), d.NetWeight.String(),
						d.FreightCost.String(), string(d.FreightPayer), d.VehiclePlate, d.DriverName,
					})
				}
				return rows, nil
			},
		},
		"payments": {
			sheet:  "Odemeler",
			header: []string{"id", "contact_id", "carrier_id", "direction", "method", "amount", "payment_date", "note"},
			load: func(ctx context.Context, db *gorm.DB) ([][]string, error) {
				var items []paymentdomain.Payment
				if err := db.WithContext(ctx).Where("deleted_at IS NULL").Order("id").Find(&items).Error; err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(items))
				for _, p := range items {
					contactID, carrierID := "", ""
					if p.ContactID != nil {
						contactID = p.ContactID.String()
					}
					if p.CarrierID != nil {
						carrierID = p.CarrierID.String()
					}
					rows = append(rows, []string{
						p.ID.String(), contactID, carrierID, string(p.Direction), string(p.Method),
						p.Amount.String(), p.PaymentDate.Format("2006-01-02"), p.Note,
					})
				}
				return rows, nil
			},
		},
		"checks": {
			sheet:  "Cekler",
			header: []string{"id", "contact_id", "kind", "direction", "check_no", "bank_name", "amount", "due_date", "status"},
			load: func(ctx context.Context, db *gorm.DB) ([][]string, error) {
				var items []checkdomain.Check
				if err := db.WithContext(ctx).Where("deleted_at IS NULL").Order("id").Find(&items).Error; err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(items))
				for _, c := range items {
					rows = append(rows, []string{
						c.ID.String(), c.ContactID.String(), string(c.Kind), string(c.Direction),
						c.CheckNo, c.BankName, c.Amount.String(),
						c.DueDate.Format("2006-01-02"), string(c.Status),
					})
				}
				return rows, nil
			},
		},
		"transactions": {
			sheet:  "Hareketler",
			header: []string{"id", "account_id", "type", "amount", "description", "reference_type", "reference_id", "transaction_date"},
			load: func(ctx context.Context, db *gorm.DB) ([][]string, error) {
				var items []accountdomain.AccountTransaction
				if err := db.WithContext(ctx).Where("deleted_at IS NULL").Order("id").Find(&items).Error; err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(items))
				for _, t := range items {
					rows = append(rows, []string{
						t.ID.String(), t.AccountID.String(), string(t.Type), t.Amount.String(),
						t.Description, string(t.ReferenceType), t.ReferenceID.String(),
						t.TransactionDate.Format("2006-01-02"),
					})
				}
				return rows, nil
			},
		},
	}
}

// exportOrder fixes the sheet order in the workbook.
var exportOrder = []string{"contacts", "sales", "purchases", "deliveries", "payments", "checks", "transactions"}

func (s *Service) ExportExcel(ctx context.Context) (io.Reader, error) {
	f := excelize.NewFile()
	defer f.Close()

	tables := exportTables()
	for i, name := range exportOrder {
		t := tables[name]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.sheet); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(t.sheet); err != nil {
				return nil, err
			}
		}

		for colIdx, head := range t.header {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(t.sheet, cell, head); err != nil {
				return nil, err
			}
		}

		rows, err := t.load(ctx, s.db)
		if err != nil {
			return nil, err
		}
		for rowIdx, row := range rows {
			for colIdx, value := range row {
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(t.sheet, cell, value); err != nil {
					return nil, err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *Service) ExportCSV(ctx context.Context, name string) (io.Reader, error) {
	t, ok := exportTables()[name]
	if !ok {
		return nil, domain.ErrUnknownTable
	}

	rows, err := t.load(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &buf, nil
}
