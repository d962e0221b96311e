package pdf

import (
	"context"
	"io"

	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	"github.com/yemtakip/yemtakip/internal/config"
	reportdomain "github.com/yemtakip/yemtakip/internal/report/domain"
	"go.uber.org/fx"
)

// CompanyInfo is printed in the title block of every document.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
}

// StatementData feeds the account statement PDF.
type StatementData struct {
	ContactName string
	Statement   accountdomain.Statement
	From        string
	To          string
}

// ReceiptData feeds the payment receipt PDF.
type ReceiptData struct {
	ReceiptNo   string
	ContactName string
	Direction   string
	Method      string
	Amount      string
	PaymentDate string
	Note        string
}

type Provider interface {
	GenerateStatement(ctx context.Context, data StatementData) (io.Reader, error)
	GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error)
	GenerateProfitLoss(ctx context.Context, report reportdomain.ProfitLossReport) (io.Reader, error)
}

type PDFProvider struct {
	company CompanyInfo
}

func NewProvider(cfg config.Config) Provider {
	return &PDFProvider{
		company: CompanyInfo{
			Name:    cfg.CompanyName,
			Address: cfg.CompanyAddress,
			Phone:   cfg.CompanyPhone,
		},
	}
}

var Module = fx.Module("providers.pdf",
	fx.Provide(NewProvider),
)
