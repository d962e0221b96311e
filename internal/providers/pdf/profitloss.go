package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	reportdomain "github.com/yemtakip/yemtakip/internal/report/domain"
)

func (p *PDFProvider) GenerateProfitLoss(ctx context.Context, report reportdomain.ProfitLossReport) (io.Reader, error) {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(20,
		text.NewCol(8, "Kar / Zarar Raporu", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		col.New(4).Add(
			text.New(p.company.Name, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
			text.New(p.company.Address, props.Text{Size: 8, Top: 5, Align: align.Right}),
		),
	)

	m.AddRow(12,
		text.NewCol(12, fmt.Sprintf("Dönem: %s / %s",
			report.From.Format("02.01.2006"), report.To.Format("02.01.2006")),
			props.Text{Size: 10}),
	)

	rows := []struct {
		label string
		value string
	}{
		{"Satış Geliri", report.Revenue.StringFixed(2)},
		{"Alış Maliyeti", report.Cost.StringFixed(2)},
		{"Nakliye Gideri", report.FreightBorne.StringFixed(2)},
		{"Teslimat Sayısı", fmt.Sprintf("%d", report.DeliveryCount)},
	}
	for _, row := range rows {
		m.AddRow(9,
			text.NewCol(6, row.label, props.Text{Size: 10}),
			text.NewCol(6, row.value, props.Text{Size: 10, Align: align.Right}),
		)
	}

	m.AddRow(12,
		text.NewCol(6, "Net Kar / Zarar", props.Text{Size: 12, Style: fontstyle.Bold}),
		text.NewCol(6, report.Profit.StringFixed(2), props.Text{
			Size: 12, Style: fontstyle.Bold, Align: align.Right,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
