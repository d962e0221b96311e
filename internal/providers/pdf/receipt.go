package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

func (p *PDFProvider) GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error) {
	title := "Tediye Makbuzu"
	if data.Direction == "inbound" {
		title = "Tahsilat Makbuzu"
	}

	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(20,
		text.NewCol(8, title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		col.New(4).Add(
			text.New(p.company.Name, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
			text.New(p.company.Address, props.Text{Size: 8, Top: 5, Align: align.Right}),
			text.New(p.company.Phone, props.Text{Size: 8, Top: 9, Align: align.Right}),
		),
	)

	m.AddRow(30,
		col.New(12).Add(
			text.New("Makbuz No: "+data.ReceiptNo, props.Text{Size: 10}),
			text.New("Tarih: "+data.PaymentDate, props.Text{Size: 10, Top: 6}),
			text.New("Cari: "+data.ContactName, props.Text{Size: 10, Top: 12}),
			text.New("Ödeme şekli: "+data.Method, props.Text{Size: 10, Top: 18}),
		),
	)

	m.AddRow(15,
		text.NewCol(12, "Tutar: "+data.Amount+" TL", props.Text{
			Size:  14,
			Style: fontstyle.Bold,
		}),
	)

	if data.Note != "" {
		m.AddRow(15,
			text.NewCol(12, "Açıklama: "+data.Note, props.Text{Size: 9}),
		)
	}

	// Signature lines
	m.AddRow(30,
		col.New(2),
		text.NewCol(3, "Teslim Eden", props.Text{Size: 9, Top: 20, Align: align.Center}),
		col.New(2),
		text.NewCol(3, "Teslim Alan", props.Text{Size: 9, Top: 20, Align: align.Center}),
		col.New(2),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
