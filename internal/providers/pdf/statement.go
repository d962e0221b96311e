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

func (p *PDFProvider) GenerateStatement(ctx context.Context, data StatementData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Sayfa {current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(8, "Hesap Ekstresi", props.Text{
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

	period := ""
	if data.From != "" || data.To != "" {
		period = data.From + " / " + data.To
	}
	m.AddRow(15,
		col.New(12).Add(
			text.New("Cari: "+data.ContactName, props.Text{Size: 11, Style: fontstyle.Bold}),
			text.New("Dönem: "+period, props.Text{Size: 9, Top: 6}),
		),
	)

	m.AddRow(8,
		text.NewCol(2, "Tarih", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Açıklama", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Borç", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Alacak", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Bakiye", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range data.Statement.Lines {
		debit, credit := "", ""
		if line.Transaction.Type == "debit" {
			debit = line.Transaction.Amount.StringFixed(2)
		} else {
			credit = line.Transaction.Amount.StringFixed(2)
		}
		m.AddRow(7,
			text.NewCol(2, line.Transaction.TransactionDate.Format("02.01.2006"), props.Text{Size: 8}),
			text.NewCol(4, line.Transaction.Description, props.Text{Size: 8}),
			text.NewCol(2, debit, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, credit, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, line.RunningBalance.StringFixed(2), props.Text{Size: 8, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(6),
		text.NewCol(2, "Toplam Borç", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, data.Statement.TotalDebit.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		col.New(2),
	)
	m.AddRow(10,
		col.New(6),
		text.NewCol(2, "Toplam Alacak", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, data.Statement.TotalCredit.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		col.New(2),
	)
	m.AddRow(10,
		col.New(6),
		text.NewCol(2, "Bakiye", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, data.Statement.Account.Balance.StringFixed(2), props.Text{
			Size: 10, Style: fontstyle.Bold, Align: align.Right,
		}),
		col.New(2),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
