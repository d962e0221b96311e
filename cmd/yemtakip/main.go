package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/yemtakip/yemtakip/internal/account"
	"github.com/yemtakip/yemtakip/internal/annotation"
	"github.com/yemtakip/yemtakip/internal/audit"
	"github.com/yemtakip/yemtakip/internal/carrier"
	"github.com/yemtakip/yemtakip/internal/check"
	"github.com/yemtakip/yemtakip/internal/config"
	"github.com/yemtakip/yemtakip/internal/contact"
	"github.com/yemtakip/yemtakip/internal/delivery"
	"github.com/yemtakip/yemtakip/internal/export"
	"github.com/yemtakip/yemtakip/internal/logger"
	"github.com/yemtakip/yemtakip/internal/metrics"
	"github.com/yemtakip/yemtakip/internal/migration"
	"github.com/yemtakip/yemtakip/internal/payment"
	"github.com/yemtakip/yemtakip/internal/providers/pdf"
	"github.com/yemtakip/yemtakip/internal/purchase"
	"github.com/yemtakip/yemtakip/internal/report"
	"github.com/yemtakip/yemtakip/internal/sale"
	"github.com/yemtakip/yemtakip/internal/server"
	"github.com/yemtakip/yemtakip/internal/trash"
	"github.com/yemtakip/yemtakip/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Infrastructure
		config.Module,
		logger.Module,
		metrics.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		migration.Module,

		// Domains
		audit.Module,
		account.Module,
		contact.Module,
		carrier.Module,
		sale.Module,
		purchase.Module,
		delivery.Module,
		payment.Module,
		check.Module,
		trash.Module,
		annotation.Module,
		report.Module,
		export.Module,
		pdf.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
