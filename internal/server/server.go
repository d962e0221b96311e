package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	accountdomain "github.com/yemtakip/yemtakip/internal/account/domain"
	annotationdomain "github.com/yemtakip/yemtakip/internal/annotation/domain"
	auditdomain "github.com/yemtakip/yemtakip/internal/audit/domain"
	carrierdomain "github.com/yemtakip/yemtakip/internal/carrier/domain"
	checkdomain "github.com/yemtakip/yemtakip/internal/check/domain"
	"github.com/yemtakip/yemtakip/internal/config"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	deliverydomain "github.com/yemtakip/yemtakip/internal/delivery/domain"
	exportdomain "github.com/yemtakip/yemtakip/internal/export/domain"
	paymentdomain "github.com/yemtakip/yemtakip/internal/payment/domain"
	"github.com/yemtakip/yemtakip/internal/providers/pdf"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
	reportdomain "github.com/yemtakip/yemtakip/internal/report/domain"
	saledomain "github.com/yemtakip/yemtakip/internal/sale/domain"
	trashdomain "github.com/yemtakip/yemtakip/internal/trash/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestContextMiddleware())
	r.Use(LoggingMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	contactSvc    contactdomain.Service
	accountSvc    accountdomain.Service
	carrierSvc    carrierdomain.Service
	saleSvc       saledomain.Service
	purchaseSvc   purchasedomain.Service
	deliverySvc   deliverydomain.Service
	paymentSvc    paymentdomain.Service
	checkSvc      checkdomain.Service
	trashSvc      trashdomain.Service
	auditSvc      auditdomain.Service
	annotationSvc annotationdomain.Service
	reportSvc     reportdomain.Service
	exportSvc     exportdomain.Service
	pdfProvider   pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	ContactSvc    contactdomain.Service
	AccountSvc    accountdomain.Service
	CarrierSvc    carrierdomain.Service
	SaleSvc       saledomain.Service
	PurchaseSvc   purchasedomain.Service
	DeliverySvc   deliverydomain.Service
	PaymentSvc    paymentdomain.Service
	CheckSvc      checkdomain.Service
	TrashSvc      trashdomain.Service
	AuditSvc      auditdomain.Service
	AnnotationSvc annotationdomain.Service
	ReportSvc     reportdomain.Service
	ExportSvc     exportdomain.Service
	PDFProvider   pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		contactSvc:    p.ContactSvc,
		accountSvc:    p.AccountSvc,
		carrierSvc:    p.CarrierSvc,
		saleSvc:       p.SaleSvc,
		purchaseSvc:   p.PurchaseSvc,
		deliverySvc:   p.DeliverySvc,
		paymentSvc:    p.PaymentSvc,
		checkSvc:      p.CheckSvc,
		trashSvc:      p.TrashSvc,
		auditSvc:      p.AuditSvc,
		annotationSvc: p.AnnotationSvc,
		reportSvc:     p.ReportSvc,
		exportSvc:     p.ExportSvc,
		pdfProvider:   p.PDFProvider,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Contacts --------
	api.GET("/contacts", s.ListContacts)
	api.POST("/contacts", s.CreateContact)
	api.GET("/contacts/:id", s.GetContactByID)
	api.PATCH("/contacts/:id", s.UpdateContact)
	api.DELETE("/contacts/:id", s.DeleteContact)
	api.GET("/contacts/:id/account", s.GetContactAccount)
	api.GET("/contacts/:id/statement", s.GetContactStatement)
	api.GET("/contacts/:id/statement.pdf", s.GetContactStatementPDF)

	// -------- Carriers --------
	api.GET("/carriers", s.ListCarriers)
	api.GET("/carriers/:id", s.GetCarrierByID)
	api.GET("/carriers/:id/transactions", s.ListCarrierTransactions)

	// -------- Sales --------
	api.GET("/sales", s.ListSales)
	api.POST("/sales", s.CreateSale)
	api.GET("/sales/:id", s.GetSaleByID)
	api.PATCH("/sales/:id", s.UpdateSale)
	api.POST("/sales/:id/status", s.UpdateSaleStatus)
	api.POST("/sales/:id/cancel", s.CancelSale)
	api.POST("/sales/:id/reassign", s.ReassignSale)
	api.DELETE("/sales/:id", s.DeleteSale)

	// -------- Purchases --------
	api.GET("/purchases", s.ListPurchases)
	api.POST("/purchases", s.CreatePurchase)
	api.GET("/purchases/:id", s.GetPurchaseByID)
	api.PATCH("/purchases/:id", s.UpdatePurchase)
	api.POST("/purchases/:id/status", s.UpdatePurchaseStatus)
	api.POST("/purchases/:id/cancel", s.CancelPurchase)
	api.DELETE("/purchases/:id", s.DeletePurchase)

	// -------- Deliveries --------
	api.GET("/deliveries", s.ListDeliveries)
	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries/:id", s.GetDeliveryByID)
	api.POST("/deliveries/:id/return", s.ReturnDelivery)
	api.DELETE("/deliveries/:id", s.DeleteDelivery)

	// -------- Payments --------
	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/:id", s.GetPaymentByID)
	api.GET("/payments/:id/receipt.pdf", s.GetPaymentReceiptPDF)
	api.DELETE("/payments/:id", s.DeletePayment)

	// -------- Checks --------
	api.GET("/checks", s.ListChecks)
	api.POST("/checks", s.CreateCheck)
	api.GET("/checks/:id", s.GetCheckByID)
	api.POST("/checks/:id/status", s.UpdateCheckStatus)
	api.POST("/checks/:id/endorse", s.EndorseCheck)
	api.DELETE("/checks/:id", s.DeleteCheck)

	// -------- Trash --------
	api.GET("/trash", s.ListTrash)
	api.POST("/trash/:table/:id/restore", s.RestoreFromTrash)
	api.DELETE("/trash/:table/:id", s.PermanentDeleteFromTrash)

	// -------- Audit --------
	api.GET("/audit-logs", s.ListAuditLogs)

	// -------- Annotations --------
	api.GET("/annotations/:entity_type/:entity_id", s.ListAnnotations)
	api.PUT("/annotations/:entity_type/:entity_id/:key", s.SetAnnotation)
	api.DELETE("/annotations/:entity_type/:entity_id/:key", s.DeleteAnnotation)

	// -------- Reports / Export --------
	api.GET("/reports/profit-loss", s.GetProfitLoss)
	api.GET("/reports/profit-loss.pdf", s.GetProfitLossPDF)
	api.GET("/export/excel", s.ExportExcel)
	api.GET("/export/csv/:table", s.ExportCSV)
}
