package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
	paymentdomain "github.com/yemtakip/yemtakip/internal/payment/domain"
	"github.com/yemtakip/yemtakip/internal/providers/pdf"
)

type createPaymentRequest struct {
	ContactID   string `json:"contact_id"`
	CarrierID   string `json:"carrier_id"`
	Direction   string `json:"direction"`
	Method      string `json:"method"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"`
	Note        string `json:"note"`
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), paymentdomain.CreatePaymentRequest{
		ContactID:   req.ContactID,
		CarrierID:   req.CarrierID,
		Direction:   req.Direction,
		Method:      req.Method,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Note:        req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	resp, err := s.paymentSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPayments(c *gin.Context) {
	resp, err := s.paymentSvc.List(c.Request.Context(), paymentdomain.ListPaymentRequest{
		ContactID: c.Query("contact_id"),
		CarrierID: c.Query("carrier_id"),
		Direction: c.Query("direction"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentReceiptPDF(c *gin.Context) {
	rawID := strings.TrimSpace(c.Param("id"))
	payment, err := s.paymentSvc.GetByID(c.Request.Context(), rawID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetName := ""
	switch {
	case payment.ContactID != nil:
		contact, err := s.contactSvc.GetByID(c.Request.Context(), contactdomain.GetContactRequest{
			ID: payment.ContactID.String(),
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		targetName = contact.Name
	case payment.CarrierID != nil:
		carrier, err := s.carrierSvc.FindByID(c.Request.Context(), s.db, *payment.CarrierID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		targetName = carrier.Name
	}

	reader, err := s.pdfProvider.GenerateReceipt(c.Request.Context(), pdf.ReceiptData{
		ReceiptNo:   payment.ID.String(),
		ContactName: targetName,
		Direction:   string(payment.Direction),
		Method:      string(payment.Method),
		Amount:      payment.Amount.StringFixed(2),
		PaymentDate: payment.PaymentDate.Format(dateOnlyLayout),
		Note:        payment.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="makbuz-`+rawID+`.pdf"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

func (s *Server) DeletePayment(c *gin.Context) {
	if err := s.paymentSvc.SoftDelete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
