package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yemtakip/yemtakip/internal/providers/pdf"
	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/yemtakip/yemtakip/internal/contact/domain"
)

type createContactRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Phone       string  `json:"phone"`
	TaxNumber   string  `json:"tax_number"`
	Address     string  `json:"address"`
	CreditLimit *string `json:"credit_limit"`
}

type updateContactRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	TaxNumber   *string `json:"tax_number"`
	Address     *string `json:"address"`
	CreditLimit *string `json:"credit_limit"`
}

func (s *Server) CreateContact(c *gin.Context) {
	var req createContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	creditLimit, err := parseOptionalDecimal(req.CreditLimit)
	if err != nil {
		AbortWithError(c, newValidationError("credit_limit", "invalid_credit_limit", "invalid credit_limit"))
		return
	}

	resp, err := s.contactSvc.Create(c.Request.Context(), contactdomain.CreateContactRequest{
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Phone:       strings.TrimSpace(req.Phone),
		TaxNumber:   strings.TrimSpace(req.TaxNumber),
		Address:     strings.TrimSpace(req.Address),
		CreditLimit: creditLimit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateContact(c *gin.Context) {
	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	creditLimit, err := parseOptionalDecimal(req.CreditLimit)
	if err != nil {
		AbortWithError(c, newValidationError("credit_limit", "invalid_credit_limit", "invalid credit_limit"))
		return
	}

	resp, err := s.contactSvc.Update(c.Request.Context(), contactdomain.UpdateContactRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Name:        req.Name,
		Phone:       req.Phone,
		TaxNumber:   req.TaxNumber,
		Address:     req.Address,
		CreditLimit: creditLimit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetContactByID(c *gin.Context) {
	resp, err := s.contactSvc.GetByID(c.Request.Context(), contactdomain.GetContactRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListContacts(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
		Name      string `form:"name"`
		Type      string `form:"type"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.contactSvc.List(c.Request.Context(), contactdomain.ListContactRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Name:      strings.TrimSpace(query.Name),
		Type:      strings.TrimSpace(query.Type),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteContact(c *gin.Context) {
	if err := s.contactSvc.SoftDelete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GetContactAccount(c *gin.Context) {
	contactID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || contactID == 0 {
		AbortWithError(c, contactdomain.ErrInvalidID)
		return
	}

	account, err := s.accountSvc.FindByContact(c.Request.Context(), s.db, contactID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if account == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	contact, err := s.contactSvc.GetByID(c.Request.Context(), contactdomain.GetContactRequest{ID: contactID.String()})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	overLimit := false
	if contact.CreditLimit != nil && account.Balance.GreaterThan(*contact.CreditLimit) {
		overLimit = true
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"account":      account,
		"credit_limit": contact.CreditLimit,
		"over_limit":   overLimit,
	}})
}

func (s *Server) GetContactStatement(c *gin.Context) {
	statement, err := s.reportSvc.Statement(c.Request.Context(),
		strings.TrimSpace(c.Param("id")), c.Query("from"), c.Query("to"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": statement})
}

func (s *Server) GetContactStatementPDF(c *gin.Context) {
	rawID := strings.TrimSpace(c.Param("id"))
	statement, err := s.reportSvc.Statement(c.Request.Context(), rawID, c.Query("from"), c.Query("to"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	contact, err := s.contactSvc.GetByID(c.Request.Context(), contactdomain.GetContactRequest{ID: rawID})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reader, err := s.pdfProvider.GenerateStatement(c.Request.Context(), pdf.StatementData{
		ContactName: contact.Name,
		Statement:   statement,
		From:        c.Query("from"),
		To:          c.Query("to"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ekstre-`+rawID+`.pdf"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

func parseOptionalDecimal(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
