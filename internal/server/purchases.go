package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	purchasedomain "github.com/yemtakip/yemtakip/internal/purchase/domain"
)

type createPurchaseRequest struct {
	ContactID    string `json:"contact_id"`
	Product      string `json:"product"`
	Quantity     string `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	PricingModel string `json:"pricing_model"`
	Note         string `json:"note"`
}

type updatePurchaseRequest struct {
	Product   *string `json:"product"`
	Quantity  *string `json:"quantity"`
	UnitPrice *string `json:"unit_price"`
	Note      *string `json:"note"`
}

func (s *Server) CreatePurchase(c *gin.Context) {
	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.purchaseSvc.Create(c.Request.Context(), purchasedomain.CreatePurchaseRequest{
		ContactID:    req.ContactID,
		Product:      req.Product,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		PricingModel: req.PricingModel,
		Note:         req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePurchase(c *gin.Context) {
	var req updatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.purchaseSvc.Update(c.Request.Context(), purchasedomain.UpdatePurchaseRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		Product:   req.Product,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Note:      req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPurchaseByID(c *gin.Context) {
	resp, err := s.purchaseSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPurchases(c *gin.Context) {
	resp, err := s.purchaseSvc.List(c.Request.Context(), purchasedomain.ListPurchaseRequest{
		ContactID: c.Query("contact_id"),
		Status:    c.Query("status"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePurchaseStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.purchaseSvc.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelPurchase(c *gin.Context) {
	resp, err := s.purchaseSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePurchase(c *gin.Context) {
	if err := s.purchaseSvc.SoftDelete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
