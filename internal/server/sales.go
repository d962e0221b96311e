package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	saledomain "github.com/yemtakip/yemtakip/internal/sale/domain"
)

type createSaleRequest struct {
	ContactID string `json:"contact_id"`
	Product   string `json:"product"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Note      string `json:"note"`
}

type updateSaleRequest struct {
	Product   *string `json:"product"`
	Quantity  *string `json:"quantity"`
	UnitPrice *string `json:"unit_price"`
	Note      *string `json:"note"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type reassignSaleRequest struct {
	ContactID string  `json:"contact_id"`
	UnitPrice *string `json:"unit_price"`
}

func (s *Server) CreateSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.Create(c.Request.Context(), saledomain.CreateSaleRequest{
		ContactID: req.ContactID,
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

func (s *Server) UpdateSale(c *gin.Context) {
	var req updateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.Update(c.Request.Context(), saledomain.UpdateSaleRequest{
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

func (s *Server) GetSaleByID(c *gin.Context) {
	resp, err := s.saleSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSales(c *gin.Context) {
	resp, err := s.saleSvc.List(c.Request.Context(), saledomain.ListSaleRequest{
		ContactID: c.Query("contact_id"),
		Status:    c.Query("status"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSaleStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelSale(c *gin.Context) {
	resp, err := s.saleSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReassignSale(c *gin.Context) {
	var req reassignSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.Reassign(c.Request.Context(), saledomain.ReassignSaleRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		NewContactID: req.ContactID,
		NewUnitPrice: req.UnitPrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSale(c *gin.Context) {
	if err := s.saleSvc.SoftDelete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
