package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	deliverydomain "github.com/yemtakip/yemtakip/internal/delivery/domain"
)

type createDeliveryRequest struct {
	SaleID       string `json:"sale_id"`
	PurchaseID   string `json:"purchase_id"`
	TicketNo     string `json:"ticket_no"`
	DeliveryDate string `json:"delivery_date"`
	GrossWeight  string `json:"gross_weight"`
	TareWeight   string `json:"tare_weight"`
	NetWeight    string `json:"net_weight"`
	FreightCost  string `json:"freight_cost"`
	FreightPayer string `json:"freight_payer"`
	VehiclePlate string `json:"vehicle_plate"`
	CarrierName  string `json:"carrier_name"`
	DriverName   string `json:"driver_name"`
}

type returnDeliveryRequest struct {
	ReturnedKg string `json:"returned_kg"`
	Reason     string `json:"reason"`
}

func (s *Server) CreateDelivery(c *gin.Context) {
	var req createDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.deliverySvc.Create(c.Request.Context(), deliverydomain.CreateDeliveryRequest{
		SaleID:       req.SaleID,
		PurchaseID:   req.PurchaseID,
		TicketNo:     req.TicketNo,
		DeliveryDate: req.DeliveryDate,
		GrossWeight:  req.GrossWeight,
		TareWeight:   req.TareWeight,
		NetWeight:    req.NetWeight,
		FreightCost:  req.FreightCost,
		FreightPayer: req.FreightPayer,
		VehiclePlate: req.VehiclePlate,
		CarrierName:  req.CarrierName,
		DriverName:   req.DriverName,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDeliveryByID(c *gin.Context) {
	resp, err := s.deliverySvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDeliveries(c *gin.Context) {
	resp, err := s.deliverySvc.List(c.Request.Context(), deliverydomain.ListDeliveryRequest{
		SaleID:     c.Query("sale_id"),
		PurchaseID: c.Query("purchase_id"),
		From:       c.Query("from"),
		To:         c.Query("to"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReturnDelivery(c *gin.Context) {
	var req returnDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.deliverySvc.Return(c.Request.Context(), deliverydomain.ReturnDeliveryRequest{
		ID:         strings.TrimSpace(c.Param("id")),
		ReturnedKg: req.ReturnedKg,
		Reason:     req.Reason,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteDelivery(c *gin.Context) {
	if err := s.deliverySvc.SoftDelete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
