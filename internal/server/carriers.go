package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	carrierdomain "github.com/yemtakip/yemtakip/internal/carrier/domain"
)

func (s *Server) ListCarriers(c *gin.Context) {
	carriers, err := s.carrierSvc.List(c.Request.Context(), s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": carriers})
}

func (s *Server) GetCarrierByID(c *gin.Context) {
	carrierID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || carrierID == 0 {
		AbortWithError(c, carrierdomain.ErrInvalidCarrier)
		return
	}

	carrier, err := s.carrierSvc.FindByID(c.Request.Context(), s.db, carrierID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": carrier})
}

func (s *Server) ListCarrierTransactions(c *gin.Context) {
	carrierID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || carrierID == 0 {
		AbortWithError(c, carrierdomain.ErrInvalidCarrier)
		return
	}

	transactions, err := s.carrierSvc.Transactions(c.Request.Context(), s.db, carrierID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": transactions})
}
