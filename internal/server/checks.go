package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	checkdomain "github.com/yemtakip/yemtakip/internal/check/domain"
)

type createCheckRequest struct {
	ContactID string `json:"contact_id"`
	Kind      string `json:"kind"`
	Direction string `json:"direction"`
	CheckNo   string `json:"check_no"`
	BankName  string `json:"bank_name"`
	Amount    string `json:"amount"`
	DueDate   string `json:"due_date"`
	Note      string `json:"note"`
}

type endorseCheckRequest struct {
	ContactID string `json:"contact_id"`
}

func (s *Server) CreateCheck(c *gin.Context) {
	var req createCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkSvc.Create(c.Request.Context(), checkdomain.CreateCheckRequest{
		ContactID: req.ContactID,
		Kind:      req.Kind,
		Direction: req.Direction,
		CheckNo:   req.CheckNo,
		BankName:  req.BankName,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Note:      req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCheckByID(c *gin.Context) {
	resp, err := s.checkSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListChecks(c *gin.Context) {
	resp, err := s.checkSvc.List(c.Request.Context(), checkdomain.ListCheckRequest{
		ContactID: c.Query("contact_id"),
		Status:    c.Query("status"),
		DueFrom:   c.Query("due_from"),
		DueTo:     c.Query("due_to"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCheckStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkSvc.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) EndorseCheck(c *gin.Context) {
	var req endorseCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checkSvc.Endorse(c.Request.Context(), checkdomain.EndorseCheckRequest{
		ID:              strings.TrimSpace(c.Param("id")),
		TargetContactID: req.ContactID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCheck(c *gin.Context) {
	if err := s.checkSvc.SoftDelete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
