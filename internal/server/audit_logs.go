package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/yemtakip/yemtakip/internal/audit/domain"
	"github.com/yemtakip/yemtakip/pkg/db/pagination"
)

func (s *Server) ListAuditLogs(c *gin.Context) {
	var query struct {
		pagination.Pagination
		TableName string `form:"table_name"`
		RecordID  string `form:"record_id"`
		Action    string `form:"action"`
		UserEmail string `form:"user_email"`
		StartAt   string `form:"start_at"`
		EndAt     string `form:"end_at"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startAt, err := parseOptionalTime(query.StartAt, false)
	if err != nil {
		AbortWithError(c, newValidationError("start_at", "invalid_time", "invalid start_at"))
		return
	}
	endAt, err := parseOptionalTime(query.EndAt, true)
	if err != nil {
		AbortWithError(c, newValidationError("end_at", "invalid_time", "invalid end_at"))
		return
	}

	resp, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListAuditRequest{
		Pagination: query.Pagination,
		TableName:  strings.TrimSpace(query.TableName),
		RecordID:   strings.TrimSpace(query.RecordID),
		Action:     strings.TrimSpace(query.Action),
		UserEmail:  strings.TrimSpace(query.UserEmail),
		StartAt:    startAt,
		EndAt:      endAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
