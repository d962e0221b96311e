package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetProfitLoss(c *gin.Context) {
	report, err := s.reportSvc.ProfitLoss(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (s *Server) GetProfitLossPDF(c *gin.Context) {
	report, err := s.reportSvc.ProfitLoss(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reader, err := s.pdfProvider.GenerateProfitLoss(c.Request.Context(), report)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="kar-zarar.pdf"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

func (s *Server) ExportExcel(c *gin.Context) {
	reader, err := s.exportSvc.ExportExcel(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := "yedek-" + time.Now().UTC().Format(dateOnlyLayout) + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.DataFromReader(http.StatusOK, -1,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", reader, nil)
}

func (s *Server) ExportCSV(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	reader, err := s.exportSvc.ExportCSV(c.Request.Context(), table)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+table+`.csv"`)
	c.DataFromReader(http.StatusOK, -1, "text/csv", reader, nil)
}
