package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListTrash(c *gin.Context) {
	items, err := s.trashSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) RestoreFromTrash(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	id := strings.TrimSpace(c.Param("id"))

	if err := s.trashSvc.Restore(c.Request.Context(), table, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"restored": true}})
}

func (s *Server) PermanentDeleteFromTrash(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	id := strings.TrimSpace(c.Param("id"))

	if err := s.trashSvc.PermanentDelete(c.Request.Context(), table, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
