package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	annotationdomain "github.com/yemtakip/yemtakip/internal/annotation/domain"
)

type setAnnotationRequest struct {
	Value string `json:"value"`
}

func (s *Server) ListAnnotations(c *gin.Context) {
	resp, err := s.annotationSvc.ListForEntity(c.Request.Context(),
		strings.TrimSpace(c.Param("entity_type")), strings.TrimSpace(c.Param("entity_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetAnnotation(c *gin.Context) {
	var req setAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.annotationSvc.Set(c.Request.Context(), annotationdomain.SetAnnotationRequest{
		EntityType: strings.TrimSpace(c.Param("entity_type")),
		EntityID:   strings.TrimSpace(c.Param("entity_id")),
		Key:        strings.TrimSpace(c.Param("key")),
		Value:      req.Value,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAnnotation(c *gin.Context) {
	err := s.annotationSvc.Delete(c.Request.Context(),
		strings.TrimSpace(c.Param("entity_type")),
		strings.TrimSpace(c.Param("entity_id")),
		strings.TrimSpace(c.Param("key")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
