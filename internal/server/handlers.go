package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/models"
	"github.com/matthieukhl/expotrack/internal/service"
)

func forceRefresh(c *gin.Context) bool {
	return strings.EqualFold(c.Query("force_refresh"), "true")
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, s.inv.Health())
}

func (s *Server) platformStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.inv.Status())
}

func (s *Server) getOrders(c *gin.Context) {
	setFallback(c, http.StatusOK, func(string) any { return []models.Order{} })

	c.JSON(http.StatusOK, s.inv.AllOrders(forceRefresh(c)))
}

func (s *Server) getBoothOrders(c *gin.Context) {
	booth := c.Param("booth")
	force := forceRefresh(c)
	setFallback(c, http.StatusInternalServerError, func(msg string) any {
		body := service.EmptyBoothOrders(booth, force)
		body.Error = msg
		return body
	})

	resp, err := s.inv.BoothOrders(booth, force)
	if err != nil {
		logger.Error("Failed to build booth orders", logger.Fields{
			"booth": booth,
			"error": err.Error(),
		})
		resp.Error = err.Error()
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getChecklist(c *gin.Context) {
	setFallback(c, http.StatusOK, func(string) any { return []models.ChecklistItem{} })

	c.JSON(http.StatusOK, s.inv.AllChecklist(forceRefresh(c)))
}

func (s *Server) getBoothChecklist(c *gin.Context) {
	booth := c.Param("booth")
	force := forceRefresh(c)
	setFallback(c, http.StatusInternalServerError, func(msg string) any {
		body := service.EmptyBoothChecklist(booth, force)
		body.Error = msg
		return body
	})

	resp, err := s.inv.BoothChecklist(booth, force)
	if err != nil {
		logger.Error("Failed to build booth checklist", logger.Fields{
			"booth": booth,
			"error": err.Error(),
		})
		resp.Error = err.Error()
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) clearCache(c *gin.Context) {
	s.inv.ClearCache()
	c.JSON(http.StatusOK, gin.H{
		"message": "Cache cleared successfully",
	})
}
