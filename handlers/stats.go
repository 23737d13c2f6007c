package handlers

import (
	"net/http"

	"balancegame/concurrent"
	"balancegame/db"
	"balancegame/middleware"
	"balancegame/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns aggregate counters. Admins only.
func GetDashboardStats(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admins only"})
		return
	}

	stats, err := concurrent.CalculateDashboardStats(db.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
