package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "yelloride/internal/config"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "yelloride api running"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		RespondError(c, http.StatusInternalServerError, "database unavailable")
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM taxi_items").Scan(&count); err != nil {
		RespondError(c, http.StatusInternalServerError, "database query failed")
		return
	}
	RespondData(c, http.StatusOK, gin.H{"taxi_items": count})
}
