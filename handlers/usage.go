package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xener/energy-api/models"
	"github.com/xener/energy-api/storage"
)

type UsageHandler struct {
	Store storage.Storage
	WS    *WSHandler
}

// ListByUser returns a user's usage records, optionally bounded by the
// startDate/endDate query params (inclusive, YYYY-MM-DD).
func (h *UsageHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	records, err := h.Store.GetUsageRecordsByUserID(userID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch usage records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *UsageHandler) Create(c *gin.Context) {
	var req models.InsertUsageRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid usage data"})
		return
	}

	record, err := h.Store.CreateUsageRecord(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create usage record"})
		return
	}

	h.WS.BroadcastUpdate(record.UserID, "usage_recorded")
	c.JSON(http.StatusCreated, record)
}
