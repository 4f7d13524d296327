package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xener/energy-api/models"
	"github.com/xener/energy-api/services"
	"github.com/xener/energy-api/storage"
)

type TipsHandler struct {
	Store     storage.Storage
	Generator services.TipGenerator
	WS        *WSHandler
}

func (h *TipsHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	tips, err := h.Store.GetTipsByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tips"})
		return
	}

	c.JSON(http.StatusOK, tips)
}

// Generate produces tips for a user's appliance and usage profile and
// persists them. A failing AI backend falls back to the canned tips so the
// endpoint never errors for generation reasons.
func (h *TipsHandler) Generate(c *gin.Context) {
	var req models.GenerateTipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	appliances, err := h.Store.GetAppliancesByUserID(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appliances"})
		return
	}
	usage, err := h.Store.GetUsageRecordsByUserID(req.UserID, "", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch usage records"})
		return
	}

	contents, err := h.Generator.GenerateTips(c.Request.Context(), appliances, usage)
	if err != nil {
		log.Printf("⚠️ Tip generation failed (%v), using static tips", err)
		contents, _ = (&services.StaticTipGenerator{}).GenerateTips(c.Request.Context(), appliances, usage)
	}

	saved := make([]models.AiTip, 0, len(contents))
	for _, content := range contents {
		tip, err := h.Store.CreateTip(models.InsertAiTip{
			UserID:        req.UserID,
			Title:         content.Title,
			Description:   content.Description,
			Category:      content.Category,
			SavingsAmount: content.SavingsAmount,
			Difficulty:    content.Difficulty,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save tips"})
			return
		}
		saved = append(saved, *tip)
	}

	h.WS.BroadcastUpdate(req.UserID, "tips_generated")
	c.JSON(http.StatusOK, saved)
}

func (h *TipsHandler) Bookmark(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tip id"})
		return
	}

	var req models.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsBookmarked == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isBookmarked is required"})
		return
	}

	tip, err := h.Store.BookmarkTip(id, *req.IsBookmarked)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tip not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tip"})
		return
	}

	c.JSON(http.StatusOK, tip)
}
