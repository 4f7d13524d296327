package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xener/energy-api/models"
	"github.com/xener/energy-api/storage"
)

type ApplianceHandler struct {
	Store storage.Storage
	WS    *WSHandler
}

func (h *ApplianceHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	appliances, err := h.Store.GetAppliancesByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appliances"})
		return
	}

	c.JSON(http.StatusOK, appliances)
}

func (h *ApplianceHandler) Create(c *gin.Context) {
	var req models.InsertAppliance
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appliance data"})
		return
	}

	appliance, err := h.Store.CreateAppliance(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appliance"})
		return
	}

	h.WS.BroadcastUpdate(appliance.UserID, "appliance_created")
	c.JSON(http.StatusCreated, appliance)
}

func (h *ApplianceHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appliance id"})
		return
	}

	var req models.UpdateAppliance
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appliance data"})
		return
	}

	appliance, err := h.Store.UpdateAppliance(id, req)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appliance not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appliance"})
		return
	}

	h.WS.BroadcastUpdate(appliance.UserID, "appliance_updated")
	c.JSON(http.StatusOK, appliance)
}

func (h *ApplianceHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appliance id"})
		return
	}

	appliance, err := h.Store.GetAppliance(id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appliance not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appliance"})
		return
	}

	if err := h.Store.DeleteAppliance(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete appliance"})
		return
	}

	h.WS.BroadcastUpdate(appliance.UserID, "appliance_deleted")
	c.Status(http.StatusNoContent)
}
