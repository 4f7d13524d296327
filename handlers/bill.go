package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xener/energy-api/models"
	"github.com/xener/energy-api/services"
	"github.com/xener/energy-api/storage"
	"github.com/xener/energy-api/utils"
)

// Uploaded bill PDFs are read fully into memory before parsing.
const maxPDFUploadBytes = 20 << 20

type BillHandler struct {
	Store storage.Storage
	WS    *WSHandler
}

func (h *BillHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	bills, err := h.Store.GetBillsByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}

	c.JSON(http.StatusOK, bills)
}

func (h *BillHandler) LatestByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	bill, err := h.Store.GetLatestBillByUserID(userID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No bills found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bill"})
		return
	}

	c.JSON(http.StatusOK, bill)
}

func (h *BillHandler) Create(c *gin.Context) {
	var req models.InsertBill
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill data"})
		return
	}

	bill, err := h.Store.CreateBill(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill"})
		return
	}

	h.WS.BroadcastUpdate(bill.UserID, "bill_created")
	c.JSON(http.StatusCreated, bill)
}

// Extract parses OCR text into a structured bill record. Accepts either a
// single text blob or a list of per-page texts; pages are extracted
// independently and the highest-confidence record wins.
func (h *BillHandler) Extract(c *gin.Context) {
	var req models.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid extract request"})
		return
	}

	var result models.ExtractedBillData
	if len(req.Pages) > 0 {
		results := make([]models.ExtractedBillData, 0, len(req.Pages))
		for _, page := range req.Pages {
			results = append(results, services.ExtractFromText(page))
		}
		result = services.MergeBillData(results)
	} else {
		result = services.ExtractFromText(req.Text)
	}

	utils.SafeInfo("Bill extraction: supplier=%q month=%s confidence=%.2f",
		result.EnergySupplier, result.BillingMonth, result.Confidence)

	c.JSON(http.StatusOK, result)
}

// ExtractPDF accepts a multipart PDF upload, pulls its text layer and runs
// the extractor over it. Parse failures and scanned-image PDFs degrade to
// the all-default record rather than an error; the client can still let the
// user fill the form by hand.
func (h *BillHandler) ExtractPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF file is required"})
		return
	}
	if fileHeader.Size > maxPDFUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPDFUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	text, err := services.ExtractTextFromPDF(bytes.NewReader(data))
	if err != nil {
		utils.SafeWarn("PDF text extraction failed (%v), returning defaults", err)
		c.JSON(http.StatusOK, services.DefaultBillData())
		return
	}

	result := services.ExtractFromText(text)
	utils.SafeInfo("PDF extraction: file=%s supplier=%q confidence=%.2f",
		fileHeader.Filename, result.EnergySupplier, result.Confidence)

	c.JSON(http.StatusOK, result)
}
