package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/xener/energy-api/models"
	"github.com/xener/energy-api/storage"
)

func newBillRouter(store storage.Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &BillHandler{Store: store}

	r := gin.New()
	r.GET("/bills/:userId", h.ListByUser)
	r.GET("/bills/:userId/latest", h.LatestByUser)
	r.POST("/bills", h.Create)
	r.POST("/bills/extract", h.Extract)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExtractEndpointSingleText(t *testing.T) {
	r := newBillRouter(storage.NewMemStorage())

	w := postJSON(t, r, "/bills/extract", models.ExtractRequest{
		Text: "Adani Electricity Bill Amount: 1,530.50 Units: 210 Month: 03/2025 Customer No: AB1234",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var result models.ExtractedBillData
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.EnergySupplier != "Adani" {
		t.Errorf("EnergySupplier = %q, want Adani", result.EnergySupplier)
	}
	if result.BillTotal != 1530.50 {
		t.Errorf("BillTotal = %v, want 1530.50", result.BillTotal)
	}
	if result.BillingMonth != "2025-03" {
		t.Errorf("BillingMonth = %q, want 2025-03", result.BillingMonth)
	}
	if result.Confidence < 0.99 {
		t.Errorf("Confidence = %v, want full score", result.Confidence)
	}
}

func TestExtractEndpointPagesPicksBest(t *testing.T) {
	r := newBillRouter(storage.NewMemStorage())

	w := postJSON(t, r, "/bills/extract", models.ExtractRequest{
		Pages: []string{
			"terms and conditions, no bill data here",
			"Tata Power Total: 980 Units: 140",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var result models.ExtractedBillData
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.EnergySupplier != "Tata" {
		t.Errorf("EnergySupplier = %q, want the high-confidence page's Tata", result.EnergySupplier)
	}
	if result.BillTotal != 980 {
		t.Errorf("BillTotal = %v, want 980", result.BillTotal)
	}
}

func TestExtractEndpointRejectsMalformedJSON(t *testing.T) {
	r := newBillRouter(storage.NewMemStorage())

	req := httptest.NewRequest(http.MethodPost, "/bills/extract", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestBillCreateAndList(t *testing.T) {
	store := storage.NewMemStorage()
	r := newBillRouter(store)

	w := postJSON(t, r, "/bills", models.InsertBill{
		UserID:       1,
		CurrentMonth: "2025-05",
		BillTotal:    1200,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/bills", map[string]any{"billTotal": 900})
	if w.Code != http.StatusBadRequest {
		t.Errorf("create without userId status = %d, want 400", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/bills/1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var bills []models.Bill
	if err := json.Unmarshal(rec.Body.Bytes(), &bills); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(bills) != 1 || bills[0].CurrentMonth != "2025-05" {
		t.Errorf("bills = %+v, want the one created bill", bills)
	}

	req = httptest.NewRequest(http.MethodGet, "/bills/1/latest", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("latest status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/bills/999/latest", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("latest for empty user status = %d, want 404", rec.Code)
	}
}
