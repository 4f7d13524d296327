package models

import "time"

type Bill struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	EnergySupplier string    `json:"energySupplier"`
	MonthlyBill    float64   `json:"monthlyBill"`
	CurrentMonth   string    `json:"currentMonth"` // YYYY-MM
	UnitsConsumed  float64   `json:"unitsConsumed"`
	BillTotal      float64   `json:"billTotal"`
	BillBreakdown  string    `json:"billBreakdown"` // JSON string
	TariffRate     float64   `json:"tariffRate"`
	ConnectionType string    `json:"connectionType"`
	UserAddress    string    `json:"userAddress"`
	AreaTariff     string    `json:"areaTariff"`
	DueDate        string    `json:"dueDate"`
	IsPaid         bool      `json:"isPaid"`
	CustomerID     string    `json:"customerID"`
	MeterNumber    string    `json:"meterNumber"`
	SanctionedLoad string    `json:"sanctionedLoad"`
	Confidence     float64   `json:"confidence"`
	ExtractedData  string    `json:"extractedData"` // JSON string of the full OCR record
	ImageURLs      string    `json:"imageUrls"`     // JSON array
	CreatedAt      time.Time `json:"createdAt"`
}

// InsertBill mirrors the storage schema's optional/required split: only the
// owning user is required, every bill field may be absent.
type InsertBill struct {
	UserID         int     `json:"userId" binding:"required"`
	EnergySupplier string  `json:"energySupplier"`
	MonthlyBill    float64 `json:"monthlyBill"`
	CurrentMonth   string  `json:"currentMonth"`
	UnitsConsumed  float64 `json:"unitsConsumed"`
	BillTotal      float64 `json:"billTotal"`
	BillBreakdown  string  `json:"billBreakdown"`
	TariffRate     float64 `json:"tariffRate"`
	ConnectionType string  `json:"connectionType"`
	UserAddress    string  `json:"userAddress"`
	AreaTariff     string  `json:"areaTariff"`
	DueDate        string  `json:"dueDate"`
	IsPaid         bool    `json:"isPaid"`
	CustomerID     string  `json:"customerID"`
	MeterNumber    string  `json:"meterNumber"`
	SanctionedLoad string  `json:"sanctionedLoad"`
	Confidence     float64 `json:"confidence"`
	ExtractedData  string  `json:"extractedData"`
	ImageURLs      string  `json:"imageUrls"`
}

type ExtractRequest struct {
	Text  string   `json:"text"`
	Pages []string `json:"pages"`
}
