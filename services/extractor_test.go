package services

import (
	"math"
	"testing"

	"github.com/xener/energy-api/models"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestExtractFromTextFields(t *testing.T) {
	// The Name line sits last: the capitalized-word-sequence pattern happily
	// runs across newlines into following labels (same as the source regex).
	text := `Torrent Power Ltd
Customer No: ABC12345
Meter Number: MTR998
Bill for: 03/2024
Units: 150
Total: ₹1,234.50
Name: Ramesh Patel`

	d := ExtractFromText(text)

	if d.EnergySupplier != "Torrent" {
		t.Errorf("EnergySupplier = %q, want %q", d.EnergySupplier, "Torrent")
	}
	if !almostEqual(d.BillTotal, 1234.50) {
		t.Errorf("BillTotal = %v, want 1234.50", d.BillTotal)
	}
	if !almostEqual(d.MonthlyBill, 1234.50) {
		t.Errorf("MonthlyBill = %v, want 1234.50 (mirrors BillTotal)", d.MonthlyBill)
	}
	if !almostEqual(d.UnitsConsumed, 150) {
		t.Errorf("UnitsConsumed = %v, want 150", d.UnitsConsumed)
	}
	if !almostEqual(d.UnitsBilled, 150) {
		t.Errorf("UnitsBilled = %v, want 150 (mirrors UnitsConsumed)", d.UnitsBilled)
	}
	if !almostEqual(d.TariffRate, 1234.50/150) {
		t.Errorf("TariffRate = %v, want %v", d.TariffRate, 1234.50/150)
	}
	if d.BillingMonth != "2024-03" {
		t.Errorf("BillingMonth = %q, want %q", d.BillingMonth, "2024-03")
	}
	if d.CustomerID != "ABC12345" {
		t.Errorf("CustomerID = %q, want %q", d.CustomerID, "ABC12345")
	}
	if d.MeterNumber != "MTR998" {
		t.Errorf("MeterNumber = %q, want %q", d.MeterNumber, "MTR998")
	}
	if d.UserName != "Ramesh Patel" {
		t.Errorf("UserName = %q, want %q", d.UserName, "Ramesh Patel")
	}

	// All four weighted fields matched.
	if !almostEqual(d.Confidence, baseConfidence+supplierWeight+amountWeight+unitsWeight+customerIDWeight) {
		t.Errorf("Confidence = %v, want 0.3+0.2+0.2+0.2+0.1", d.Confidence)
	}

	// Breakdown shares of the total.
	if !almostEqual(d.EnergyCharges, 1234.50*0.70) {
		t.Errorf("EnergyCharges = %v, want %v", d.EnergyCharges, 1234.50*0.70)
	}
	if !almostEqual(d.FpppaCharges, 1234.50*0.10) {
		t.Errorf("FpppaCharges = %v, want %v", d.FpppaCharges, 1234.50*0.10)
	}
	if !almostEqual(d.GovernmentDuty, 1234.50*0.10) {
		t.Errorf("GovernmentDuty = %v, want %v", d.GovernmentDuty, 1234.50*0.10)
	}
	if !almostEqual(d.FixedCharges, 1234.50*0.05) {
		t.Errorf("FixedCharges = %v, want %v", d.FixedCharges, 1234.50*0.05)
	}
}

func TestExtractFromTextNoMatches(t *testing.T) {
	d := ExtractFromText("completely unrelated scribbles 🙂")

	if !almostEqual(d.Confidence, baseConfidence) {
		t.Errorf("Confidence = %v, want %v", d.Confidence, baseConfidence)
	}
	if d.BillingMonth != CurrentBillingMonth() {
		t.Errorf("BillingMonth = %q, want current month %q", d.BillingMonth, CurrentBillingMonth())
	}
	if d.EnergySupplier != "" || d.CustomerID != "" || d.MeterNumber != "" || d.UserName != "" {
		t.Errorf("string fields not empty: %+v", d)
	}
	if d.BillTotal != 0 || d.UnitsConsumed != 0 {
		t.Errorf("numeric fields not zero: total=%v units=%v", d.BillTotal, d.UnitsConsumed)
	}
	if !almostEqual(d.TariffRate, fallbackTariffRate) {
		t.Errorf("TariffRate = %v, want fallback %v", d.TariffRate, fallbackTariffRate)
	}
	if d.ConnectionType != "Domestic" {
		t.Errorf("ConnectionType = %q, want Domestic", d.ConnectionType)
	}
}

func TestExtractConfidenceWeights(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"nothing", "no recognizable content", 0.3},
		{"supplier only", "powered by Adani Electricity", 0.5},
		{"supplier and amount", "Adani\nTotal: 500.00", 0.7},
		{"supplier amount units", "Adani\nTotal: 500.00\nUnits: 120", 0.9},
		{"all four", "Adani\nTotal: 500.00\nUnits: 120\nCustomer ID: X99", 0.3 + 0.2 + 0.2 + 0.2 + 0.1},
		{"customer id only", "Account Number: 778899", 0.3 + 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ExtractFromText(tt.text)
			if !almostEqual(d.Confidence, tt.want) {
				t.Errorf("Confidence = %v, want %v", d.Confidence, tt.want)
			}
			if d.Confidence < 0 || d.Confidence > 1 {
				t.Errorf("Confidence %v outside [0,1]", d.Confidence)
			}
		})
	}
}

func TestExtractNumberParsing(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"thousands separator stripped", "Units: 1,234", 1234},
		{"decimal preserved", "Units: 42.5", 42.5},
		{"plain integer", "Units: 900", 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ExtractFromText(tt.text)
			if !almostEqual(d.UnitsConsumed, tt.want) {
				t.Errorf("UnitsConsumed = %v, want %v", d.UnitsConsumed, tt.want)
			}
		})
	}
}

func TestExtractBillingMonthNormalization(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"mm/yyyy normalized", "Period: 03/2024", "2024-03"},
		{"yyyy-mm unchanged", "Month: 2024-03", "2024-03"},
		// A textual month matches the pattern but is not normalized; the
		// current-month default survives. Asserting observed behavior.
		{"textual month falls through", "Bill for: March 2024", CurrentBillingMonth()},
		{"absent month defaults", "Total: 100.00", CurrentBillingMonth()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ExtractFromText(tt.text)
			if d.BillingMonth != tt.want {
				t.Errorf("BillingMonth = %q, want %q", d.BillingMonth, tt.want)
			}
		})
	}
}

func TestExtractTariffFallback(t *testing.T) {
	// Units without a total: ratio undefined, fallback applies.
	d := ExtractFromText("Units: 200")
	if !almostEqual(d.TariffRate, fallbackTariffRate) {
		t.Errorf("TariffRate = %v, want fallback %v", d.TariffRate, fallbackTariffRate)
	}
}

func TestMergeBillData(t *testing.T) {
	a := DefaultBillData()
	a.EnergySupplier = "Adani"
	a.Confidence = 0.5

	b := DefaultBillData()
	b.EnergySupplier = "Torrent"
	b.Confidence = 0.9

	t.Run("empty input", func(t *testing.T) {
		got := MergeBillData(nil)
		if got.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0", got.Confidence)
		}
		if got.BillingMonth != CurrentBillingMonth() {
			t.Errorf("BillingMonth = %q, want current month", got.BillingMonth)
		}
	})

	t.Run("highest confidence wins", func(t *testing.T) {
		got := MergeBillData([]models.ExtractedBillData{a, b})
		if got.EnergySupplier != "Torrent" {
			t.Errorf("merged supplier = %q, want %q", got.EnergySupplier, "Torrent")
		}
	})

	t.Run("ties keep first page", func(t *testing.T) {
		c := b
		c.Confidence = a.Confidence
		got := MergeBillData([]models.ExtractedBillData{a, c})
		if got.EnergySupplier != "Adani" {
			t.Errorf("merged supplier = %q, want first page %q", got.EnergySupplier, "Adani")
		}
	})

	t.Run("single element", func(t *testing.T) {
		got := MergeBillData([]models.ExtractedBillData{a})
		if got.EnergySupplier != "Adani" {
			t.Errorf("merged supplier = %q, want %q", got.EnergySupplier, "Adani")
		}
	})
}
