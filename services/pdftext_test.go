package services

import "testing"

func TestPageTextFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain Tj operands",
			content: `BT /F1 12 Tf (Torrent Power) Tj (Total: 1500) Tj ET`,
			want:    "Torrent Power Total: 1500",
		},
		{
			name:    "TJ array with positioning numbers",
			content: `BT [(Units:) -250 (450)] TJ ET`,
			want:    "Units: 450",
		},
		{
			name:    "escaped newline and tab",
			content: `(line one\nline two\ttabbed) Tj`,
			want:    "line one\nline two\ttabbed",
		},
		{
			name:    "escaped parentheses",
			content: `(rate \(per kWh\)) Tj`,
			want:    "rate (per kWh)",
		},
		{
			name:    "nested parentheses",
			content: `(outer (inner) tail) Tj`,
			want:    "outer (inner) tail",
		},
		{
			name:    "whitespace-only strings skipped",
			content: `(  ) Tj (Month: 2025-03) Tj`,
			want:    "Month: 2025-03",
		},
		{
			name:    "no strings at all",
			content: `q 1 0 0 1 50 700 cm /Im1 Do Q`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pageTextFromContent([]byte(tt.content))
			if got != tt.want {
				t.Errorf("pageTextFromContent(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestPageTextFeedsExtractor(t *testing.T) {
	content := `BT
(Torrent Power Electricity Bill) Tj
(Bill Amount: 2,450.00) Tj
(Units: 320) Tj
(Month: 2025-03) Tj
ET`

	text := pageTextFromContent([]byte(content))
	result := ExtractFromText(text)

	if result.EnergySupplier != "Torrent" {
		t.Errorf("EnergySupplier = %q, want Torrent", result.EnergySupplier)
	}
	if result.BillTotal != 2450 {
		t.Errorf("BillTotal = %v, want 2450", result.BillTotal)
	}
	if result.UnitsConsumed != 320 {
		t.Errorf("UnitsConsumed = %v, want 320", result.UnitsConsumed)
	}
	if result.BillingMonth != "2025-03" {
		t.Errorf("BillingMonth = %q, want 2025-03", result.BillingMonth)
	}
}
