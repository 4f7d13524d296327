package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xener/energy-api/models"
)

// ============================================================================
// BILL TEXT EXTRACTOR
// Turns raw OCR / PDF text-layer output for a utility bill into a structured
// ExtractedBillData record with a heuristic confidence score. Pure and
// synchronous: no I/O, no state, safe to call from any number of goroutines.
// It never fails: unreadable input yields the fully-defaulted record so the
// user always lands on an editable form instead of an error.
// ============================================================================

const (
	// Charge breakdown is estimated as fixed fractions of the bill total.
	// These are placeholder shares, not a real tariff schedule.
	energyChargesShare  = 0.70
	fpppaChargesShare   = 0.10
	governmentDutyShare = 0.10
	fixedChargesShare   = 0.05

	// Tariff used when the bill total or unit count is missing.
	fallbackTariffRate = 7
)

// Confidence is additive: a base score plus a weight per matched primary
// field. It counts matches, it is not a probability.
const (
	baseConfidence   = 0.3
	supplierWeight   = 0.2
	amountWeight     = 0.2
	unitsWeight      = 0.2
	customerIDWeight = 0.1
)

// fieldRule binds one labeled-field pattern to the record field it fills.
// Rules run independently in fixed order; first match per rule wins.
type fieldRule struct {
	field   string
	pattern *regexp.Regexp
	apply   func(d *models.ExtractedBillData, match string)
}

var extractionRules = []fieldRule{
	{
		field:   "energySupplier",
		pattern: regexp.MustCompile(`(?i)torrent|adani|tata|mseb|bescom|kseb|tneb|pspcl|uhbvn|dvvnl|uppcl|wbsedcl|pseb|mppkvvcl|paschim gujarat|dakshin gujarat|madhya gujarat|uttar gujarat`),
		apply: func(d *models.ExtractedBillData, match string) {
			d.EnergySupplier = match
		},
	},
	{
		field:   "billTotal",
		pattern: regexp.MustCompile(`(?i)(?:total|amount|bill\s*amount|payable)\s*:?\s*₹?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
		apply: func(d *models.ExtractedBillData, match string) {
			d.BillTotal = parseAmount(match)
		},
	},
	{
		field:   "unitsConsumed",
		pattern: regexp.MustCompile(`(?i)(?:units|kwh|consumption)\s*:?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
		apply: func(d *models.ExtractedBillData, match string) {
			d.UnitsConsumed = parseAmount(match)
		},
	},
	{
		field:   "billingMonth",
		pattern: regexp.MustCompile(`(?i)(?:month|period|bill\s*for)\s*:?\s*([a-z]+\s*\d{4}|\d{2}/\d{4}|\d{4}-\d{2})`),
		apply: func(d *models.ExtractedBillData, match string) {
			// mm/yyyy is normalized, yyyy-mm passes through. A textual month
			// ("March 2024") matches the pattern but is NOT normalized and
			// keeps the current-month default. Known gap, kept as observed.
			if strings.Contains(match, "/") {
				parts := strings.SplitN(match, "/", 2)
				month := parts[0]
				if len(month) < 2 {
					month = "0" + month
				}
				d.BillingMonth = parts[1] + "-" + month
			} else if strings.Contains(match, "-") {
				d.BillingMonth = match
			}
		},
	},
	{
		field:   "customerID",
		pattern: regexp.MustCompile(`(?i)(?:customer|consumer|account)\s*(?:id|no|number)\s*:?\s*([A-Z0-9]+)`),
		apply: func(d *models.ExtractedBillData, match string) {
			d.CustomerID = match
		},
	},
	{
		field:   "meterNumber",
		pattern: regexp.MustCompile(`(?i)(?:meter|device)\s*(?:no|number)\s*:?\s*([A-Z0-9]+)`),
		apply: func(d *models.ExtractedBillData, match string) {
			d.MeterNumber = match
		},
	},
	{
		field:   "userName",
		pattern: regexp.MustCompile(`(?i)(?:name|consumer)\s*:?\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		apply: func(d *models.ExtractedBillData, match string) {
			d.UserName = match
		},
	},
}

// ExtractFromText parses free-form bill text into a fully-populated record.
// Absent fields keep their defaults; malformed input never produces an error.
func ExtractFromText(text string) models.ExtractedBillData {
	d := DefaultBillData()

	for _, rule := range extractionRules {
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 {
			value = m[1]
		}
		rule.apply(&d, value)
	}

	confidence := baseConfidence
	if d.EnergySupplier != "" {
		confidence += supplierWeight
	}
	if d.BillTotal > 0 {
		confidence += amountWeight
	}
	if d.UnitsConsumed > 0 {
		confidence += unitsWeight
	}
	if d.CustomerID != "" {
		confidence += customerIDWeight
	}
	d.Confidence = confidence

	d.MonthlyBill = d.BillTotal
	d.UnitsBilled = d.UnitsConsumed
	d.BillBreakdown = fmt.Sprintf("Extracted data for %s", d.BillingMonth)
	if d.BillTotal > 0 && d.UnitsConsumed > 0 {
		d.TariffRate = d.BillTotal / d.UnitsConsumed
	}
	d.EnergyCharges = d.BillTotal * energyChargesShare
	d.FpppaCharges = d.BillTotal * fpppaChargesShare
	d.GovernmentDuty = d.BillTotal * governmentDutyShare
	d.FixedCharges = d.BillTotal * fixedChargesShare

	return d
}

// MergeBillData picks the single highest-confidence record from a multi-page
// extraction. Ties keep the earliest page. This is whole-record selection,
// not a field-wise reconciliation across pages.
func MergeBillData(results []models.ExtractedBillData) models.ExtractedBillData {
	if len(results) == 0 {
		return DefaultBillData()
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Confidence > best.Confidence {
			best = r
		}
	}
	return best
}

// DefaultBillData returns the all-default record: current calendar month,
// fallback tariff, zero confidence, every other field empty.
func DefaultBillData() models.ExtractedBillData {
	return models.ExtractedBillData{
		BillingMonth:   CurrentBillingMonth(),
		TariffRate:     fallbackTariffRate,
		ConnectionType: "Domestic",
	}
}

// CurrentBillingMonth returns the current calendar month as YYYY-MM (UTC).
func CurrentBillingMonth() string {
	return time.Now().UTC().Format("2006-01")
}

// parseAmount strips thousands separators and parses the remainder. Decimal
// points are preserved. The patterns above only hand us digit/comma/dot
// strings, so a parse failure just means zero.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
