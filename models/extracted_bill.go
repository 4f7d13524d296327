package models

// ExtractedBillData is the full record produced by the bill text extractor.
// Every field is always populated; callers never need nil checks, only
// "is this the default value". See services/extractor.go for the rules.
type ExtractedBillData struct {
	EnergySupplier string  `json:"energySupplier"`
	MonthlyBill    float64 `json:"monthlyBill"`
	BillingMonth   string  `json:"billingMonth"` // YYYY-MM
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
	SanctionedLoad float64 `json:"sanctionedLoad"`
	Confidence     float64 `json:"confidence"`

	// Additional detail fields
	ReadingDate     string  `json:"readingDate"`
	BillDate        string  `json:"billDate"`
	UserName        string  `json:"userName"`
	SecurityDeposit float64 `json:"securityDeposit"`
	UnitsBilled     float64 `json:"unitsBilled"`
	UnitsCredited   float64 `json:"unitsCredited"`

	// Bill breakdown details (estimated as fixed fractions of the total)
	EnergyCharges  float64 `json:"energyCharges"`
	FpppaCharges   float64 `json:"fpppaCharges"`
	GovernmentDuty float64 `json:"governmentDuty"`
	FixedCharges   float64 `json:"fixedCharges"`
	PreviousDue    float64 `json:"previousDue"`

	// Support information
	ComplaintNumber string `json:"complaintNumber"`
	HelplineNumber  string `json:"helplineNumber"`
}
