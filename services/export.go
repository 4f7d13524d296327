package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/xener/energy-api/storage"
)

// ExportService builds an XLSX workbook of a user's appliances, bills and
// usage records. It replaces the old hosted-spreadsheet push: the client
// downloads the file instead of the server writing to a shared sheet.
type ExportService struct {
	store storage.Storage
}

func NewExportService(store storage.Storage) *ExportService {
	return &ExportService{store: store}
}

// ExportUserXLSX returns workbook bytes and a unique download filename.
func (s *ExportService) ExportUserXLSX(userID int) ([]byte, string, error) {
	start := time.Now()

	appliances, err := s.store.GetAppliancesByUserID(userID)
	if err != nil {
		return nil, "", fmt.Errorf("query appliances: %w", err)
	}
	bills, err := s.store.GetBillsByUserID(userID)
	if err != nil {
		return nil, "", fmt.Errorf("query bills: %w", err)
	}
	usage, err := s.store.GetUsageRecordsByUserID(userID, "", "")
	if err != nil {
		return nil, "", fmt.Errorf("query usage records: %w", err)
	}

	f := excelize.NewFile()

	const applianceSheet = "Appliances"
	if err := f.SetSheetName("Sheet1", applianceSheet); err != nil {
		return nil, "", err
	}
	writeRow(f, applianceSheet, 1, []any{"Name", "Type", "Power Rating (W)", "Star Rating", "Age (years)", "Usage Hours/Day", "Added"})
	for i, a := range appliances {
		writeRow(f, applianceSheet, i+2, []any{
			a.Name, a.Type, a.PowerRating, a.StarRating, a.Age, a.UsageHoursPerDay,
			a.CreatedAt.Format("2006-01-02"),
		})
	}
	_ = f.SetColWidth(applianceSheet, "A", "B", 22)
	_ = f.SetColWidth(applianceSheet, "C", "F", 16)

	const billSheet = "Bills"
	if _, err := f.NewSheet(billSheet); err != nil {
		return nil, "", err
	}
	writeRow(f, billSheet, 1, []any{"Billing Month", "Energy Supplier", "Units Consumed (kWh)", "Bill Total", "Tariff Rate", "Due Date", "Paid", "Confidence", "Uploaded"})
	for i, b := range bills {
		writeRow(f, billSheet, i+2, []any{
			b.CurrentMonth, b.EnergySupplier, b.UnitsConsumed, b.BillTotal, b.TariffRate,
			b.DueDate, b.IsPaid, b.Confidence, b.CreatedAt.Format("2006-01-02"),
		})
	}
	_ = f.SetColWidth(billSheet, "A", "B", 20)
	_ = f.SetColWidth(billSheet, "C", "E", 18)

	const usageSheet = "Usage"
	if _, err := f.NewSheet(usageSheet); err != nil {
		return nil, "", err
	}
	writeRow(f, usageSheet, 1, []any{"Date", "Appliance ID", "Units Consumed (kWh)", "Cost"})
	for i, r := range usage {
		writeRow(f, usageSheet, i+2, []any{r.Date, r.ApplianceID, r.UnitsConsumed, r.Cost})
	}
	_ = f.SetColWidth(usageSheet, "A", "A", 14)
	_ = f.SetColWidth(usageSheet, "B", "D", 18)

	if index, err := f.GetSheetIndex(applianceSheet); err == nil {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("xlsx write: %w", err)
	}

	filename := fmt.Sprintf("xener-home-export-%s.xlsx", uuid.NewString()[:8])
	log.Printf("📊 Export ready: user=%d appliances=%d bills=%d usage=%d (%v)",
		userID, len(appliances), len(bills), len(usage), time.Since(start))

	return buf.Bytes(), filename, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheet, cell, v)
	}
}
