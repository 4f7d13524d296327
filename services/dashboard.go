package services

import (
	"fmt"
	"math"
	"time"

	"github.com/xener/energy-api/models"
	"github.com/xener/energy-api/storage"
)

// DashboardService aggregates the home-screen numbers: today's consumption
// and cost, the heaviest appliance over the last week, the latest bill and
// tip, and the weekly usage series.
type DashboardService struct {
	store storage.Storage
}

func NewDashboardService(store storage.Storage) *DashboardService {
	return &DashboardService{store: store}
}

func (s *DashboardService) GetStats(userID int) (*models.DashboardStats, error) {
	now := time.Now()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")

	appliances, err := s.store.GetAppliancesByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch appliances: %w", err)
	}
	recentUsage, err := s.store.GetUsageRecordsByUserID(userID, weekAgo, today)
	if err != nil {
		return nil, fmt.Errorf("fetch usage records: %w", err)
	}

	stats := &models.DashboardStats{
		WeeklyUsage: make([]models.WeeklyUsagePoint, 0, len(recentUsage)),
	}

	var todayUsage, todayCost float64
	type usageTotals struct {
		consumption float64
		cost        float64
	}
	perAppliance := make(map[int]*usageTotals)

	for _, r := range recentUsage {
		if r.Date == today {
			todayUsage += r.UnitsConsumed
			todayCost += r.Cost
		}
		if r.ApplianceID != 0 {
			totals, ok := perAppliance[r.ApplianceID]
			if !ok {
				totals = &usageTotals{}
				perAppliance[r.ApplianceID] = totals
			}
			totals.consumption += r.UnitsConsumed
			totals.cost += r.Cost
		}
		stats.WeeklyUsage = append(stats.WeeklyUsage, models.WeeklyUsagePoint{
			Date:        r.Date,
			Consumption: r.UnitsConsumed,
			Cost:        r.Cost,
		})
	}

	stats.TodayUsage = math.Round(todayUsage*10) / 10
	stats.TodayCost = math.Round(todayCost)

	// Top consuming appliance over the window; ties break on lower id so the
	// result is stable across map iteration order.
	topID := 0
	for id, totals := range perAppliance {
		if topID == 0 ||
			totals.consumption > perAppliance[topID].consumption ||
			(totals.consumption == perAppliance[topID].consumption && id < topID) {
			topID = id
		}
	}
	if topID != 0 {
		for _, a := range appliances {
			if a.ID == topID {
				stats.TopAppliance = &models.TopAppliance{
					Appliance:   a,
					Consumption: perAppliance[topID].consumption,
					Cost:        perAppliance[topID].cost,
				}
				break
			}
		}
	}

	if bill, err := s.store.GetLatestBillByUserID(userID); err == nil {
		stats.LatestBill = bill
	}

	tips, err := s.store.GetTipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch tips: %w", err)
	}
	// Tips come back id-ascending, so >= keeps the newest on timestamp ties.
	for i := range tips {
		if stats.LatestTip == nil || !tips[i].CreatedAt.Before(stats.LatestTip.CreatedAt) {
			stats.LatestTip = &tips[i]
		}
	}

	return stats, nil
}
