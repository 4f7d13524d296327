package services

import (
	"math"
	"testing"
	"time"

	"github.com/xener/energy-api/models"
	"github.com/xener/energy-api/storage"
)

func seedDashboardData(t *testing.T) (*storage.MemStorage, int, []int) {
	t.Helper()

	s := storage.NewMemStorage()
	user, err := s.CreateUser(models.User{Email: "dash@example.com", Name: "Dash", EnergyScore: 50})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	ac, _ := s.CreateAppliance(models.InsertAppliance{UserID: user.ID, Name: "AC", Type: "cooling", PowerRating: 1500})
	tv, _ := s.CreateAppliance(models.InsertAppliance{UserID: user.ID, Name: "TV", Type: "entertainment", PowerRating: 120})

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	// AC dominates the week; only today's records count toward today's totals.
	s.CreateUsageRecord(models.InsertUsageRecord{UserID: user.ID, ApplianceID: ac.ID, Date: today, UnitsConsumed: 5.25, Cost: 42})
	s.CreateUsageRecord(models.InsertUsageRecord{UserID: user.ID, ApplianceID: ac.ID, Date: yesterday, UnitsConsumed: 6, Cost: 48})
	s.CreateUsageRecord(models.InsertUsageRecord{UserID: user.ID, ApplianceID: tv.ID, Date: today, UnitsConsumed: 1.1, Cost: 8.4})

	return s, user.ID, []int{ac.ID, tv.ID}
}

func TestDashboardStats(t *testing.T) {
	s, userID, applianceIDs := seedDashboardData(t)

	stats, err := NewDashboardService(s).GetStats(userID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	// 5.25 + 1.1 rounded to one decimal.
	if math.Abs(stats.TodayUsage-6.4) > 1e-9 {
		t.Errorf("TodayUsage = %v, want 6.4", stats.TodayUsage)
	}
	// 42 + 8.4 rounded to whole rupees.
	if stats.TodayCost != 50 {
		t.Errorf("TodayCost = %v, want 50", stats.TodayCost)
	}

	if stats.TopAppliance == nil {
		t.Fatal("TopAppliance is nil")
	}
	if stats.TopAppliance.ID != applianceIDs[0] {
		t.Errorf("TopAppliance.ID = %d, want AC (%d)", stats.TopAppliance.ID, applianceIDs[0])
	}
	if math.Abs(stats.TopAppliance.Consumption-11.25) > 1e-9 {
		t.Errorf("TopAppliance.Consumption = %v, want 11.25", stats.TopAppliance.Consumption)
	}

	if len(stats.WeeklyUsage) != 3 {
		t.Errorf("WeeklyUsage has %d points, want 3", len(stats.WeeklyUsage))
	}
}

func TestDashboardStatsLatestBillAndTip(t *testing.T) {
	s, userID, _ := seedDashboardData(t)

	s.CreateBill(models.InsertBill{UserID: userID, CurrentMonth: "2025-06", BillTotal: 1200})
	latestBill, _ := s.CreateBill(models.InsertBill{UserID: userID, CurrentMonth: "2025-07", BillTotal: 1350})
	s.CreateTip(models.InsertAiTip{UserID: userID, Title: "first", Description: "d", Category: "home"})
	latestTip, _ := s.CreateTip(models.InsertAiTip{UserID: userID, Title: "second", Description: "d", Category: "timing"})

	stats, err := NewDashboardService(s).GetStats(userID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if stats.LatestBill == nil || stats.LatestBill.ID != latestBill.ID {
		t.Errorf("LatestBill = %+v, want id %d", stats.LatestBill, latestBill.ID)
	}
	if stats.LatestTip == nil || stats.LatestTip.ID != latestTip.ID {
		t.Errorf("LatestTip = %+v, want id %d", stats.LatestTip, latestTip.ID)
	}
}

func TestDashboardStatsEmptyUser(t *testing.T) {
	s := storage.NewMemStorage()
	user, _ := s.CreateUser(models.User{Email: "empty@example.com"})

	stats, err := NewDashboardService(s).GetStats(user.ID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if stats.TodayUsage != 0 || stats.TodayCost != 0 {
		t.Errorf("totals = %v / %v, want zeros", stats.TodayUsage, stats.TodayCost)
	}
	if stats.TopAppliance != nil || stats.LatestBill != nil || stats.LatestTip != nil {
		t.Errorf("expected nil highlights, got %+v", stats)
	}
	if stats.WeeklyUsage == nil || len(stats.WeeklyUsage) != 0 {
		t.Errorf("WeeklyUsage = %v, want empty non-nil slice", stats.WeeklyUsage)
	}
}
