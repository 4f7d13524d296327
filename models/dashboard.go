package models

type DashboardStats struct {
	TodayUsage   float64            `json:"todayUsage"`
	TodayCost    float64            `json:"todayCost"`
	TopAppliance *TopAppliance      `json:"topAppliance"`
	LatestBill   *Bill              `json:"latestBill"`
	LatestTip    *AiTip             `json:"latestTip"`
	WeeklyUsage  []WeeklyUsagePoint `json:"weeklyUsage"`
}

type TopAppliance struct {
	Appliance
	Consumption float64 `json:"consumption"`
	Cost        float64 `json:"cost"`
}

type WeeklyUsagePoint struct {
	Date        string  `json:"date"`
	Consumption float64 `json:"consumption"`
	Cost        float64 `json:"cost"`
}
