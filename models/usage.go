package models

import "time"

type UsageRecord struct {
	ID            int       `json:"id"`
	UserID        int       `json:"userId"`
	ApplianceID   int       `json:"applianceId"`
	Date          string    `json:"date"` // YYYY-MM-DD
	UnitsConsumed float64   `json:"unitsConsumed"`
	Cost          float64   `json:"cost"`
	CreatedAt     time.Time `json:"createdAt"`
}

type InsertUsageRecord struct {
	UserID        int     `json:"userId" binding:"required"`
	ApplianceID   int     `json:"applianceId"`
	Date          string  `json:"date" binding:"required"`
	UnitsConsumed float64 `json:"unitsConsumed"`
	Cost          float64 `json:"cost"`
}
