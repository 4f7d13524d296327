package models

import "time"

type Appliance struct {
	ID               int       `json:"id"`
	UserID           int       `json:"userId"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Specs            string    `json:"specs"`
	PowerRating      int       `json:"powerRating"` // watts
	StarRating       int       `json:"starRating"`
	Age              int       `json:"age"` // years
	UsageHoursPerDay float64   `json:"usageHoursPerDay"`
	UsageStartTime   string    `json:"usageStartTime"` // e.g. "18:00"
	UsageEndTime     string    `json:"usageEndTime"`
	Icon             string    `json:"icon"`
	CreatedAt        time.Time `json:"createdAt"`
}

type InsertAppliance struct {
	UserID           int     `json:"userId" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Type             string  `json:"type" binding:"required"`
	Specs            string  `json:"specs"`
	PowerRating      int     `json:"powerRating" binding:"required"`
	StarRating       int     `json:"starRating"`
	Age              int     `json:"age"`
	UsageHoursPerDay float64 `json:"usageHoursPerDay"`
	UsageStartTime   string  `json:"usageStartTime"`
	UsageEndTime     string  `json:"usageEndTime"`
	Icon             string  `json:"icon"`
}

// UpdateAppliance carries a partial update; nil fields are left untouched.
type UpdateAppliance struct {
	Name             *string  `json:"name"`
	Type             *string  `json:"type"`
	Specs            *string  `json:"specs"`
	PowerRating      *int     `json:"powerRating"`
	StarRating       *int     `json:"starRating"`
	Age              *int     `json:"age"`
	UsageHoursPerDay *float64 `json:"usageHoursPerDay"`
	UsageStartTime   *string  `json:"usageStartTime"`
	UsageEndTime     *string  `json:"usageEndTime"`
	Icon             *string  `json:"icon"`
}
