package models

import "time"

type AiTip struct {
	ID            int       `json:"id"`
	UserID        int       `json:"userId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"` // cooling, timing, home, ghost
	SavingsAmount float64   `json:"savingsAmount"`
	Difficulty    string    `json:"difficulty"` // Easy, Medium, Hard
	IsBookmarked  bool      `json:"isBookmarked"`
	CreatedAt     time.Time `json:"createdAt"`
}

type InsertAiTip struct {
	UserID        int     `json:"userId" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	SavingsAmount float64 `json:"savingsAmount"`
	Difficulty    string  `json:"difficulty"`
	IsBookmarked  bool    `json:"isBookmarked"`
}

type GenerateTipsRequest struct {
	UserID int `json:"userId" binding:"required"`
}

type BookmarkRequest struct {
	IsBookmarked *bool `json:"isBookmarked" binding:"required"`
}
