package model

import "time"

// Service is a bookable catalog entry owned by the marketplace. Price and
// duration are read at booking time; later edits never touch past bookings.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int       `json:"price"`    // cents
	Duration    int       `json:"duration"` // minutes
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
