package model

import (
	"math"
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	// Running feedback aggregate, maintained for tutors only. The average is
	// derived from sum/count and stored rounded to one decimal for display.
	RatingSum     int       `json:"-"`
	RatingCount   int       `json:"rating_count,omitempty"`
	AverageRating float64   `json:"average_rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Actor is the authenticated caller identity supplied by the auth layer.
// Credentials are verified upstream; services trust it as-is.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// RoundRating computes the display average from a running sum and count,
// rounded to one decimal place.
func RoundRating(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}
