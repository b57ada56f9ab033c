package ports

import (
	"context"

	"github.com/smarttutor/backend/internal/model"
)

// UserStore is the user directory contract.
type UserStore interface {
	// GetByID returns the user or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*model.User, error)

	ListTutors(ctx context.Context) ([]*model.User, error)

	// ApplyRating atomically folds one feedback rating into the tutor's
	// running aggregate and returns the new display average.
	ApplyRating(ctx context.Context, tutorID string, rating int) (float64, error)
}
