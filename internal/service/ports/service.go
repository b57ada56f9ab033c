package ports

import (
	"context"

	"github.com/smarttutor/backend/internal/model"
)

// ServiceStore is the read-only service catalog contract.
type ServiceStore interface {
	// GetByID returns the service or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*model.Service, error)

	List(ctx context.Context) ([]*model.Service, error)
}
