package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/repository/base"
)

type ServiceRepository struct {
	*base.Repository
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{Repository: base.NewRepository(pool)}
}

// GetByID returns the service or nil when absent.
func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*model.Service, error) {
	var service *model.Service
	err := r.Do(ctx, func(ctx context.Context) error {
		var s model.Service
		err := r.Pool().QueryRow(ctx, `
			SELECT id, title, description, category, price, duration, is_active, created_at
			FROM services
			WHERE id = $1
		`, id).Scan(&s.ID, &s.Title, &s.Description, &s.Category, &s.Price, &s.Duration, &s.IsActive, &s.CreatedAt)
		if err != nil {
			if base.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("get service by id: %w", err)
		}
		service = &s
		return nil
	})
	return service, err
}

// List returns the active catalog.
func (r *ServiceRepository) List(ctx context.Context) ([]*model.Service, error) {
	var services []*model.Service
	err := r.Do(ctx, func(ctx context.Context) error {
		rows, err := r.Pool().Query(ctx, `
			SELECT id, title, description, category, price, duration, is_active, created_at
			FROM services
			WHERE is_active
			ORDER BY title
		`)
		if err != nil {
			return fmt.Errorf("list services: %w", err)
		}
		defer rows.Close()

		services = services[:0]
		for rows.Next() {
			var s model.Service
			if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Category, &s.Price, &s.Duration, &s.IsActive, &s.CreatedAt); err != nil {
				return fmt.Errorf("scan service: %w", err)
			}
			services = append(services, &s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return services, nil
}
