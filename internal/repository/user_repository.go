package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/repository/base"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// GetByID returns the user or nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user *model.User
	err := r.Do(ctx, func(ctx context.Context) error {
		var u model.User
		err := r.Pool().QueryRow(ctx, `
			SELECT id, name, email, role, rating_sum, rating_count, average_rating, created_at
			FROM users
			WHERE id = $1
		`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.RatingSum, &u.RatingCount, &u.AverageRating, &u.CreatedAt)
		if err != nil {
			if base.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("get user by id: %w", err)
		}
		user = &u
		return nil
	})
	return user, err
}

// ListTutors returns all tutors, best rated first.
func (r *UserRepository) ListTutors(ctx context.Context) ([]*model.User, error) {
	var tutors []*model.User
	err := r.Do(ctx, func(ctx context.Context) error {
		rows, err := r.Pool().Query(ctx, `
			SELECT id, name, email, role, rating_sum, rating_count, average_rating, created_at
			FROM users
			WHERE role = 'tutor'
			ORDER BY average_rating DESC, name
		`)
		if err != nil {
			return fmt.Errorf("list tutors: %w", err)
		}
		defer rows.Close()

		tutors = tutors[:0]
		for rows.Next() {
			var u model.User
			if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.RatingSum, &u.RatingCount, &u.AverageRating, &u.CreatedAt); err != nil {
				return fmt.Errorf("scan tutor: %w", err)
			}
			tutors = append(tutors, &u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return tutors, nil
}

// ApplyRating folds one rating into the tutor's running aggregate in a single
// statement, so concurrent submissions never lose an increment.
func (r *UserRepository) ApplyRating(ctx context.Context, tutorID string, rating int) (float64, error) {
	var avg float64
	err := r.Do(ctx, func(ctx context.Context) error {
		err := r.Pool().QueryRow(ctx, `
			UPDATE users
			SET rating_sum = rating_sum + $2,
			    rating_count = rating_count + 1,
			    average_rating = round((rating_sum + $2)::numeric / (rating_count + 1), 1)
			WHERE id = $1 AND role = 'tutor'
			RETURNING average_rating
		`, tutorID, rating).Scan(&avg)
		if err != nil {
			if base.IsNotFound(err) {
				return model.ErrTutorNotFound
			}
			return fmt.Errorf("apply rating: %w", err)
		}
		return nil
	})
	return avg, err
}
