package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/service/ports"
)

// UserService exposes directory reads over the user store.
type UserService struct {
	users  ports.UserStore
	logger *zap.Logger
}

func NewUserService(users ports.UserStore, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// ListTutors returns all tutors with their aggregate ratings.
func (s *UserService) ListTutors(ctx context.Context) ([]*model.User, error) {
	return s.users.ListTutors(ctx)
}

// GetTutor returns one tutor.
func (s *UserService) GetTutor(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if u == nil || u.Role != model.RoleTutor {
		return nil, model.ErrTutorNotFound
	}
	return u, nil
}
