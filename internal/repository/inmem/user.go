package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/smarttutor/backend/internal/model"
)

type UserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func NewUserStore(users ...*model.User) *UserStore {
	s := &UserStore{users: make(map[string]*model.User)}
	for _, u := range users {
		s.Add(u)
	}
	return s
}

func (s *UserStore) Add(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}

func (s *UserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) ListTutors(_ context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tutors []*model.User
	for _, u := range s.users {
		if u.Role == model.RoleTutor {
			cp := *u
			tutors = append(tutors, &cp)
		}
	}
	sort.Slice(tutors, func(i, j int) bool {
		if tutors[i].AverageRating != tutors[j].AverageRating {
			return tutors[i].AverageRating > tutors[j].AverageRating
		}
		return tutors[i].Name < tutors[j].Name
	})
	return tutors, nil
}

func (s *UserStore) ApplyRating(_ context.Context, tutorID string, rating int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[tutorID]
	if !ok || u.Role != model.RoleTutor {
		return 0, model.ErrTutorNotFound
	}

	u.RatingSum += rating
	u.RatingCount++
	u.AverageRating = model.RoundRating(u.RatingSum, u.RatingCount)
	return u.AverageRating, nil
}
