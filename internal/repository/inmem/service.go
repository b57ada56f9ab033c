package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/smarttutor/backend/internal/model"
)

type ServiceStore struct {
	mu       sync.Mutex
	services map[string]*model.Service
}

func NewServiceStore(services ...*model.Service) *ServiceStore {
	s := &ServiceStore{services: make(map[string]*model.Service)}
	for _, svc := range services {
		s.Add(svc)
	}
	return s
}

func (s *ServiceStore) Add(svc *model.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *svc
	s.services[svc.ID] = &cp
}

func (s *ServiceStore) GetByID(_ context.Context, id string) (*model.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, nil
	}
	cp := *svc
	return &cp, nil
}

func (s *ServiceStore) List(_ context.Context) ([]*model.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Service
	for _, svc := range s.services {
		if svc.IsActive {
			cp := *svc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}
