package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/model"
	"github.com/smarttutor/backend/internal/service/ports"
)

// CatalogService exposes read-only access to the service catalog.
type CatalogService struct {
	services ports.ServiceStore
	logger   *zap.Logger
}

func NewCatalogService(services ports.ServiceStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{services: services, logger: logger}
}

func (s *CatalogService) List(ctx context.Context) ([]*model.Service, error) {
	return s.services.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, model.ErrServiceNotFound
	}
	return svc, nil
}
