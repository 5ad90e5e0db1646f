package service

import (
	"context"

	"go-backoffice/internal/repository"
	"go-backoffice/internal/tenant"
)

type DashboardService interface {
	Stats(ctx context.Context, tc tenant.Context) (*repository.TenantCounts, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) Stats(ctx context.Context, tc tenant.Context) (*repository.TenantCounts, error) {
	return s.repo.Counts(ctx, tc)
}
