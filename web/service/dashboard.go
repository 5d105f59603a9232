package service

import (
	"context"

	"github.com/partyhub/party-panel/logger"
	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/remote"
)

type DashboardService struct {
	api *remote.Client
}

func NewDashboardService(api *remote.Client) *DashboardService {
	return &DashboardService{api: api}
}

// Stats loads the dashboard counters. A viewer the API refuses statistics to
// gets an all-zero dashboard instead of an error.
func (s *DashboardService) Stats(ctx context.Context, token string) (*model.DashboardStats, error) {
	stats, err := s.api.DashboardStats(ctx, token)
	if remote.IsForbidden(err) {
		logger.Debug("dashboard stats forbidden, showing zeros")
		return &model.DashboardStats{}, nil
	}
	if err != nil {
		return nil, collapse("load dashboard stats", err)
	}
	return stats, nil
}
