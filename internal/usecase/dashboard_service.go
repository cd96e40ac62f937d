package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// DashboardService serves channel-level aggregates.
type DashboardService interface {
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.Video], error)
}

type dashboardService struct {
	views repository.ViewRepository
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(views repository.ViewRepository) DashboardService {
	return &dashboardService{views: views}
}

func (s *dashboardService) ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	return s.views.ChannelStats(ctx, channelID)
}

func (s *dashboardService) ChannelVideos(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.Video], error) {
	return s.views.ChannelVideos(ctx, channelID, req)
}
