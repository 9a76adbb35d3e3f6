package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/metrics"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/repository"
)

// ViewService tracks per-client detail views in two places: the
// Prometheus counter and a persisted row. The two writes are not
// transactional; the metrics increment happens first and a crash between
// them lets the exporter and the persisted count diverge.
type ViewService interface {
	RecordView(ctx context.Context, clientID uuid.UUID) error
	// Count returns the persisted tally, 0 when no row exists.
	Count(ctx context.Context, clientID uuid.UUID) (int64, error)
}

type viewService struct {
	repo     repository.ViewCountRepository
	registry *metrics.Registry
}

// NewViewService creates a new view service.
func NewViewService(repo repository.ViewCountRepository, registry *metrics.Registry) ViewService {
	return &viewService{
		repo:     repo,
		registry: registry,
	}
}

func (s *viewService) RecordView(ctx context.Context, clientID uuid.UUID) error {
	s.registry.IncClientViews(clientID.String())

	viewCount, err := s.repo.FindByClientID(ctx, clientID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("load view count: %w", err)
		}
		viewCount = &model.ViewCount{
			ClientID: clientID,
			Count:    0,
		}
	}

	viewCount.Count++
	if err := s.repo.Save(ctx, viewCount); err != nil {
		return fmt.Errorf("save view count: %w", err)
	}
	return nil
}

func (s *viewService) Count(ctx context.Context, clientID uuid.UUID) (int64, error) {
	viewCount, err := s.repo.FindByClientID(ctx, clientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("load view count: %w", err)
	}
	return viewCount.Count, nil
}
