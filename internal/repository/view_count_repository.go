package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
)

// ViewCountRepository defines persistence operations for per-client view
// tallies.
type ViewCountRepository interface {
	FindByClientID(ctx context.Context, clientID uuid.UUID) (*model.ViewCount, error)
	Save(ctx context.Context, viewCount *model.ViewCount) error
}

type viewCountRepository struct {
	db *gorm.DB
}

// NewViewCountRepository builds a GORM-backed repository.
func NewViewCountRepository(db *gorm.DB) ViewCountRepository {
	return &viewCountRepository{db: db}
}

func (r *viewCountRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) (*model.ViewCount, error) {
	var viewCount model.ViewCount
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&viewCount).Error; err != nil {
		return nil, err
	}
	return &viewCount, nil
}

func (r *viewCountRepository) Save(ctx context.Context, viewCount *model.ViewCount) error {
	return r.db.WithContext(ctx).Save(viewCount).Error
}
