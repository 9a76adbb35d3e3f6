package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
)

// ClientRepository defines persistence operations for client records.
// Reads are unscoped: soft-deleted records are always visible to callers,
// which decide what to filter.
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	ListRecent(ctx context.Context, limit int) ([]model.Client, error)
	Save(ctx context.Context, client *model.Client) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository builds a GORM-backed repository.
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := r.db.WithContext(ctx).Unscoped().Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) ListRecent(ctx context.Context, limit int) ([]model.Client, error) {
	var clients []model.Client
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Save(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Unscoped().Save(client).Error
}

// SoftDelete stamps deleted_at directly so that deleting an already
// deleted record refreshes the timestamp instead of failing.
func (r *clientRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.Client{}).
		Where("id = ?", id).
		Update("deleted_at", at).Error
}
