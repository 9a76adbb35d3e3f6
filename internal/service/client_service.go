package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/cache"
	apperrors "github.com/joaomluz/desafio-teddy-open-finance/internal/errors"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/repository"
)

const clientCacheTTL = 5 * time.Minute

// CreateClientInput carries the validated fields for a new client record.
type CreateClientInput struct {
	Name         string
	Salary       decimal.Decimal
	CompanyValue decimal.Decimal
}

// UpdateClientInput carries a partial update; nil fields keep their
// prior values.
type UpdateClientInput struct {
	Name         *string
	Salary       *decimal.Decimal
	CompanyValue *decimal.Decimal
}

// ClientService handles the client record lifecycle. Updates are
// last-write-wins: no version field, concurrent writers may overwrite
// each other.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*model.Client, error)
	// List returns every record including soft-deleted ones, newest first.
	List(ctx context.Context) ([]model.Client, error)
	// GetByID finds a record by id; soft-deleted records are found too.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*model.Client, error)
	// SoftDelete stamps deleted_at. Deleting twice refreshes the stamp.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	repo  repository.ClientRepository
	cache *cache.Client
}

// NewClientService creates a new client service.
func NewClientService(repo repository.ClientRepository, cache *cache.Client) ClientService {
	return &clientService{
		repo:  repo,
		cache: cache,
	}
}

func (s *clientService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("client:%s", id.String())
}

func (s *clientService) Create(ctx context.Context, input CreateClientInput) (*model.Client, error) {
	client := &model.Client{
		Name:         input.Name,
		Salary:       input.Salary,
		CompanyValue: input.CompanyValue,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context) ([]model.Client, error) {
	return s.repo.List(ctx)
}

// GetByID reads through the cache. Cached entries are invalidated on
// every write, so a hit is at worst clientCacheTTL stale under external
// database edits only.
func (s *clientService) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Client
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(client); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, clientCacheTTL)
	}

	return client, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*model.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Salary != nil {
		client.Salary = *input.Salary
	}
	if input.CompanyValue != nil {
		client.CompanyValue = *input.CompanyValue
	}

	if err := s.repo.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return client, nil
}

func (s *clientService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrClientNotFound
		}
		return err
	}

	if err := s.repo.SoftDelete(ctx, id, time.Now()); err != nil {
		return fmt.Errorf("soft delete client: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
