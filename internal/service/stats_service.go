package service

import (
	"context"
	"fmt"
	"time"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/repository"
)

const recentClientsLimit = 5

// MonthCount is one calendar-month bucket of the creation histogram.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// DashboardStats is the aggregation result served on the dashboard.
type DashboardStats struct {
	TotalClients   int            `json:"totalClients"`
	ActiveClients  int            `json:"activeClients"`
	DeletedClients int            `json:"deletedClients"`
	RecentClients  []model.Client `json:"recentClients"`
	ClientsByMonth []MonthCount   `json:"clientsByMonth"`
}

// StatsService computes dashboard statistics. Every call rescans the
// full record set; nothing is cached.
type StatsService interface {
	ComputeStats(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	repo repository.ClientRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(repo repository.ClientRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) ComputeStats(ctx context.Context) (*DashboardStats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	recent, err := s.repo.ListRecent(ctx, recentClientsLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent clients: %w", err)
	}

	deleted := 0
	for _, c := range all {
		if c.Deleted() {
			deleted++
		}
	}

	return &DashboardStats{
		TotalClients:   len(all),
		ActiveClients:  len(all) - deleted,
		DeletedClients: deleted,
		RecentClients:  recent,
		ClientsByMonth: bucketByMonth(all),
	}, nil
}

// bucketByMonth groups records (soft-deleted included) by the calendar
// month of creation. Buckets appear in first-encounter order while
// scanning newest-first, which is what the dashboard consumes.
func bucketByMonth(clients []model.Client) []MonthCount {
	index := make(map[string]int, 12)
	buckets := make([]MonthCount, 0, 12)

	for _, c := range clients {
		label := monthLabel(c.CreatedAt)
		if i, ok := index[label]; ok {
			buckets[i].Count++
			continue
		}
		index[label] = len(buckets)
		buckets = append(buckets, MonthCount{Month: label, Count: 1})
	}

	return buckets
}

// ptBRMonths are the pt-BR abbreviated month names used for bucket labels.
var ptBRMonths = [...]string{
	"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s de %d", ptBRMonths[t.Month()-1], t.Year())
}
