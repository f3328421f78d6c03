package services

import (
	"fmt"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/repositories"
)

const lastPaymentsLimit = 6

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// --- StatsService Interface ---
type StatsService interface {
	GetAdminStats() (*models.AdminStats, error)
	GetChartStats() (*models.ChartStats, error)
	GetRevenueHistory() ([]models.MonthlyRevenue, error)
}

// --- statsService Implementation ---
type statsService struct {
	statsRepo      repositories.StatsRepository
	userRepo       repositories.UserRepository
	newsletterRepo repositories.NewsletterRepository
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(sr repositories.StatsRepository, ur repositories.UserRepository, nr repositories.NewsletterRepository) StatsService {
	return &statsService{statsRepo: sr, userRepo: ur, newsletterRepo: nr}
}

func (s *statsService) GetAdminStats() (*models.AdminStats, error) {
	total, err := s.statsRepo.GetTotalRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	last, err := s.statsRepo.GetLastPayments(lastPaymentsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last payments: %w", err)
	}
	return &models.AdminStats{TotalRevenue: total, LastSixPayments: last}, nil
}

func (s *statsService) GetChartStats() (*models.ChartStats, error) {
	subscribers, err := s.newsletterRepo.CountSubscribers()
	if err != nil {
		return nil, fmt.Errorf("failed to count subscribers: %w", err)
	}
	members, err := s.userRepo.CountUsersByRole(string(models.UserRoleMember))
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	return &models.ChartStats{SubscribersCount: subscribers, PaidMembersCount: members}, nil
}

// GetRevenueHistory converts month buckets into labeled entries, ascending by month.
func (s *statsService) GetRevenueHistory() ([]models.MonthlyRevenue, error) {
	rows, err := s.statsRepo.GetMonthlyRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch revenue history: %w", err)
	}

	history := []models.MonthlyRevenue{}
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		history = append(history, models.MonthlyRevenue{
			Month:  monthNames[row.Month-1],
			Amount: row.Amount,
		})
	}
	return history, nil
}
