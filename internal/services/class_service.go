package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/repositories"
)

// ErrClassValidation covers invalid class payloads.
var ErrClassValidation = errors.New("class data validation error")

const defaultClassPageLimit = 10

// --- Class DTOs ---
type CreateClassRequest struct {
	Title          string  `json:"title" binding:"required"`
	Image          *string `json:"image"`
	TrainerName    *string `json:"trainerName"`
	AvailableSeats int     `json:"availableSeats"`
	Price          float64 `json:"price"`
	Category       *string `json:"category"`
	Description    *string `json:"description"`
}

// --- ClassService Interface ---
type ClassService interface {
	CreateClass(req CreateClassRequest) (*models.Class, error)
	GetClasses(filters models.ClassFilters) ([]models.Class, int, error)
	GetPackages() ([]models.Package, error)
}

// --- classService Implementation ---
type classService struct {
	classRepo repositories.ClassRepository
	db        *sql.DB
}

// NewClassService creates a new instance of ClassService.
func NewClassService(cr repositories.ClassRepository, db *sql.DB) ClassService {
	return &classService{classRepo: cr, db: db}
}

func (s *classService) CreateClass(req CreateClassRequest) (*models.Class, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrClassValidation)
	}
	if req.AvailableSeats < 0 {
		return nil, fmt.Errorf("%w: availableSeats cannot be negative", ErrClassValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrClassValidation)
	}

	class := &models.Class{
		Title:          strings.TrimSpace(req.Title),
		Image:          req.Image,
		TrainerName:    req.TrainerName,
		AvailableSeats: req.AvailableSeats,
		Price:          req.Price,
		Category:       req.Category,
		Description:    req.Description,
	}

	created, err := s.classRepo.CreateClass(s.db, class)
	if err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}
	return created, nil
}

// GetClasses normalizes paging inputs before querying; total is the full
// matching count regardless of page.
func (s *classService) GetClasses(filters models.ClassFilters) ([]models.Class, int, error) {
	filters = NormalizeClassFilters(filters)

	classes, total, err := s.classRepo.GetClasses(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, total, nil
}

// NormalizeClassFilters applies paging defaults (page 1, limit 10, newest first).
func NormalizeClassFilters(filters models.ClassFilters) models.ClassFilters {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.Limit <= 0 {
		filters.Limit = defaultClassPageLimit
	}
	if filters.Sort != "oldest" {
		filters.Sort = "newest"
	}
	return filters
}

func (s *classService) GetPackages() ([]models.Package, error) {
	packages, err := s.classRepo.GetPackages()
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}
