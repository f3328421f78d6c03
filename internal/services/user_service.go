package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/repositories"
)

// --- Custom Service Errors for Users ---
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already registered")
	ErrUserValidation = errors.New("user data validation error")
)

// --- User DTOs ---
type CreateUserRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	PhotoURL  *string `json:"photoURL"`
	Role      string  `json:"role"`
	CreatedAt *string `json:"createdAt"` // client-supplied, informational only
}

// --- UserService Interface ---
type UserService interface {
	CreateUser(req CreateUserRequest) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetRoleByEmail(email string) (string, error)
	UpdateProfile(email string, req models.UpdateProfileRequest) error
}

// --- userService Implementation ---
type userService struct {
	userRepo repositories.UserRepository
	db       *sql.DB
}

// NewUserService creates a new instance of UserService.
func NewUserService(ur repositories.UserRepository, db *sql.DB) UserService {
	return &userService{userRepo: ur, db: db}
}

// CreateUser stores the profile created after external-identity signup.
// Role defaults to member; arbitrary roles from the client are rejected.
func (s *userService) CreateUser(req CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = string(models.UserRoleMember)
	}
	if !models.IsValidUserRole(role) {
		return nil, fmt.Errorf("%w: invalid role '%s'", ErrUserValidation, role)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		PhotoURL: req.PhotoURL,
		Role:     role,
	}

	created, err := s.userRepo.CreateUser(s.db, user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetRoleByEmail(email string) (string, error) {
	role, err := s.userRepo.GetRoleByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

func (s *userService) UpdateProfile(email string, req models.UpdateProfileRequest) error {
	err := s.userRepo.UpdateProfile(s.db, strings.ToLower(email), req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
