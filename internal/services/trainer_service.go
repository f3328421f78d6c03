package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/repositories"
)

// --- Custom Service Errors for Trainer workflows ---
var (
	ErrApplicationNotFound     = errors.New("trainer application not found")
	ErrTrainerNotFound         = errors.New("trainer not found")
	ErrUserForTrainerNotFound  = errors.New("user for trainer application not found")
	ErrInvalidApplicationState = errors.New("invalid application state for this transition")
	ErrApplicationValidation   = errors.New("application data validation error")
	ErrSlotNotFound            = errors.New("class slot not found")
	ErrNotSlotOwner            = errors.New("slot does not belong to the caller")
	ErrNotApplicationOwner     = errors.New("application does not belong to the caller")
)

// --- Trainer DTOs ---
type SubmitApplicationRequest struct {
	FullName      string   `json:"fullName" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Age           *int     `json:"age"`
	ProfileImage  *string  `json:"profileImage"`
	Skills        []string `json:"skills"`
	AvailableDays []string `json:"availableDays"`
	AvailableTime *string  `json:"availableTime"`
}

// --- TrainerService Interface ---
type TrainerService interface {
	SubmitApplication(req SubmitApplicationRequest) (*models.TrainerApplication, error)
	ApproveApplication(applicationID int64) (*models.TrainerProfile, error)
	RejectApplication(applicationID int64, feedback string) (*models.TrainerApplication, error)
	RemoveTrainer(profileID int64) error
	DeleteApplication(applicationID int64, callerEmail string, callerIsAdmin bool) error

	GetApplicationsByStatus(status string) ([]models.TrainerApplication, error)
	GetActivityLog(email string) ([]models.TrainerApplication, error)
	GetTrainers(sort string) ([]models.TrainerProfile, error)
	GetTrainerByID(id int64) (*models.TrainerProfile, error)
	GetTrainersBySkill(skill string) ([]models.TrainerProfile, error)

	GetMySlots(email string) ([]models.ClassSlot, error)
	DeleteSlot(slotID int64, callerEmail string) error
}

// --- trainerService Implementation ---
type trainerService struct {
	trainerRepo repositories.TrainerRepository
	userRepo    repositories.UserRepository
	db          *sql.DB
}

// NewTrainerService creates a new instance of TrainerService.
func NewTrainerService(tr repositories.TrainerRepository, ur repositories.UserRepository, db *sql.DB) TrainerService {
	return &trainerService{
		trainerRepo: tr,
		userRepo:    ur,
		db:          db,
	}
}

// SubmitApplication creates a pending application. Duplicate pending
// applications for one email are allowed; each submission is its own
// activity-log row.
func (s *trainerService) SubmitApplication(req SubmitApplicationRequest) (*models.TrainerApplication, error) {
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: fullName and email are required", ErrApplicationValidation)
	}

	app := &models.TrainerApplication{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Age:           req.Age,
		ProfileImage:  req.ProfileImage,
		Skills:        req.Skills,
		AvailableDays: req.AvailableDays,
		AvailableTime: req.AvailableTime,
		Status:        string(models.ApplicationStatusPending),
	}
	if app.Skills == nil {
		app.Skills = []string{}
	}
	if app.AvailableDays == nil {
		app.AvailableDays = []string{}
	}

	created, err := s.trainerRepo.CreateApplication(s.db, app)
	if err != nil {
		return nil, fmt.Errorf("failed to create trainer application: %w", err)
	}
	return created, nil
}

// ApproveApplication promotes a pending application in one transaction:
// application status, roster profile, seed slots, and the user's role all
// move together or not at all.
func (s *trainerService) ApproveApplication(applicationID int64) (*models.TrainerProfile, error) {
	app, err := s.trainerRepo.GetApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application for approval: %w", err)
	}
	if app.Status != string(models.ApplicationStatusPending) {
		return nil, fmt.Errorf("%w: cannot approve an application with status '%s'", ErrInvalidApplicationState, app.Status)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.trainerRepo.UpdateApplicationStatus(tx, app.ID, string(models.ApplicationStatusTrainer), nil); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	profile := &models.TrainerProfile{
		ApplicationID: app.ID,
		Email:         app.Email,
		FullName:      app.FullName,
		Age:           app.Age,
		ProfileImage:  app.ProfileImage,
		Skills:        app.Skills,
		AvailableDays: app.AvailableDays,
		AvailableTime: app.AvailableTime,
	}
	profile, err = s.trainerRepo.CreateProfile(tx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create trainer profile: %w", err)
	}

	for _, day := range app.AvailableDays {
		slot := &models.ClassSlot{
			TrainerID:    profile.ID,
			TrainerEmail: profile.Email,
			SlotName:     day + " slot",
			Day:          day,
			SlotTime:     app.AvailableTime,
		}
		if _, err := s.trainerRepo.CreateSlot(tx, slot); err != nil {
			return nil, fmt.Errorf("failed to seed class slot: %w", err)
		}
	}

	if err := s.userRepo.UpdateRoleByEmail(tx, app.Email, string(models.UserRoleTrainer)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserForTrainerNotFound
		}
		return nil, fmt.Errorf("failed to promote user role: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}
	return profile, nil
}

// RejectApplication denies a pending application and stores the admin's
// feedback verbatim. An empty feedback string is stored, not defaulted.
func (s *trainerService) RejectApplication(applicationID int64, feedback string) (*models.TrainerApplication, error) {
	app, err := s.trainerRepo.GetApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application for rejection: %w", err)
	}
	if app.Status != string(models.ApplicationStatusPending) {
		return nil, fmt.Errorf("%w: cannot reject an application with status '%s'", ErrInvalidApplicationState, app.Status)
	}

	if err := s.trainerRepo.UpdateApplicationStatus(s.db, app.ID, string(models.ApplicationStatusRejected), &feedback); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to reject application: %w", err)
	}
	return s.trainerRepo.GetApplicationByID(app.ID)
}

// RemoveTrainer demotes an approved trainer. The user row is resolved by the
// profile's email, the same key the approval path used, so the demotion
// always lands on the account that was promoted.
func (s *trainerService) RemoveTrainer(profileID int64) error {
	profile, err := s.trainerRepo.GetProfileByID(profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return fmt.Errorf("failed to load trainer profile for removal: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin removal transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.trainerRepo.UpdateApplicationStatus(tx, profile.ApplicationID, string(models.ApplicationStatusMember), nil); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to update application status: %w", err)
	}

	// Slots cascade with the profile row.
	if err := s.trainerRepo.DeleteProfile(tx, profile.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return fmt.Errorf("failed to delete trainer profile: %w", err)
	}

	if err := s.userRepo.UpdateRoleByEmail(tx, profile.Email, string(models.UserRoleMember)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserForTrainerNotFound
		}
		return fmt.Errorf("failed to demote user role: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit removal: %w", err)
	}
	return nil
}

// DeleteApplication removes an application. Non-admin callers may only delete
// their own.
func (s *trainerService) DeleteApplication(applicationID int64, callerEmail string, callerIsAdmin bool) error {
	app, err := s.trainerRepo.GetApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to load application for deletion: %w", err)
	}

	if !callerIsAdmin && !strings.EqualFold(app.Email, callerEmail) {
		return ErrNotApplicationOwner
	}

	if err := s.trainerRepo.DeleteApplication(s.db, app.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}

func (s *trainerService) GetApplicationsByStatus(status string) ([]models.TrainerApplication, error) {
	if status == "" {
		status = string(models.ApplicationStatusPending)
	}
	if !models.IsValidApplicationStatus(status) {
		return nil, fmt.Errorf("%w: invalid status '%s'", ErrApplicationValidation, status)
	}

	apps, err := s.trainerRepo.GetApplicationsByStatus(status)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *trainerService) GetActivityLog(email string) ([]models.TrainerApplication, error) {
	apps, err := s.trainerRepo.GetApplicationsForActivityLog(strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to load activity log: %w", err)
	}
	return apps, nil
}

func (s *trainerService) GetTrainers(sort string) ([]models.TrainerProfile, error) {
	profiles, err := s.trainerRepo.GetProfiles(sort != "oldest")
	if err != nil {
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}
	return profiles, nil
}

func (s *trainerService) GetTrainerByID(id int64) (*models.TrainerProfile, error) {
	profile, err := s.trainerRepo.GetProfileByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("failed to get trainer: %w", err)
	}
	return profile, nil
}

func (s *trainerService) GetTrainersBySkill(skill string) ([]models.TrainerProfile, error) {
	profiles, err := s.trainerRepo.GetProfilesBySkill(skill, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainers by skill: %w", err)
	}
	return profiles, nil
}

func (s *trainerService) GetMySlots(email string) ([]models.ClassSlot, error) {
	slots, err := s.trainerRepo.GetSlotsByTrainerEmail(strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (s *trainerService) DeleteSlot(slotID int64, callerEmail string) error {
	slot, err := s.trainerRepo.GetSlotByID(slotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("failed to load slot for deletion: %w", err)
	}

	if !strings.EqualFold(slot.TrainerEmail, callerEmail) {
		return ErrNotSlotOwner
	}

	if err := s.trainerRepo.DeleteSlot(s.db, slot.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}
