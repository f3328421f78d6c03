package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/payments"
	"fitnexus_backend/internal/repositories"
	"fitnexus_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Booking ---
var (
	ErrBookingValidation  = errors.New("booking data validation error")
	ErrPaymentIncomplete  = errors.New("payment failed or incomplete")
	ErrPaymentProvider    = errors.New("payment provider error")
	ErrBookingPersistence = errors.New("charge captured but booking could not be persisted")
)

const (
	featuredClassLimit = 6
	fallbackTitle      = "No title"
	fallbackDesc       = "No description"
)

// --- Booking DTOs ---
type CreateBookingRequest struct {
	UserName        string                        `json:"userName"`
	TrainerName     string                        `json:"trainerName"`
	Day             string                        `json:"day"`
	Time            string                        `json:"time"`
	SelectedClasses []string                      `json:"selectedClasses"`
	PackageName     string                        `json:"packageName"`
	PackagePrice    float64                       `json:"packagePrice"`
	Notes           *string                       `json:"notes"`
	Email           string                        `json:"email" binding:"required,email"`
	Amount          float64                       `json:"amount" binding:"required"`
	PaymentMethodID string                        `json:"paymentMethodId" binding:"required"`
	ClassDetails    map[string]models.ClassDetail `json:"classDetails"`
	IdempotencyKey  *string                       `json:"idempotencyKey"`
}

// BookingResult is the pipeline outcome returned to the handler.
type BookingResult struct {
	RequiresAction bool
	ClientSecret   string
	Booking        *models.Booking
	Replayed       bool
}

// FeaturedCache is the optional ranking cache for most-booked classes.
type FeaturedCache interface {
	Get() ([]models.ClassPopularity, bool)
	Set(ranking []models.ClassPopularity)
	Invalidate()
}

// --- BookingService Interface ---
type BookingService interface {
	CreateBookingWithPayment(ctx context.Context, req CreateBookingRequest) (*BookingResult, error)
	GetBookingsByEmail(email string) ([]models.Booking, error)
	GetMostBookedClasses() ([]models.ClassPopularity, error)
}

// --- bookingService Implementation ---
type bookingService struct {
	bookingRepo repositories.BookingRepository
	provider    payments.Provider
	cache       FeaturedCache // may be nil
	returnURL   string
	db          *sql.DB
}

// NewBookingService creates a new instance of BookingService.
func NewBookingService(
	br repositories.BookingRepository,
	provider payments.Provider,
	cache FeaturedCache,
	returnURL string,
	db *sql.DB,
) BookingService {
	return &bookingService{
		bookingRepo: br,
		provider:    provider,
		cache:       cache,
		returnURL:   returnURL,
		db:          db,
	}
}

func (s *bookingService) validateBookingRequest(req CreateBookingRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrBookingValidation)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrBookingValidation)
	}
	if strings.TrimSpace(req.PaymentMethodID) == "" {
		return fmt.Errorf("%w: paymentMethodId is required", ErrBookingValidation)
	}
	if req.IdempotencyKey != nil {
		if _, err := uuid.Parse(*req.IdempotencyKey); err != nil {
			return fmt.Errorf("%w: idempotencyKey must be a UUID", ErrBookingValidation)
		}
	}
	return nil
}

// CreateBookingWithPayment runs the booking pipeline: optional idempotent
// replay, charge capture, then booking + popularity counters in one
// transaction. Nothing is persisted unless the provider reports success.
func (s *bookingService) CreateBookingWithPayment(ctx context.Context, req CreateBookingRequest) (*BookingResult, error) {
	if err := s.validateBookingRequest(req); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != nil {
		existing, err := s.bookingRepo.GetBookingByIdempotencyKey(*req.IdempotencyKey)
		if err == nil {
			return &BookingResult{Booking: existing, Replayed: true}, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, payments.ChargeRequest{
		AmountCents:     utils.DollarsToCents(req.Amount),
		Currency:        "usd",
		PaymentMethodID: req.PaymentMethodID,
		ReturnURL:       s.returnURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	if intent.RequiresClientAction() {
		// Halt before persistence; the client finishes confirmation with the
		// continuation token and retries.
		return &BookingResult{RequiresAction: true, ClientSecret: intent.ClientSecret}, nil
	}
	if intent.Status != payments.StatusSucceeded {
		return nil, fmt.Errorf("%w: provider status '%s'", ErrPaymentIncomplete, intent.Status)
	}

	booking := &models.Booking{
		UserName:        req.UserName,
		TrainerName:     req.TrainerName,
		Day:             req.Day,
		SlotTime:        req.Time,
		SelectedClasses: req.SelectedClasses,
		PackageName:     req.PackageName,
		PackagePrice:    req.PackagePrice,
		Notes:           req.Notes,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Amount:          req.Amount,
		PaymentStatus:   intent.Status,
		PaymentIntentID: intent.ID,
		IdempotencyKey:  req.IdempotencyKey,
	}
	if booking.SelectedClasses == nil {
		booking.SelectedClasses = []string{}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w (intent %s): %v", ErrBookingPersistence, intent.ID, err)
	}
	defer tx.Rollback()

	booking, err = s.bookingRepo.CreateBooking(tx, booking)
	if err != nil {
		return nil, fmt.Errorf("%w (intent %s): %v", ErrBookingPersistence, intent.ID, err)
	}

	for _, className := range booking.SelectedClasses {
		title, description := fallbackTitle, fallbackDesc
		if detail, ok := req.ClassDetails[className]; ok {
			if detail.Title != "" {
				title = detail.Title
			}
			if detail.Description != "" {
				description = detail.Description
			}
		}
		if err := s.bookingRepo.IncrementClassPopularity(tx, className, title, description); err != nil {
			return nil, fmt.Errorf("%w (intent %s): %v", ErrBookingPersistence, intent.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w (intent %s): %v", ErrBookingPersistence, intent.ID, err)
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}
	return &BookingResult{Booking: booking}, nil
}

func (s *bookingService) GetBookingsByEmail(email string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.GetBookingsByEmail(strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// GetMostBookedClasses serves the featured ranking through the cache when one
// is configured.
func (s *bookingService) GetMostBookedClasses() ([]models.ClassPopularity, error) {
	if s.cache != nil {
		if ranking, ok := s.cache.Get(); ok {
			return ranking, nil
		}
	}

	ranking, err := s.bookingRepo.GetMostBookedClasses(featuredClassLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list most booked classes: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ranking)
	}
	return ranking, nil
}
