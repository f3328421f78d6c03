package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fitnexus_backend/internal/email"
	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/repositories"
	"fitnexus_backend/pkg/utils"
)

// --- Custom Service Errors for community features ---
var (
	ErrReviewValidation    = errors.New("review data validation error")
	ErrForumValidation     = errors.New("forum post validation error")
	ErrSubscribeValidation = errors.New("name and email are required")
	ErrAlreadySubscribed   = errors.New("email already subscribed")
)

const (
	defaultForumPageLimit = 6
	recentForumLimit      = 6
)

// --- ReviewService Interface ---
type ReviewService interface {
	CreateReview(review *models.Review) (*models.Review, error)
	GetReviews() ([]models.Review, error)
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	db         *sql.DB
}

// NewReviewService creates a new instance of ReviewService.
func NewReviewService(rr repositories.ReviewRepository, db *sql.DB) ReviewService {
	return &reviewService{reviewRepo: rr, db: db}
}

func (s *reviewService) CreateReview(review *models.Review) (*models.Review, error) {
	if strings.TrimSpace(review.UserName) == "" {
		return nil, fmt.Errorf("%w: userName is required", ErrReviewValidation)
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrReviewValidation)
	}

	created, err := s.reviewRepo.CreateReview(s.db, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return created, nil
}

func (s *reviewService) GetReviews() ([]models.Review, error) {
	reviews, err := s.reviewRepo.GetReviews()
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// --- ForumService Interface ---
type ForumService interface {
	CreatePost(post *models.ForumPost) (*models.ForumPost, error)
	GetPosts(filters models.ForumFilters) ([]models.ForumPost, int, error)
	GetRecentPosts() ([]models.ForumPost, error)
}

type forumService struct {
	forumRepo repositories.ForumRepository
	db        *sql.DB
}

// NewForumService creates a new instance of ForumService.
func NewForumService(fr repositories.ForumRepository, db *sql.DB) ForumService {
	return &forumService{forumRepo: fr, db: db}
}

func (s *forumService) CreatePost(post *models.ForumPost) (*models.ForumPost, error) {
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrForumValidation)
	}

	created, err := s.forumRepo.CreatePost(s.db, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create forum post: %w", err)
	}
	return created, nil
}

func (s *forumService) GetPosts(filters models.ForumFilters) ([]models.ForumPost, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.Limit <= 0 {
		filters.Limit = defaultForumPageLimit
	}

	posts, total, err := s.forumRepo.GetPosts(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list forum posts: %w", err)
	}
	return posts, total, nil
}

func (s *forumService) GetRecentPosts() ([]models.ForumPost, error) {
	posts, err := s.forumRepo.GetRecentPosts(recentForumLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent forum posts: %w", err)
	}
	return posts, nil
}

// --- NewsletterService Interface ---
type NewsletterService interface {
	Subscribe(name, emailAddr string) (*models.NewsletterSubscriber, error)
	GetSubscribers() ([]models.NewsletterSubscriber, error)
}

type newsletterService struct {
	newsletterRepo repositories.NewsletterRepository
	mailer         email.Provider // may be nil
	db             *sql.DB
}

// NewNewsletterService creates a new instance of NewsletterService.
func NewNewsletterService(nr repositories.NewsletterRepository, mailer email.Provider, db *sql.DB) NewsletterService {
	return &newsletterService{newsletterRepo: nr, mailer: mailer, db: db}
}

// Subscribe records the subscription and sends the welcome mail best-effort;
// a mailer failure never fails the request.
func (s *newsletterService) Subscribe(name, emailAddr string) (*models.NewsletterSubscriber, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(emailAddr) == "" {
		return nil, ErrSubscribeValidation
	}

	sub := &models.NewsletterSubscriber{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(emailAddr)),
	}

	created, err := s.newsletterRepo.CreateSubscriber(s.db, sub)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	if s.mailer != nil {
		welcome := &email.Email{
			To:      []string{created.Email},
			Subject: "Welcome to the FitNexus newsletter",
			Body:    "Hi " + created.Name + ",\n\nThanks for subscribing. You'll hear from us about new classes and trainers.\n",
		}
		if err := s.mailer.Send(welcome); err != nil {
			utils.LogError(err, "Subscribe: failed to send welcome email")
		}
	}
	return created, nil
}

func (s *newsletterService) GetSubscribers() ([]models.NewsletterSubscriber, error) {
	subs, err := s.newsletterRepo.GetSubscribers()
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}
