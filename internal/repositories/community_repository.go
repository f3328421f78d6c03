package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitnexus_backend/internal/models"
)

// ReviewRepository defines the interface for trainer reviews.
type ReviewRepository interface {
	CreateReview(executor SQLExecutor, review *models.Review) (*models.Review, error)
	GetReviews() ([]models.Review, error)
}

// ForumRepository defines the interface for community forum posts.
type ForumRepository interface {
	CreatePost(executor SQLExecutor, post *models.ForumPost) (*models.ForumPost, error)
	GetPosts(filters models.ForumFilters) ([]models.ForumPost, int, error)
	GetRecentPosts(limit int) ([]models.ForumPost, error)
}

// NewsletterRepository defines the interface for newsletter subscriptions.
type NewsletterRepository interface {
	CreateSubscriber(executor SQLExecutor, sub *models.NewsletterSubscriber) (*models.NewsletterSubscriber, error)
	GetSubscriberByEmail(email string) (*models.NewsletterSubscriber, error)
	GetSubscribers() ([]models.NewsletterSubscriber, error)
	CountSubscribers() (int64, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func scanReviewRow(row scanner) (*models.Review, error) {
	var review models.Review
	var trainerID sql.NullInt64
	var trainerName, userPhoto, feedback sql.NullString

	err := row.Scan(&review.ID, &trainerID, &trainerName, &review.UserName, &userPhoto,
		&review.Rating, &feedback, &review.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning review: %v", ErrDatabaseError, err)
	}

	if trainerID.Valid {
		review.TrainerID = &trainerID.Int64
	}
	if trainerName.Valid {
		review.TrainerName = &trainerName.String
	}
	if userPhoto.Valid {
		review.UserPhoto = &userPhoto.String
	}
	if feedback.Valid {
		review.Feedback = &feedback.String
	}
	return &review, nil
}

func (r *reviewRepository) CreateReview(executor SQLExecutor, review *models.Review) (*models.Review, error) {
	query := `INSERT INTO reviews (trainer_id, trainer_name, user_name, user_photo, rating, feedback, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`

	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		review.TrainerID, review.TrainerName, review.UserName, review.UserPhoto,
		review.Rating, review.Feedback, review.CreatedAt,
	).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating review: %v", ErrDatabaseError, err)
	}
	return review, nil
}

func (r *reviewRepository) GetReviews() ([]models.Review, error) {
	query := `SELECT id, trainer_id, trainer_name, user_name, user_photo, rating, feedback, created_at
	          FROM reviews ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing reviews: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		review, err := scanReviewRow(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, rows.Err()
}

type forumRepository struct {
	db *sql.DB
}

// NewForumRepository creates a new instance of ForumRepository.
func NewForumRepository(db *sql.DB) ForumRepository {
	return &forumRepository{db: db}
}

const selectForumFields = `id, title, content, author_name, author_email, author_role, created_at`

func scanForumRow(row scanner, isList bool) (*models.ForumPost, int, error) {
	var post models.ForumPost
	var authorName, authorEmail, authorRole sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&post.ID, &post.Title, &post.Content, &authorName, &authorEmail, &authorRole, &post.CreatedAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	err := row.Scan(scanDest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning forum post: %v", ErrDatabaseError, err)
	}

	if authorName.Valid {
		post.AuthorName = &authorName.String
	}
	if authorEmail.Valid {
		post.AuthorEmail = &authorEmail.String
	}
	if authorRole.Valid {
		post.AuthorRole = &authorRole.String
	}
	return &post, totalCount, nil
}

func (r *forumRepository) CreatePost(executor SQLExecutor, post *models.ForumPost) (*models.ForumPost, error) {
	query := `INSERT INTO forum_posts (title, content, author_name, author_email, author_role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		post.Title, post.Content, post.AuthorName, post.AuthorEmail, post.AuthorRole, post.CreatedAt,
	).Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating forum post: %v", ErrDatabaseError, err)
	}
	return post, nil
}

func (r *forumRepository) GetPosts(filters models.ForumFilters) ([]models.ForumPost, int, error) {
	query := "SELECT " + selectForumFields + `, COUNT(*) OVER() AS total_count FROM forum_posts
	          ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	offset := (filters.Page - 1) * filters.Limit
	rows, err := r.db.Query(query, filters.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing forum posts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	posts := []models.ForumPost{}
	totalCount := 0
	for rows.Next() {
		post, total, err := scanForumRow(rows, true)
		if err != nil {
			return nil, 0, err
		}
		totalCount = total
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: listing forum posts: %v", ErrDatabaseError, err)
	}

	if len(posts) == 0 {
		if err := r.db.QueryRow(`SELECT COUNT(*) FROM forum_posts`).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: counting forum posts: %v", ErrDatabaseError, err)
		}
	}
	return posts, totalCount, nil
}

func (r *forumRepository) GetRecentPosts(limit int) ([]models.ForumPost, error) {
	query := "SELECT " + selectForumFields + " FROM forum_posts ORDER BY created_at DESC LIMIT $1"
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing recent forum posts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	posts := []models.ForumPost{}
	for rows.Next() {
		post, _, err := scanForumRow(rows, false)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

type newsletterRepository struct {
	db *sql.DB
}

// NewNewsletterRepository creates a new instance of NewsletterRepository.
func NewNewsletterRepository(db *sql.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) CreateSubscriber(executor SQLExecutor, sub *models.NewsletterSubscriber) (*models.NewsletterSubscriber, error) {
	query := `INSERT INTO newsletter_subscribers (name, email, subscribed_at)
	          VALUES ($1, $2, $3)
	          RETURNING id, subscribed_at`

	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now()
	}

	err := executor.QueryRow(query, sub.Name, sub.Email, sub.SubscribedAt).Scan(&sub.ID, &sub.SubscribedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating subscriber: %v", ErrDatabaseError, err)
	}
	return sub, nil
}

func (r *newsletterRepository) GetSubscriberByEmail(email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	err := r.db.QueryRow(`SELECT id, name, email, subscribed_at FROM newsletter_subscribers WHERE email = $1`,
		email).Scan(&sub.ID, &sub.Name, &sub.Email, &sub.SubscribedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetching subscriber: %v", ErrDatabaseError, err)
	}
	return &sub, nil
}

func (r *newsletterRepository) GetSubscribers() ([]models.NewsletterSubscriber, error) {
	rows, err := r.db.Query(`SELECT id, name, email, subscribed_at FROM newsletter_subscribers ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing subscribers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	subs := []models.NewsletterSubscriber{}
	for rows.Next() {
		var sub models.NewsletterSubscriber
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.SubscribedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning subscriber: %v", ErrDatabaseError, err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *newsletterRepository) CountSubscribers() (int64, error) {
	var count int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting subscribers: %v", ErrDatabaseError, err)
	}
	return count, nil
}
