package models

import "time"

// Review is a member's rating of a trainer, created independently after a
// booking. No update or delete path exists.
type Review struct {
	ID          int64     `json:"id" db:"id"`
	TrainerID   *int64    `json:"trainerId,omitempty" db:"trainer_id"`
	TrainerName *string   `json:"trainerName,omitempty" db:"trainer_name"`
	UserName    string    `json:"userName" db:"user_name" binding:"required"`
	UserPhoto   *string   `json:"userPhoto,omitempty" db:"user_photo"`
	Rating      int       `json:"rating" db:"rating" binding:"required,min=1,max=5"`
	Feedback    *string   `json:"feedback,omitempty" db:"feedback"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ForumPost is an append-only community post.
type ForumPost struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" binding:"required"`
	Content     string    `json:"content" db:"content" binding:"required"`
	AuthorName  *string   `json:"authorName,omitempty" db:"author_name"`
	AuthorEmail *string   `json:"authorEmail,omitempty" db:"author_email"`
	AuthorRole  *string   `json:"authorRole,omitempty" db:"author_role"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ForumFilters defines pagination for forum listing.
type ForumFilters struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// NewsletterSubscriber is an append-only subscription record keyed by email.
type NewsletterSubscriber struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	SubscribedAt time.Time `json:"subscribedAt" db:"subscribed_at"`
}
