package models

import "time"

// Class represents a class offering shown on the all-classes page.
type Class struct {
	ID             int64     `json:"id" db:"id"`
	Title          string    `json:"title" db:"title" binding:"required"`
	Image          *string   `json:"image,omitempty" db:"image"`
	TrainerName    *string   `json:"trainerName,omitempty" db:"trainer_name"`
	AvailableSeats int       `json:"availableSeats" db:"available_seats"`
	Price          float64   `json:"price" db:"price"`
	Category       *string   `json:"category,omitempty" db:"category"`
	Description    *string   `json:"description,omitempty" db:"description"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// ClassFilters defines the available filters for querying classes.
type ClassFilters struct {
	Title string `form:"title"`
	Sort  string `form:"sort"` // "newest" (default) or "oldest"
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

// Package is a booking package offered at checkout.
type Package struct {
	ID       int64    `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Price    float64  `json:"price" db:"price"`
	Features []string `json:"features" db:"features"`
}
