package models

import "time"

// Booking is created exactly once per successful payment capture and is
// immutable thereafter.
type Booking struct {
	ID              int64     `json:"id" db:"id"`
	UserName        string    `json:"userName" db:"user_name"`
	TrainerName     string    `json:"trainerName" db:"trainer_name"`
	Day             string    `json:"day" db:"day"`
	SlotTime        string    `json:"time" db:"slot_time"`
	SelectedClasses []string  `json:"selectedClasses" db:"selected_classes"`
	PackageName     string    `json:"packageName" db:"package_name"`
	PackagePrice    float64   `json:"packagePrice" db:"package_price"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	Email           string    `json:"email" db:"email"`
	Amount          float64   `json:"amount" db:"amount"`
	PaymentStatus   string    `json:"paymentStatus" db:"payment_status"`
	PaymentIntentID string    `json:"paymentIntentId" db:"payment_intent_id"`
	IdempotencyKey  *string   `json:"idempotencyKey,omitempty" db:"idempotency_key"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// ClassPopularity is a per-class running count of confirmed bookings, used
// to rank featured classes. booking_count only ever grows.
type ClassPopularity struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	BookingCount int64  `json:"bookingCount" db:"booking_count"`
}

// ClassDetail is the client-supplied per-class metadata attached to a booking payload.
type ClassDetail struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
