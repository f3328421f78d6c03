package models

import "time"

// ApplicationStatus defines the type for trainer application statuses
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusTrainer  ApplicationStatus = "trainer"
	ApplicationStatusRejected ApplicationStatus = "rejected"
	ApplicationStatusMember   ApplicationStatus = "member"
)

// IsValidApplicationStatus checks if the provided status string is a valid ApplicationStatus.
func IsValidApplicationStatus(status string) bool {
	switch ApplicationStatus(status) {
	case ApplicationStatusPending,
		ApplicationStatusTrainer,
		ApplicationStatusRejected,
		ApplicationStatusMember:
		return true
	default:
		return false
	}
}

// TrainerApplication is a user's request to become a trainer. Transitions:
// pending -> trainer | rejected; trainer -> member (admin removal).
// rejected is terminal; a user submits a new application instead.
type TrainerApplication struct {
	ID            int64     `json:"id" db:"id"`
	FullName      string    `json:"fullName" db:"full_name" binding:"required"`
	Email         string    `json:"email" db:"email" binding:"required,email"`
	Age           *int      `json:"age,omitempty" db:"age"`
	ProfileImage  *string   `json:"profileImage,omitempty" db:"profile_image"`
	Skills        []string  `json:"skills" db:"skills"`
	AvailableDays []string  `json:"availableDays" db:"available_days"`
	AvailableTime *string   `json:"availableTime,omitempty" db:"available_time"`
	Status        string    `json:"status" db:"status"`
	Feedback      *string   `json:"feedback,omitempty" db:"feedback"`
	AppliedAt     time.Time `json:"appliedAt" db:"applied_at"`
}

// TrainerProfile is the public roster entry, created from an approved application.
type TrainerProfile struct {
	ID            int64     `json:"id" db:"id"`
	ApplicationID int64     `json:"applicationId" db:"application_id"`
	Email         string    `json:"email" db:"email"`
	FullName      string    `json:"fullName" db:"full_name"`
	Age           *int      `json:"age,omitempty" db:"age"`
	ProfileImage  *string   `json:"profileImage,omitempty" db:"profile_image"`
	Skills        []string  `json:"skills" db:"skills"`
	AvailableDays []string  `json:"availableDays" db:"available_days"`
	AvailableTime *string   `json:"availableTime,omitempty" db:"available_time"`
	ApprovedAt    time.Time `json:"approvedAt" db:"approved_at"`
}

// ClassSlot is a trainer-managed slot, seeded from the application's
// available days at approval time.
type ClassSlot struct {
	ID           int64     `json:"id" db:"id"`
	TrainerID    int64     `json:"trainerId" db:"trainer_id"`
	TrainerEmail string    `json:"trainerEmail" db:"trainer_email"`
	SlotName     string    `json:"slotName" db:"slot_name"`
	Day          string    `json:"day" db:"day"`
	SlotTime     *string   `json:"slotTime,omitempty" db:"slot_time"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
