package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitnexus_backend/internal/models"

	"github.com/lib/pq"
)

// BookingRepository covers persisted bookings and the per-class popularity counters.
type BookingRepository interface {
	CreateBooking(executor SQLExecutor, booking *models.Booking) (*models.Booking, error)
	GetBookingsByEmail(email string) ([]models.Booking, error)
	GetBookingByIdempotencyKey(key string) (*models.Booking, error)
	IncrementClassPopularity(executor SQLExecutor, name, title, description string) error
	GetMostBookedClasses(limit int) ([]models.ClassPopularity, error)
	GetClassPopularityByName(name string) (*models.ClassPopularity, error)
}

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const selectBookingFields = `id, user_name, trainer_name, day, slot_time, selected_classes,
	package_name, package_price, notes, email, amount, payment_status, payment_intent_id,
	idempotency_key, created_at`

func scanBookingRow(row scanner) (*models.Booking, error) {
	var booking models.Booking
	var notes sql.NullString
	var idempotencyKey sql.NullString

	err := row.Scan(&booking.ID, &booking.UserName, &booking.TrainerName, &booking.Day, &booking.SlotTime,
		pq.Array(&booking.SelectedClasses), &booking.PackageName, &booking.PackagePrice, &notes,
		&booking.Email, &booking.Amount, &booking.PaymentStatus, &booking.PaymentIntentID,
		&idempotencyKey, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning booking: %v", ErrDatabaseError, err)
	}

	if notes.Valid {
		booking.Notes = &notes.String
	}
	if idempotencyKey.Valid {
		booking.IdempotencyKey = &idempotencyKey.String
	}
	return &booking, nil
}

func (r *bookingRepository) CreateBooking(executor SQLExecutor, booking *models.Booking) (*models.Booking, error) {
	query := `INSERT INTO bookings
	            (user_name, trainer_name, day, slot_time, selected_classes, package_name, package_price,
	             notes, email, amount, payment_status, payment_intent_id, idempotency_key, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id, created_at`

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		booking.UserName, booking.TrainerName, booking.Day, booking.SlotTime,
		pq.Array(booking.SelectedClasses), booking.PackageName, booking.PackagePrice,
		booking.Notes, booking.Email, booking.Amount, booking.PaymentStatus,
		booking.PaymentIntentID, booking.IdempotencyKey, booking.CreatedAt,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating booking: %v", ErrDatabaseError, err)
	}
	return booking, nil
}

func (r *bookingRepository) GetBookingsByEmail(email string) ([]models.Booking, error) {
	query := "SELECT " + selectBookingFields + " FROM bookings WHERE email = $1 ORDER BY id DESC"
	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("%w: listing bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		booking, err := scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) GetBookingByIdempotencyKey(key string) (*models.Booking, error) {
	query := "SELECT " + selectBookingFields + " FROM bookings WHERE idempotency_key = $1"
	return scanBookingRow(r.db.QueryRow(query, key))
}

// IncrementClassPopularity bumps the counter for one class name, creating the
// row on first booking. Title and description always follow the latest payload.
func (r *bookingRepository) IncrementClassPopularity(executor SQLExecutor, name, title, description string) error {
	query := `INSERT INTO class_popularity (name, title, description, booking_count)
	          VALUES ($1, $2, $3, 1)
	          ON CONFLICT (name) DO UPDATE
	          SET booking_count = class_popularity.booking_count + 1,
	              title = EXCLUDED.title,
	              description = EXCLUDED.description`

	_, err := executor.Exec(query, name, title, description)
	if err != nil {
		return fmt.Errorf("%w: incrementing class popularity: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *bookingRepository) GetMostBookedClasses(limit int) ([]models.ClassPopularity, error) {
	query := `SELECT id, name, title, description, booking_count FROM class_popularity
	          ORDER BY booking_count DESC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing most booked classes: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counters := []models.ClassPopularity{}
	for rows.Next() {
		var c models.ClassPopularity
		if err := rows.Scan(&c.ID, &c.Name, &c.Title, &c.Description, &c.BookingCount); err != nil {
			return nil, fmt.Errorf("%w: scanning class popularity: %v", ErrDatabaseError, err)
		}
		counters = append(counters, c)
	}
	return counters, rows.Err()
}

func (r *bookingRepository) GetClassPopularityByName(name string) (*models.ClassPopularity, error) {
	var c models.ClassPopularity
	err := r.db.QueryRow(`SELECT id, name, title, description, booking_count FROM class_popularity WHERE name = $1`,
		name).Scan(&c.ID, &c.Name, &c.Title, &c.Description, &c.BookingCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetching class popularity: %v", ErrDatabaseError, err)
	}
	return &c, nil
}
