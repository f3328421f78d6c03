package repositories

import (
	"database/sql"
	"fmt"

	"fitnexus_backend/internal/models"
)

// StatsRepository aggregates booking revenue for the admin dashboard.
type StatsRepository interface {
	GetTotalRevenue() (float64, error)
	GetLastPayments(limit int) ([]models.Booking, error)
	GetMonthlyRevenue() ([]MonthRevenueRow, error)
}

// MonthRevenueRow is one month bucket of settled revenue, month as 1..12.
type MonthRevenueRow struct {
	Month  int
	Amount float64
}

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetTotalRevenue() (float64, error) {
	var total float64
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM bookings`).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing revenue: %v", ErrDatabaseError, err)
	}
	return total, nil
}

func (r *statsRepository) GetLastPayments(limit int) ([]models.Booking, error) {
	query := "SELECT " + selectBookingFields + " FROM bookings ORDER BY created_at DESC LIMIT $1"
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing last payments: %v", ErrDatabaseError, err)
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

// GetMonthlyRevenue groups settled bookings by calendar month of creation.
func (r *statsRepository) GetMonthlyRevenue() ([]MonthRevenueRow, error) {
	query := `SELECT EXTRACT(MONTH FROM created_at)::int AS month, SUM(amount)
	          FROM bookings WHERE payment_status = 'succeeded'
	          GROUP BY month ORDER BY month`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: grouping monthly revenue: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	history := []MonthRevenueRow{}
	for rows.Next() {
		var row MonthRevenueRow
		if err := rows.Scan(&row.Month, &row.Amount); err != nil {
			return nil, fmt.Errorf("%w: scanning monthly revenue: %v", ErrDatabaseError, err)
		}
		history = append(history, row)
	}
	return history, rows.Err()
}
