package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitnexus_backend/internal/models"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetRoleByEmail(email string) (string, error)
	UpdateProfile(executor SQLExecutor, email string, req models.UpdateProfileRequest) error
	UpdateRoleByEmail(executor SQLExecutor, email string, role string) error
	CountUsersByRole(role string) (int64, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const selectUserFields = `id, name, email, photo_url, role, created_at, updated_at`

func scanUserRow(row scanner) (*models.User, error) {
	var user models.User
	var photoURL sql.NullString

	err := row.Scan(&user.ID, &user.Name, &user.Email, &photoURL, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	if photoURL.Valid {
		user.PhotoURL = &photoURL.String
	}
	return &user, nil
}

func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (name, email, photo_url, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = currentTime
	}
	user.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		user.Name, user.Email, user.PhotoURL, user.Role, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE email = $1"
	return scanUserRow(r.db.QueryRow(query, email))
}

func (r *userRepository) GetRoleByEmail(email string) (string, error) {
	var role string
	err := r.db.QueryRow(`SELECT role FROM users WHERE email = $1`, email).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: fetching role: %v", ErrDatabaseError, err)
	}
	return role, nil
}

func (r *userRepository) UpdateProfile(executor SQLExecutor, email string, req models.UpdateProfileRequest) error {
	query := `UPDATE users SET
	            name = COALESCE($1, name),
	            photo_url = COALESCE($2, photo_url),
	            updated_at = $3
	          WHERE email = $4`

	result, err := executor.Exec(query, req.Name, req.PhotoURL, time.Now(), email)
	if err != nil {
		return fmt.Errorf("%w: updating profile: %v", ErrDatabaseError, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating profile: %v", ErrDatabaseError, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateRoleByEmail(executor SQLExecutor, email string, role string) error {
	result, err := executor.Exec(`UPDATE users SET role = $1, updated_at = $2 WHERE email = $3`,
		role, time.Now(), email)
	if err != nil {
		return fmt.Errorf("%w: updating role: %v", ErrDatabaseError, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating role: %v", ErrDatabaseError, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) CountUsersByRole(role string) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting users: %v", ErrDatabaseError, err)
	}
	return count, nil
}
