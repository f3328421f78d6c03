package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitnexus_backend/internal/models"

	"github.com/lib/pq"
)

// ClassRepository defines the interface for class offerings and booking packages.
type ClassRepository interface {
	CreateClass(executor SQLExecutor, class *models.Class) (*models.Class, error)
	GetClasses(filters models.ClassFilters) ([]models.Class, int, error)
	GetPackages() ([]models.Package, error)
}

type classRepository struct {
	db *sql.DB
}

// NewClassRepository creates a new instance of ClassRepository.
func NewClassRepository(db *sql.DB) ClassRepository {
	return &classRepository{db: db}
}

const selectClassFields = `id, title, image, trainer_name, available_seats, price, category, description, created_at`

func scanClassRow(row scanner, isList bool) (*models.Class, int, error) {
	var class models.Class
	var image, trainerName, category, description sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&class.ID, &class.Title, &image, &trainerName,
		&class.AvailableSeats, &class.Price, &category, &description, &class.CreatedAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	err := row.Scan(scanDest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning class: %v", ErrDatabaseError, err)
	}

	if image.Valid {
		class.Image = &image.String
	}
	if trainerName.Valid {
		class.TrainerName = &trainerName.String
	}
	if category.Valid {
		class.Category = &category.String
	}
	if description.Valid {
		class.Description = &description.String
	}
	return &class, totalCount, nil
}

func (r *classRepository) CreateClass(executor SQLExecutor, class *models.Class) (*models.Class, error) {
	query := `INSERT INTO classes (title, image, trainer_name, available_seats, price, category, description, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at`

	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		class.Title, class.Image, class.TrainerName, class.AvailableSeats,
		class.Price, class.Category, class.Description, class.CreatedAt,
	).Scan(&class.ID, &class.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating class: %v", ErrDatabaseError, err)
	}
	return class, nil
}

// escapeLikePattern neutralizes LIKE metacharacters so a title filter
// matches its input literally.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// GetClasses returns one page of classes plus the total matching count
// (COUNT(*) OVER() keeps it a single round trip).
func (r *classRepository) GetClasses(filters models.ClassFilters) ([]models.Class, int, error) {
	order := "DESC"
	if filters.Sort == "oldest" {
		order = "ASC"
	}

	query := "SELECT " + selectClassFields + `, COUNT(*) OVER() AS total_count FROM classes
	          WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
	          ORDER BY created_at ` + order + `
	          LIMIT $2 OFFSET $3`

	title := escapeLikePattern(filters.Title)
	offset := (filters.Page - 1) * filters.Limit
	rows, err := r.db.Query(query, title, filters.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing classes: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	classes := []models.Class{}
	totalCount := 0
	for rows.Next() {
		class, total, err := scanClassRow(rows, true)
		if err != nil {
			return nil, 0, err
		}
		totalCount = total
		classes = append(classes, *class)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: listing classes: %v", ErrDatabaseError, err)
	}

	// The page may be past the end; the window count is lost with zero rows.
	if len(classes) == 0 {
		countQuery := `SELECT COUNT(*) FROM classes WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')`
		if err := r.db.QueryRow(countQuery, title).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: counting classes: %v", ErrDatabaseError, err)
		}
	}
	return classes, totalCount, nil
}

func (r *classRepository) GetPackages() ([]models.Package, error) {
	rows, err := r.db.Query(`SELECT id, name, price, features FROM packages ORDER BY price`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing packages: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	packages := []models.Package{}
	for rows.Next() {
		var p models.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, pq.Array(&p.Features)); err != nil {
			return nil, fmt.Errorf("%w: scanning package: %v", ErrDatabaseError, err)
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}
