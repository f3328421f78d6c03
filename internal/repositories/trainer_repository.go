package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitnexus_backend/internal/models"

	"github.com/lib/pq"
)

// TrainerRepository covers trainer applications, the approved-trainer roster
// and trainer-managed class slots.
type TrainerRepository interface {
	CreateApplication(executor SQLExecutor, app *models.TrainerApplication) (*models.TrainerApplication, error)
	GetApplicationByID(id int64) (*models.TrainerApplication, error)
	GetApplicationsByStatus(status string) ([]models.TrainerApplication, error)
	GetApplicationsForActivityLog(email string) ([]models.TrainerApplication, error)
	UpdateApplicationStatus(executor SQLExecutor, id int64, status string, feedback *string) error
	DeleteApplication(executor SQLExecutor, id int64) error

	CreateProfile(executor SQLExecutor, profile *models.TrainerProfile) (*models.TrainerProfile, error)
	GetProfileByID(id int64) (*models.TrainerProfile, error)
	GetProfiles(sortNewestFirst bool) ([]models.TrainerProfile, error)
	GetProfilesBySkill(skill string, limit int) ([]models.TrainerProfile, error)
	DeleteProfile(executor SQLExecutor, id int64) error

	CreateSlot(executor SQLExecutor, slot *models.ClassSlot) (*models.ClassSlot, error)
	GetSlotByID(id int64) (*models.ClassSlot, error)
	GetSlotsByTrainerEmail(email string) ([]models.ClassSlot, error)
	DeleteSlot(executor SQLExecutor, id int64) error
}

type trainerRepository struct {
	db *sql.DB
}

// NewTrainerRepository creates a new instance of TrainerRepository.
func NewTrainerRepository(db *sql.DB) TrainerRepository {
	return &trainerRepository{db: db}
}

const selectApplicationFields = `id, full_name, email, age, profile_image, skills, available_days, available_time, status, feedback, applied_at`

func scanApplicationRow(row scanner) (*models.TrainerApplication, error) {
	var app models.TrainerApplication
	var age sql.NullInt64
	var profileImage, availableTime, feedback sql.NullString

	err := row.Scan(&app.ID, &app.FullName, &app.Email, &age, &profileImage,
		pq.Array(&app.Skills), pq.Array(&app.AvailableDays), &availableTime,
		&app.Status, &feedback, &app.AppliedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning trainer application: %v", ErrDatabaseError, err)
	}

	if age.Valid {
		a := int(age.Int64)
		app.Age = &a
	}
	if profileImage.Valid {
		app.ProfileImage = &profileImage.String
	}
	if availableTime.Valid {
		app.AvailableTime = &availableTime.String
	}
	if feedback.Valid {
		app.Feedback = &feedback.String
	}
	return &app, nil
}

func (r *trainerRepository) CreateApplication(executor SQLExecutor, app *models.TrainerApplication) (*models.TrainerApplication, error) {
	query := `INSERT INTO trainer_applications
	            (full_name, email, age, profile_image, skills, available_days, available_time, status, applied_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, applied_at`

	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}

	err := executor.QueryRow(query,
		app.FullName, app.Email, app.Age, app.ProfileImage,
		pq.Array(app.Skills), pq.Array(app.AvailableDays), app.AvailableTime,
		app.Status, app.AppliedAt,
	).Scan(&app.ID, &app.AppliedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating trainer application: %v", ErrDatabaseError, err)
	}
	return app, nil
}

func (r *trainerRepository) GetApplicationByID(id int64) (*models.TrainerApplication, error) {
	query := "SELECT " + selectApplicationFields + " FROM trainer_applications WHERE id = $1"
	return scanApplicationRow(r.db.QueryRow(query, id))
}

func (r *trainerRepository) GetApplicationsByStatus(status string) ([]models.TrainerApplication, error) {
	query := "SELECT " + selectApplicationFields + " FROM trainer_applications WHERE status = $1 ORDER BY id DESC"
	rows, err := r.db.Query(query, status)
	if err != nil {
		return nil, fmt.Errorf("%w: listing trainer applications: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	apps := []models.TrainerApplication{}
	for rows.Next() {
		app, err := scanApplicationRow(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *trainerRepository) GetApplicationsForActivityLog(email string) ([]models.TrainerApplication, error) {
	query := "SELECT " + selectApplicationFields + ` FROM trainer_applications
	          WHERE email = $1 AND status IN ('pending', 'rejected') ORDER BY id DESC`
	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("%w: listing activity log: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	apps := []models.TrainerApplication{}
	for rows.Next() {
		app, err := scanApplicationRow(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *trainerRepository) UpdateApplicationStatus(executor SQLExecutor, id int64, status string, feedback *string) error {
	var result sql.Result
	var err error
	if feedback != nil {
		result, err = executor.Exec(`UPDATE trainer_applications SET status = $1, feedback = $2 WHERE id = $3`,
			status, *feedback, id)
	} else {
		result, err = executor.Exec(`UPDATE trainer_applications SET status = $1 WHERE id = $2`, status, id)
	}
	if err != nil {
		return fmt.Errorf("%w: updating application status: %v", ErrDatabaseError, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating application status: %v", ErrDatabaseError, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *trainerRepository) DeleteApplication(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM trainer_applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting trainer application: %v", ErrDatabaseError, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting trainer application: %v", ErrDatabaseError, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const selectProfileFields = `id, application_id, email, full_name, age, profile_image, skills, available_days, available_time, approved_at`

func scanProfileRow(row scanner) (*models.TrainerProfile, error) {
	var profile models.TrainerProfile
	var age sql.NullInt64
	var profileImage, availableTime sql.NullString

	err := row.Scan(&profile.ID, &profile.ApplicationID, &profile.Email, &profile.FullName, &age,
		&profileImage, pq.Array(&profile.Skills), pq.Array(&profile.AvailableDays), &availableTime,
		&profile.ApprovedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning trainer profile: %v", ErrDatabaseError, err)
	}

	if age.Valid {
		a := int(age.Int64)
		profile.Age = &a
	}
	if profileImage.Valid {
		profile.ProfileImage = &profileImage.String
	}
	if availableTime.Valid {
		profile.AvailableTime = &availableTime.String
	}
	return &profile, nil
}

func (r *trainerRepository) CreateProfile(executor SQLExecutor, profile *models.TrainerProfile) (*models.TrainerProfile, error) {
	query := `INSERT INTO trainer_profiles
	            (application_id, email, full_name, age, profile_image, skills, available_days, available_time, approved_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, approved_at`

	if profile.ApprovedAt.IsZero() {
		profile.ApprovedAt = time.Now()
	}

	err := executor.QueryRow(query,
		profile.ApplicationID, profile.Email, profile.FullName, profile.Age, profile.ProfileImage,
		pq.Array(profile.Skills), pq.Array(profile.AvailableDays), profile.AvailableTime, profile.ApprovedAt,
	).Scan(&profile.ID, &profile.ApprovedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating trainer profile: %v", ErrDatabaseError, err)
	}
	return profile, nil
}

func (r *trainerRepository) GetProfileByID(id int64) (*models.TrainerProfile, error) {
	query := "SELECT " + selectProfileFields + " FROM trainer_profiles WHERE id = $1"
	return scanProfileRow(r.db.QueryRow(query, id))
}

func (r *trainerRepository) GetProfiles(sortNewestFirst bool) ([]models.TrainerProfile, error) {
	order := "DESC"
	if !sortNewestFirst {
		order = "ASC"
	}
	query := "SELECT " + selectProfileFields + " FROM trainer_profiles ORDER BY id " + order

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing trainer profiles: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	profiles := []models.TrainerProfile{}
	for rows.Next() {
		profile, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func (r *trainerRepository) GetProfilesBySkill(skill string, limit int) ([]models.TrainerProfile, error) {
	query := "SELECT " + selectProfileFields + ` FROM trainer_profiles WHERE $1 = ANY(skills) ORDER BY id DESC LIMIT $2`
	rows, err := r.db.Query(query, skill, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing trainer profiles by skill: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	profiles := []models.TrainerProfile{}
	for rows.Next() {
		profile, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func (r *trainerRepository) DeleteProfile(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM trainer_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting trainer profile: %v", ErrDatabaseError, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting trainer profile: %v", ErrDatabaseError, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const selectSlotFields = `id, trainer_id, trainer_email, slot_name, day, slot_time, created_at`

func scanSlotRow(row scanner) (*models.ClassSlot, error) {
	var slot models.ClassSlot
	var slotTime sql.NullString

	err := row.Scan(&slot.ID, &slot.TrainerID, &slot.TrainerEmail, &slot.SlotName, &slot.Day, &slotTime, &slot.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning class slot: %v", ErrDatabaseError, err)
	}
	if slotTime.Valid {
		slot.SlotTime = &slotTime.String
	}
	return &slot, nil
}

func (r *trainerRepository) CreateSlot(executor SQLExecutor, slot *models.ClassSlot) (*models.ClassSlot, error) {
	query := `INSERT INTO class_slots (trainer_id, trainer_email, slot_name, day, slot_time, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`

	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		slot.TrainerID, slot.TrainerEmail, slot.SlotName, slot.Day, slot.SlotTime, slot.CreatedAt,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: creating class slot: %v", ErrDatabaseError, err)
	}
	return slot, nil
}

func (r *trainerRepository) GetSlotByID(id int64) (*models.ClassSlot, error) {
	query := "SELECT " + selectSlotFields + " FROM class_slots WHERE id = $1"
	return scanSlotRow(r.db.QueryRow(query, id))
}

func (r *trainerRepository) GetSlotsByTrainerEmail(email string) ([]models.ClassSlot, error) {
	query := "SELECT " + selectSlotFields + " FROM class_slots WHERE trainer_email = $1 ORDER BY id"
	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("%w: listing class slots: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	slots := []models.ClassSlot{}
	for rows.Next() {
		slot, err := scanSlotRow(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}
	return slots, rows.Err()
}

func (r *trainerRepository) DeleteSlot(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM class_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting class slot: %v", ErrDatabaseError, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting class slot: %v", ErrDatabaseError, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
