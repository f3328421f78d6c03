package repositories

import (
	"database/sql"
	"testing"
	"time"

	"fitnexus_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var classListColumns = []string{
	"id", "title", "image", "trainer_name", "available_seats",
	"price", "category", "description", "created_at", "total_count",
}

func classListRow(rows *sqlmock.Rows, id int64, title string, total int) *sqlmock.Rows {
	return rows.AddRow(id, title, nil, nil, 20, 15.0, nil, nil, time.Now(), total)
}

func TestGetClassesOffsetMathAndWindowTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows(classListColumns)
	classListRow(rows, 25, "Yoga", 13)
	classListRow(rows, 26, "HIIT", 13)

	// page 3 with limit 6 starts at row 12.
	mock.ExpectQuery(`SELECT (.+) COUNT\(\*\) OVER\(\) AS total_count FROM classes`).
		WithArgs("", 6, 12).
		WillReturnRows(rows)

	classes, total, err := repo.GetClasses(models.ClassFilters{Page: 3, Limit: 6, Sort: "newest"})
	require.NoError(t, err)
	assert.Len(t, classes, 2)
	assert.Equal(t, 13, total)
	assert.Equal(t, "Yoga", classes[0].Title)
}

func TestGetClassesSortOldestAscending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows(classListColumns)
	classListRow(rows, 1, "Pilates", 1)

	mock.ExpectQuery(`ORDER BY created_at ASC`).
		WithArgs("", 10, 0).
		WillReturnRows(rows)

	_, _, err := repo.GetClasses(models.ClassFilters{Page: 1, Limit: 10, Sort: "oldest"})
	require.NoError(t, err)
}

func TestGetClassesTitleFilterBound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows(classListColumns)
	classListRow(rows, 7, "Morning Yoga", 1)

	mock.ExpectQuery(`title ILIKE`).
		WithArgs("yoga", 10, 0).
		WillReturnRows(rows)

	classes, total, err := repo.GetClasses(models.ClassFilters{Title: "yoga", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, classes, 1)
	assert.Equal(t, "Morning Yoga", classes[0].Title)
}

func TestGetClassesEscapesLikeMetacharacters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClassRepository(db)

	// A literal "%" search must not become a match-everything pattern.
	mock.ExpectQuery(`title ILIKE`).
		WithArgs(`\%`, 10, 0).
		WillReturnRows(sqlmock.NewRows(classListColumns))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM classes`).
		WithArgs(`\%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	classes, total, err := repo.GetClasses(models.ClassFilters{Title: "%", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, classes)
	assert.Equal(t, 0, total)
}

func TestGetClassesPastEndPageFallsBackToCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClassRepository(db)

	// Page 40 of a 13-row table: the window count is lost with zero rows,
	// so the total comes from a plain count query.
	mock.ExpectQuery(`FROM classes`).
		WithArgs("", 6, 234).
		WillReturnRows(sqlmock.NewRows(classListColumns))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM classes`).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))

	classes, total, err := repo.GetClasses(models.ClassFilters{Page: 40, Limit: 6})
	require.NoError(t, err)
	assert.Empty(t, classes)
	assert.Equal(t, 13, total)
}

func TestEscapeLikePattern(t *testing.T) {
	assert.Equal(t, `Yoga`, escapeLikePattern(`Yoga`))
	assert.Equal(t, `\%`, escapeLikePattern(`%`))
	assert.Equal(t, `Yo\_ga`, escapeLikePattern(`Yo_ga`))
	assert.Equal(t, `\\\%`, escapeLikePattern(`\%`))
	assert.Equal(t, ``, escapeLikePattern(``))
}
