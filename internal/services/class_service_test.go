package services

import (
	"testing"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassRepo struct {
	classes  []models.Class
	packages []models.Package
	filters  models.ClassFilters
}

func (f *fakeClassRepo) CreateClass(_ repositories.SQLExecutor, class *models.Class) (*models.Class, error) {
	stored := *class
	stored.ID = int64(len(f.classes) + 1)
	f.classes = append(f.classes, stored)
	result := stored
	return &result, nil
}

func (f *fakeClassRepo) GetClasses(filters models.ClassFilters) ([]models.Class, int, error) {
	f.filters = filters
	return f.classes, len(f.classes), nil
}

func (f *fakeClassRepo) GetPackages() ([]models.Package, error) {
	return f.packages, nil
}

func TestNormalizeClassFilters(t *testing.T) {
	norm := NormalizeClassFilters(models.ClassFilters{Page: 0, Limit: -3, Sort: "random"})
	assert.Equal(t, 1, norm.Page)
	assert.Equal(t, 10, norm.Limit)
	assert.Equal(t, "newest", norm.Sort)

	norm = NormalizeClassFilters(models.ClassFilters{Page: 3, Limit: 6, Sort: "oldest"})
	assert.Equal(t, 3, norm.Page)
	assert.Equal(t, 6, norm.Limit)
	assert.Equal(t, "oldest", norm.Sort)
}

func TestGetClassesNormalizesBeforeQuery(t *testing.T) {
	repo := &fakeClassRepo{}
	svc := NewClassService(repo, nil)

	_, _, err := svc.GetClasses(models.ClassFilters{Page: -1, Limit: 0, Sort: ""})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.filters.Page)
	assert.Equal(t, 10, repo.filters.Limit)
	assert.Equal(t, "newest", repo.filters.Sort)
}

func TestCreateClassValidation(t *testing.T) {
	svc := NewClassService(&fakeClassRepo{}, nil)

	_, err := svc.CreateClass(CreateClassRequest{Title: "  "})
	assert.ErrorIs(t, err, ErrClassValidation)

	_, err = svc.CreateClass(CreateClassRequest{Title: "Yoga", AvailableSeats: -1})
	assert.ErrorIs(t, err, ErrClassValidation)

	_, err = svc.CreateClass(CreateClassRequest{Title: "Yoga", Price: -5})
	assert.ErrorIs(t, err, ErrClassValidation)
}

func TestCreateClassTrimsTitle(t *testing.T) {
	repo := &fakeClassRepo{}
	svc := NewClassService(repo, nil)

	class, err := svc.CreateClass(CreateClassRequest{Title: "  Morning Yoga  ", AvailableSeats: 20, Price: 15})
	require.NoError(t, err)
	assert.Equal(t, "Morning Yoga", class.Title)
}
