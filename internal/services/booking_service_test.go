package services

import (
	"context"
	"errors"
	"testing"

	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/payments"
	"fitnexus_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeBookingRepo struct {
	bookings   []models.Booking
	popularity map[string]*models.ClassPopularity
	nextID     int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{popularity: make(map[string]*models.ClassPopularity)}
}

func (f *fakeBookingRepo) CreateBooking(_ repositories.SQLExecutor, booking *models.Booking) (*models.Booking, error) {
	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	f.bookings = append(f.bookings, stored)
	result := stored
	return &result, nil
}

func (f *fakeBookingRepo) GetBookingsByEmail(email string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetBookingByIdempotencyKey(key string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.IdempotencyKey != nil && *b.IdempotencyKey == key {
			result := b
			return &result, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeBookingRepo) IncrementClassPopularity(_ repositories.SQLExecutor, name, title, description string) error {
	if entry, ok := f.popularity[name]; ok {
		entry.BookingCount++
		entry.Title = title
		entry.Description = description
		return nil
	}
	f.popularity[name] = &models.ClassPopularity{Name: name, Title: title, Description: description, BookingCount: 1}
	return nil
}

func (f *fakeBookingRepo) GetMostBookedClasses(limit int) ([]models.ClassPopularity, error) {
	var out []models.ClassPopularity
	for _, entry := range f.popularity {
		out = append(out, *entry)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetClassPopularityByName(name string) (*models.ClassPopularity, error) {
	entry, ok := f.popularity[name]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *entry
	return &result, nil
}

type fakePaymentProvider struct {
	intent   *payments.Intent
	err      error
	requests []payments.ChargeRequest
}

func (f *fakePaymentProvider) CreatePaymentIntent(_ context.Context, req payments.ChargeRequest) (*payments.Intent, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	result := *f.intent
	return &result, nil
}

type fakeFeaturedCache struct {
	ranking     []models.ClassPopularity
	hit         bool
	sets        int
	invalidates int
}

func (f *fakeFeaturedCache) Get() ([]models.ClassPopularity, bool) { return f.ranking, f.hit }
func (f *fakeFeaturedCache) Set(ranking []models.ClassPopularity) {
	f.ranking = ranking
	f.sets++
}
func (f *fakeFeaturedCache) Invalidate() {
	f.hit = false
	f.invalidates++
}

func succeededIntent(id string) *payments.Intent {
	return &payments.Intent{ID: id, Status: payments.StatusSucceeded}
}

func bookingRequest() CreateBookingRequest {
	return CreateBookingRequest{
		UserName:        "Jordan Lee",
		TrainerName:     "Alex Morgan",
		Day:             "Monday",
		Time:            "10:00 - 11:00",
		SelectedClasses: []string{"Yoga"},
		PackageName:     "gold",
		PackagePrice:    49.99,
		Email:           "jordan@example.com",
		Amount:          49.99,
		PaymentMethodID: "pm_card_visa",
		ClassDetails: map[string]models.ClassDetail{
			"Yoga": {Title: "Morning Yoga", Description: "Sunrise flow"},
		},
	}
}

// --- tests ---

func TestCreateBookingWithPaymentSucceeded(t *testing.T) {
	repo := newFakeBookingRepo()
	provider := &fakePaymentProvider{intent: succeededIntent("pi_123")}
	cache := &fakeFeaturedCache{}
	svc := NewBookingService(repo, provider, cache, "https://app.example.com/return", newTxDB(t, expectCommit))

	result, err := svc.CreateBookingWithPayment(context.Background(), bookingRequest())
	require.NoError(t, err)

	assert.False(t, result.RequiresAction)
	require.NotNil(t, result.Booking)
	assert.Equal(t, "pi_123", result.Booking.PaymentIntentID)
	assert.Equal(t, payments.StatusSucceeded, result.Booking.PaymentStatus)
	assert.Equal(t, "jordan@example.com", result.Booking.Email)

	require.Len(t, provider.requests, 1)
	assert.Equal(t, int64(4999), provider.requests[0].AmountCents)
	assert.Equal(t, "usd", provider.requests[0].Currency)
	assert.Equal(t, "pm_card_visa", provider.requests[0].PaymentMethodID)
	assert.Equal(t, "https://app.example.com/return", provider.requests[0].ReturnURL)

	yoga, err := repo.GetClassPopularityByName("Yoga")
	require.NoError(t, err)
	assert.Equal(t, int64(1), yoga.BookingCount)
	assert.Equal(t, "Morning Yoga", yoga.Title)
	assert.Equal(t, "Sunrise flow", yoga.Description)

	assert.Equal(t, 1, cache.invalidates)
}

func TestCreateBookingWithPaymentRequiresAction(t *testing.T) {
	repo := newFakeBookingRepo()
	provider := &fakePaymentProvider{intent: &payments.Intent{
		ID:             "pi_456",
		Status:         payments.StatusRequiresAction,
		ClientSecret:   "pi_456_secret",
		NextActionType: payments.NextActionUseSDK,
	}}
	svc := NewBookingService(repo, provider, nil, "", newTxDB(t, nil))

	result, err := svc.CreateBookingWithPayment(context.Background(), bookingRequest())
	require.NoError(t, err)

	assert.True(t, result.RequiresAction)
	assert.Equal(t, "pi_456_secret", result.ClientSecret)
	assert.Nil(t, result.Booking)

	// Nothing persists until the client completes the challenge.
	assert.Empty(t, repo.bookings)
	assert.Empty(t, repo.popularity)
}

func TestCreateBookingWithPaymentIncomplete(t *testing.T) {
	repo := newFakeBookingRepo()
	provider := &fakePaymentProvider{intent: &payments.Intent{ID: "pi_789", Status: "requires_payment_method"}}
	svc := NewBookingService(repo, provider, nil, "", newTxDB(t, nil))

	_, err := svc.CreateBookingWithPayment(context.Background(), bookingRequest())
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	assert.Empty(t, repo.bookings)
}

func TestCreateBookingWithPaymentProviderError(t *testing.T) {
	repo := newFakeBookingRepo()
	provider := &fakePaymentProvider{err: errors.New("card declined")}
	svc := NewBookingService(repo, provider, nil, "", newTxDB(t, nil))

	_, err := svc.CreateBookingWithPayment(context.Background(), bookingRequest())
	assert.ErrorIs(t, err, ErrPaymentProvider)
	assert.Empty(t, repo.bookings)
}

func TestCreateBookingValidation(t *testing.T) {
	svc := NewBookingService(newFakeBookingRepo(), &fakePaymentProvider{}, nil, "", nil)

	req := bookingRequest()
	req.Email = "  "
	_, err := svc.CreateBookingWithPayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingValidation)

	req = bookingRequest()
	req.Amount = 0
	_, err = svc.CreateBookingWithPayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingValidation)

	req = bookingRequest()
	req.PaymentMethodID = ""
	_, err = svc.CreateBookingWithPayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingValidation)

	req = bookingRequest()
	badKey := "not-a-uuid"
	req.IdempotencyKey = &badKey
	_, err = svc.CreateBookingWithPayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingValidation)
}

func TestCreateBookingDoubleSubmitWithoutKeyChargesTwice(t *testing.T) {
	repo := newFakeBookingRepo()
	provider := &fakePaymentProvider{intent: succeededIntent("pi_dup")}
	svc := NewBookingService(repo, provider, nil, "", newTxDB(t, func(mock sqlmock.Sqlmock) {
		expectCommit(mock)
		expectCommit(mock)
	}))

	_, err := svc.CreateBookingWithPayment(context.Background(), bookingRequest())
	require.NoError(t, err)
	_, err = svc.CreateBookingWithPayment(context.Background(), bookingRequest())
	require.NoError(t, err)

	assert.Len(t, provider.requests, 2)
	assert.Len(t, repo.bookings, 2)

	yoga, err := repo.GetClassPopularityByName("Yoga")
	require.NoError(t, err)
	assert.Equal(t, int64(2), yoga.BookingCount)
}

func TestCreateBookingIdempotentReplay(t *testing.T) {
	repo := newFakeBookingRepo()
	provider := &fakePaymentProvider{intent: succeededIntent("pi_once")}
	svc := NewBookingService(repo, provider, nil, "", newTxDB(t, expectCommit))

	key := "4f9c2f6a-9a1b-4c6e-8f3d-2a7b1c9d0e5f"
	req := bookingRequest()
	req.IdempotencyKey = &key

	first, err := svc.CreateBookingWithPayment(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	second, err := svc.CreateBookingWithPayment(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)

	// The provider is only charged once.
	assert.Len(t, provider.requests, 1)
	assert.Len(t, repo.bookings, 1)
}

func TestCreateBookingFallbackClassDetails(t *testing.T) {
	repo := newFakeBookingRepo()
	provider := &fakePaymentProvider{intent: succeededIntent("pi_nodetail")}
	svc := NewBookingService(repo, provider, nil, "", newTxDB(t, expectCommit))

	req := bookingRequest()
	req.ClassDetails = nil

	_, err := svc.CreateBookingWithPayment(context.Background(), req)
	require.NoError(t, err)

	yoga, err := repo.GetClassPopularityByName("Yoga")
	require.NoError(t, err)
	assert.Equal(t, "No title", yoga.Title)
	assert.Equal(t, "No description", yoga.Description)
}

func TestGetMostBookedClassesCacheHit(t *testing.T) {
	repo := newFakeBookingRepo()
	cache := &fakeFeaturedCache{
		ranking: []models.ClassPopularity{{Name: "Yoga", BookingCount: 9}},
		hit:     true,
	}
	svc := NewBookingService(repo, &fakePaymentProvider{}, cache, "", nil)

	ranking, err := svc.GetMostBookedClasses()
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, "Yoga", ranking[0].Name)
	assert.Equal(t, 0, cache.sets)
}

func TestGetMostBookedClassesCacheMissFillsCache(t *testing.T) {
	repo := newFakeBookingRepo()
	require.NoError(t, repo.IncrementClassPopularity(nil, "HIIT", "HIIT Basics", "Intervals"))
	cache := &fakeFeaturedCache{}
	svc := NewBookingService(repo, &fakePaymentProvider{}, cache, "", nil)

	ranking, err := svc.GetMostBookedClasses()
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, "HIIT", ranking[0].Name)
	assert.Equal(t, 1, cache.sets)
}

func TestGetBookingsByEmailLowercases(t *testing.T) {
	repo := newFakeBookingRepo()
	_, err := repo.CreateBooking(nil, &models.Booking{Email: "jordan@example.com", Amount: 10})
	require.NoError(t, err)
	svc := NewBookingService(repo, &fakePaymentProvider{}, nil, "", nil)

	bookings, err := svc.GetBookingsByEmail("Jordan@Example.com")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
