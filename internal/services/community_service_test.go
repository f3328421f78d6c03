package services

import (
	"testing"

	"fitnexus_backend/internal/email"
	"fitnexus_backend/internal/models"
	"fitnexus_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNewsletterRepo struct {
	subs map[string]*models.NewsletterSubscriber
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{subs: make(map[string]*models.NewsletterSubscriber)}
}

func (f *fakeNewsletterRepo) CreateSubscriber(_ repositories.SQLExecutor, sub *models.NewsletterSubscriber) (*models.NewsletterSubscriber, error) {
	if _, ok := f.subs[sub.Email]; ok {
		return nil, repositories.ErrDuplicateKey
	}
	stored := *sub
	stored.ID = int64(len(f.subs) + 1)
	f.subs[stored.Email] = &stored
	result := stored
	return &result, nil
}

func (f *fakeNewsletterRepo) GetSubscriberByEmail(emailAddr string) (*models.NewsletterSubscriber, error) {
	sub, ok := f.subs[emailAddr]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *sub
	return &result, nil
}

func (f *fakeNewsletterRepo) GetSubscribers() ([]models.NewsletterSubscriber, error) {
	var out []models.NewsletterSubscriber
	for _, sub := range f.subs {
		out = append(out, *sub)
	}
	return out, nil
}

func (f *fakeNewsletterRepo) CountSubscribers() (int64, error) {
	return int64(len(f.subs)), nil
}

type failingMailer struct {
	attempts int
}

func (m *failingMailer) Send(*email.Email) error {
	m.attempts++
	return assert.AnError
}

func (m *failingMailer) Close() error { return nil }

type fakeReviewRepo struct {
	reviews []models.Review
}

func (f *fakeReviewRepo) CreateReview(_ repositories.SQLExecutor, review *models.Review) (*models.Review, error) {
	stored := *review
	stored.ID = int64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, stored)
	result := stored
	return &result, nil
}

func (f *fakeReviewRepo) GetReviews() ([]models.Review, error) {
	return f.reviews, nil
}

func TestSubscribeSendsWelcomeMail(t *testing.T) {
	repo := newFakeNewsletterRepo()
	mailer := &email.MockProvider{}
	svc := NewNewsletterService(repo, mailer, nil)

	sub, err := svc.Subscribe("Jordan Lee", " Jordan@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", sub.Email)
	assert.Equal(t, "Jordan Lee", sub.Name)

	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, []string{"jordan@example.com"}, mailer.Sent[0].To)
}

func TestSubscribeDuplicate(t *testing.T) {
	repo := newFakeNewsletterRepo()
	svc := NewNewsletterService(repo, nil, nil)

	_, err := svc.Subscribe("Jordan", "jordan@example.com")
	require.NoError(t, err)

	_, err = svc.Subscribe("Jordan", "jordan@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestSubscribeValidation(t *testing.T) {
	svc := NewNewsletterService(newFakeNewsletterRepo(), nil, nil)

	_, err := svc.Subscribe("", "jordan@example.com")
	assert.ErrorIs(t, err, ErrSubscribeValidation)

	_, err = svc.Subscribe("Jordan", "  ")
	assert.ErrorIs(t, err, ErrSubscribeValidation)
}

func TestSubscribeSurvivesMailerFailure(t *testing.T) {
	repo := newFakeNewsletterRepo()
	mailer := &failingMailer{}
	svc := NewNewsletterService(repo, mailer, nil)

	sub, err := svc.Subscribe("Jordan", "jordan@example.com")
	require.NoError(t, err)
	assert.NotNil(t, sub)
	assert.Equal(t, 1, mailer.attempts)
}

func TestCreateReviewValidation(t *testing.T) {
	svc := NewReviewService(&fakeReviewRepo{}, nil)

	_, err := svc.CreateReview(&models.Review{UserName: " ", Rating: 4})
	assert.ErrorIs(t, err, ErrReviewValidation)

	_, err = svc.CreateReview(&models.Review{UserName: "Jordan", Rating: 0})
	assert.ErrorIs(t, err, ErrReviewValidation)

	_, err = svc.CreateReview(&models.Review{UserName: "Jordan", Rating: 6})
	assert.ErrorIs(t, err, ErrReviewValidation)
}

func TestCreateReview(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo, nil)

	review, err := svc.CreateReview(&models.Review{UserName: "Jordan", Rating: 5})
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.Len(t, repo.reviews, 1)
}
