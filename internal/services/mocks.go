package services

import (
	"context"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
	"github.com/stretchr/testify/mock"
)

// MockReviewClient es un mock del cliente remoto de reviews.
type MockReviewClient struct {
	mock.Mock
}

func (m *MockReviewClient) ListPullRequests(ctx context.Context) ([]models.PullRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PullRequest), args.Error(1)
}

func (m *MockReviewClient) GetPullRequest(ctx context.Context, number int) (*models.PullRequest, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PullRequest), args.Error(1)
}

func (m *MockReviewClient) GetPullRequestDetails(ctx context.Context, pr models.PullRequest) (*models.PullRequestDetails, error) {
	args := m.Called(ctx, pr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PullRequestDetails), args.Error(1)
}

func (m *MockReviewClient) CreateReview(ctx context.Context, owner, repo string, pullNumber int) (*models.PendingReview, error) {
	args := m.Called(ctx, owner, repo, pullNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingReview), args.Error(1)
}

func (m *MockReviewClient) SubmitReview(ctx context.Context, req ports.SubmitRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockReviewClient) DeleteReview(ctx context.Context, owner, repo string, pullNumber int, reviewID int64) error {
	args := m.Called(ctx, owner, repo, pullNumber, reviewID)
	return args.Error(0)
}

func (m *MockReviewClient) CreateComment(ctx context.Context, req ports.CommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockReviewClient) CurrentUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockDeviceAuthorizer es un mock del flujo de device code.
type MockDeviceAuthorizer struct {
	mock.Mock
}

func (m *MockDeviceAuthorizer) RequestDeviceCode(ctx context.Context) (*models.DeviceCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeviceCode), args.Error(1)
}

func (m *MockDeviceAuthorizer) PollToken(ctx context.Context, deviceCode string) (*ports.PollResult, error) {
	args := m.Called(ctx, deviceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PollResult), args.Error(1)
}

// MockCredentialStore es un mock del almacenamiento de credenciales.
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Save(cred models.Credential) error {
	args := m.Called(cred)
	return args.Error(0)
}

func (m *MockCredentialStore) Load() (*models.Credential, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func (m *MockCredentialStore) Erase() error {
	args := m.Called()
	return args.Error(0)
}
