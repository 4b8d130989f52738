package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	return args.Get(0).([]*github.PullRequest), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequest), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) ListComments(ctx context.Context, owner, repo string, number int, opts *github.PullRequestListCommentsOptions) ([]*github.PullRequestComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	return args.Get(0).([]*github.PullRequestComment), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) ListReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	return args.Get(0).([]*github.PullRequestReview), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) ListCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	return args.Get(0).([]*github.RepositoryCommit), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	return args.Get(0).([]*github.CommitFile), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) CreateReview(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) (*github.PullRequestReview, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, review)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequestReview), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) SubmitReview(ctx context.Context, owner, repo string, number int, reviewID int64, review *github.PullRequestReviewRequest) (*github.PullRequestReview, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, reviewID, review)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequestReview), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) DeletePendingReview(ctx context.Context, owner, repo string, number int, reviewID int64) (*github.PullRequestReview, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, reviewID)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequestReview), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.PullRequestComment) (*github.PullRequestComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequestComment), resp(args.Get(1)), args.Error(2)
}

func (m *MockPRService) CreateCommentInReplyTo(ctx context.Context, owner, repo string, number int, body string, commentID int64) (*github.PullRequestComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, body, commentID)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequestComment), resp(args.Get(1)), args.Error(2)
}

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.IssueComment), resp(args.Get(1)), args.Error(2)
}

type MockChecksService struct {
	mock.Mock
}

func (m *MockChecksService) ListCheckRunsForRef(ctx context.Context, owner, repo, ref string, opts *github.ListCheckRunsOptions) (*github.ListCheckRunsResults, *github.Response, error) {
	args := m.Called(ctx, owner, repo, ref, opts)
	return args.Get(0).(*github.ListCheckRunsResults), resp(args.Get(1)), args.Error(2)
}

type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, resp(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.User), resp(args.Get(1)), args.Error(2)
}

// MockHTTPClient implementa httpclient.HTTPClient para los tests del device flow.
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func resp(v interface{}) *github.Response {
	if v == nil {
		return nil
	}
	return v.(*github.Response)
}
