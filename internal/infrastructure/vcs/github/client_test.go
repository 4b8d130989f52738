package github

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClient(pr *MockPRService, issues *MockIssuesService, checks *MockChecksService, users *MockUsersService) *GitHubReviewClient {
	if issues == nil {
		issues = &MockIssuesService{}
	}
	if checks == nil {
		checks = &MockChecksService{}
	}
	if users == nil {
		users = &MockUsersService{}
	}
	return NewGitHubReviewClientWithServices(pr, issues, checks, users, "test-owner", "test-repo")
}

func testPullRequest(id string, number int) models.PullRequest {
	return models.PullRequest{
		ID:              id,
		Number:          number,
		RepositoryOwner: "test-owner",
		RepositoryName:  "test-repo",
		HeadSHA:         "abc123",
	}
}

func TestListPullRequests(t *testing.T) {
	t.Run("should map the remote pull requests", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, nil, nil, nil)

		mockPR.On("List", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.PullRequest{
				{
					NodeID: github.Ptr("PR_node1"),
					Number: github.Ptr(101),
					Title:  github.Ptr("Add rate limiting"),
					State:  github.Ptr("open"),
					User:   &github.User{Login: github.Ptr("alice")},
					Head:   &github.PullRequestBranch{SHA: github.Ptr("abc123")},
					Labels: []*github.Label{{Name: github.Ptr("fix")}},
				},
			}, &github.Response{}, nil)

		prs, err := client.ListPullRequests(context.Background())

		require.NoError(t, err)
		require.Len(t, prs, 1)
		assert.Equal(t, "PR_node1", prs[0].ID)
		assert.Equal(t, 101, prs[0].Number)
		assert.Equal(t, "test-owner", prs[0].RepositoryOwner)
		assert.Equal(t, "test-repo", prs[0].RepositoryName)
		assert.Equal(t, "abc123", prs[0].HeadSHA)
		assert.Equal(t, "alice", prs[0].Author.Login)
		assert.Equal(t, []string{"fix"}, prs[0].Labels)
		assert.Nil(t, prs[0].DetailsSyncedAt)
	})

	t.Run("should classify a transport failure as a network error", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, nil, nil, nil)

		mockPR.On("List", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.PullRequest(nil), nil, errors.New("connection reset"))

		_, err := client.ListPullRequests(context.Background())

		var netErr *domainErrors.NetworkError
		assert.True(t, errors.As(err, &netErr))
	})
}

func TestGetPullRequest(t *testing.T) {
	t.Run("should return nil without error on 404", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, nil, nil, nil)

		notFound := &github.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}
		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 7).
			Return(nil, notFound, errors.New("404 Not Found"))

		pr, err := client.GetPullRequest(context.Background(), 7)

		require.NoError(t, err)
		assert.Nil(t, pr)
	})

	t.Run("should classify a non-404 rejection", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, nil, nil, nil)

		rejected := &github.Response{Response: &http.Response{StatusCode: http.StatusForbidden}}
		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 7).
			Return(nil, rejected, errors.New("403 Forbidden"))

		_, err := client.GetPullRequest(context.Background(), 7)

		var rejErr *domainErrors.RemoteRejectionError
		require.True(t, errors.As(err, &rejErr))
		assert.Equal(t, http.StatusForbidden, rejErr.StatusCode)
	})
}

func TestGetPullRequestDetails(t *testing.T) {
	t.Run("should aggregate comments, reviews, commits, files and checks", func(t *testing.T) {
		mockPR := &MockPRService{}
		mockChecks := &MockChecksService{}
		client := newTestClient(mockPR, nil, mockChecks, nil)

		created := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
		mockPR.On("ListComments", mock.Anything, "test-owner", "test-repo", 101, mock.Anything).
			Return([]*github.PullRequestComment{
				{
					NodeID:    github.Ptr("C_1"),
					Body:      github.Ptr("nit: rename this"),
					Path:      github.Ptr("main.go"),
					Line:      github.Ptr(10),
					User:      &github.User{Login: github.Ptr("bob")},
					CreatedAt: &github.Timestamp{Time: created},
				},
			}, &github.Response{}, nil)
		mockPR.On("ListReviews", mock.Anything, "test-owner", "test-repo", 101, mock.Anything).
			Return([]*github.PullRequestReview{
				{NodeID: github.Ptr("R_1"), ID: github.Ptr(int64(55)), State: github.Ptr("APPROVED")},
			}, &github.Response{}, nil)
		mockPR.On("ListCommits", mock.Anything, "test-owner", "test-repo", 101, mock.Anything).
			Return([]*github.RepositoryCommit{
				{SHA: github.Ptr("abc123"), Commit: &github.Commit{Message: github.Ptr("fix: races")}},
			}, &github.Response{}, nil)
		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 101, mock.Anything).
			Return([]*github.CommitFile{
				{Filename: github.Ptr("main.go"), Status: github.Ptr("modified"), Additions: github.Ptr(3)},
			}, &github.Response{}, nil)
		mockChecks.On("ListCheckRunsForRef", mock.Anything, "test-owner", "test-repo", "abc123", mock.Anything).
			Return(&github.ListCheckRunsResults{
				CheckRuns: []*github.CheckRun{
					{ID: github.Ptr(int64(9)), Name: github.Ptr("ci"), Status: github.Ptr("completed"), Conclusion: github.Ptr("success")},
				},
			}, &github.Response{}, nil)

		pr := testPullRequest("PR_node1", 101)
		details, err := client.GetPullRequestDetails(context.Background(), pr)

		require.NoError(t, err)
		assert.Equal(t, "PR_node1", details.PullRequestID)
		require.Len(t, details.Comments, 1)
		assert.Equal(t, "C_1", details.Comments[0].ID)
		assert.False(t, details.Comments[0].IsOptimistic())
		require.Len(t, details.Reviews, 1)
		assert.Equal(t, int64(55), details.Reviews[0].NumericID)
		require.Len(t, details.Commits, 1)
		require.Len(t, details.FileChanges, 1)
		require.Len(t, details.Checks, 1)
		assert.Equal(t, "success", details.Checks[0].Conclusion)
	})

	t.Run("should skip checks when the head SHA is unknown", func(t *testing.T) {
		mockPR := &MockPRService{}
		mockChecks := &MockChecksService{}
		client := newTestClient(mockPR, nil, mockChecks, nil)

		mockPR.On("ListComments", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]*github.PullRequestComment{}, &github.Response{}, nil)
		mockPR.On("ListReviews", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]*github.PullRequestReview{}, &github.Response{}, nil)
		mockPR.On("ListCommits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]*github.RepositoryCommit{}, &github.Response{}, nil)
		mockPR.On("ListFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]*github.CommitFile{}, &github.Response{}, nil)

		pr := testPullRequest("PR_node1", 101)
		pr.HeadSHA = ""
		_, err := client.GetPullRequestDetails(context.Background(), pr)

		require.NoError(t, err)
		mockChecks.AssertNotCalled(t, "ListCheckRunsForRef")
	})
}

func TestCreateReview(t *testing.T) {
	t.Run("should map the confirmed review ids", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, nil, nil, nil)

		mockPR.On("CreateReview", mock.Anything, "test-owner", "test-repo", 101, mock.Anything).
			Return(&github.PullRequestReview{
				NodeID: github.Ptr("PRR_r1"),
				ID:     github.Ptr(int64(55)),
				State:  github.Ptr("PENDING"),
			}, &github.Response{}, nil)

		review, err := client.CreateReview(context.Background(), "test-owner", "test-repo", 101)

		require.NoError(t, err)
		assert.Equal(t, "PRR_r1", review.GitHubID)
		assert.Equal(t, int64(55), review.GitHubNumericID)
		assert.True(t, review.IsConfirmed())
	})
}

func TestCreateComment(t *testing.T) {
	t.Run("should create a line comment anchored to the head commit", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, nil, nil, nil)

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 101).
			Return(&github.PullRequest{Head: &github.PullRequestBranch{SHA: github.Ptr("abc123")}}, &github.Response{}, nil)
		mockPR.On("CreateComment", mock.Anything, "test-owner", "test-repo", 101, mock.MatchedBy(func(c *github.PullRequestComment) bool {
			return c.GetPath() == "main.go" && c.GetCommitID() == "abc123"
		})).Return(&github.PullRequestComment{NodeID: github.Ptr("C_9"), Body: github.Ptr("hola")}, &github.Response{}, nil)

		comment, err := client.CreateComment(context.Background(), ports.CommentRequest{
			Owner: "test-owner", Repo: "test-repo", PullNumber: 101,
			Body: "hola", Path: "main.go", Line: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, "C_9", comment.ID)
		mockPR.AssertExpectations(t)
	})

	t.Run("should reply through the in-reply-to endpoint", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, nil, nil, nil)

		mockPR.On("CreateCommentInReplyTo", mock.Anything, "test-owner", "test-repo", 101, "de acuerdo", int64(42)).
			Return(&github.PullRequestComment{NodeID: github.Ptr("C_10")}, &github.Response{}, nil)

		comment, err := client.CreateComment(context.Background(), ports.CommentRequest{
			Owner: "test-owner", Repo: "test-repo", PullNumber: 101,
			Body: "de acuerdo", InReplyTo: 42,
		})

		require.NoError(t, err)
		assert.Equal(t, "C_10", comment.ID)
	})

	t.Run("should fall back to an issue comment without a path", func(t *testing.T) {
		mockPR := &MockPRService{}
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockPR, mockIssues, nil, nil)

		mockIssues.On("CreateComment", mock.Anything, "test-owner", "test-repo", 101, mock.Anything).
			Return(&github.IssueComment{NodeID: github.Ptr("IC_1"), Body: github.Ptr("lgtm")}, &github.Response{}, nil)

		comment, err := client.CreateComment(context.Background(), ports.CommentRequest{
			Owner: "test-owner", Repo: "test-repo", PullNumber: 101, Body: "lgtm",
		})

		require.NoError(t, err)
		assert.Equal(t, "IC_1", comment.ID)
		mockPR.AssertNotCalled(t, "CreateComment")
	})
}

func TestSubmitAndDeleteReview(t *testing.T) {
	t.Run("should submit with the requested event", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, nil, nil, nil)

		mockPR.On("SubmitReview", mock.Anything, "test-owner", "test-repo", 101, int64(55), mock.MatchedBy(func(r *github.PullRequestReviewRequest) bool {
			return r.GetEvent() == "APPROVE"
		})).Return(&github.PullRequestReview{}, &github.Response{}, nil)

		err := client.SubmitReview(context.Background(), ports.SubmitRequest{
			Owner: "test-owner", Repo: "test-repo", PullNumber: 101,
			ReviewID: 55, Event: "APPROVE",
		})

		require.NoError(t, err)
	})

	t.Run("should surface a rejection when the delete fails", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, nil, nil, nil)

		rejected := &github.Response{Response: &http.Response{StatusCode: 422}}
		mockPR.On("DeletePendingReview", mock.Anything, "test-owner", "test-repo", 101, int64(55)).
			Return(nil, rejected, errors.New("422 Unprocessable"))

		err := client.DeleteReview(context.Background(), "test-owner", "test-repo", 101, 55)

		var rejErr *domainErrors.RemoteRejectionError
		assert.True(t, errors.As(err, &rejErr))
	})
}

func TestCurrentUser(t *testing.T) {
	t.Run("should return the authenticated identity", func(t *testing.T) {
		mockUsers := &MockUsersService{}
		client := newTestClient(&MockPRService{}, nil, nil, mockUsers)

		mockUsers.On("Get", mock.Anything, "").
			Return(&github.User{Login: github.Ptr("tomas")}, &github.Response{}, nil)

		user, err := client.CurrentUser(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "tomas", user.Login)
	})
}
