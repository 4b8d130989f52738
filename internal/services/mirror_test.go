package services

import (
	"testing"
	"time"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMirror() *Mirror {
	return NewMirror(storage.NewMemoryStore())
}

func testPR(id string, number int) models.PullRequest {
	return models.PullRequest{
		ID:              id,
		Number:          number,
		RepositoryOwner: "Tomas-vilte",
		RepositoryName:  "MateReview",
		Title:           "feat: agregar soporte de reviews",
		State:           "open",
		SyncedAt:        time.Now(),
	}
}

func TestMirror_PullRequests(t *testing.T) {
	t.Run("get returns nil for unknown pull request", func(t *testing.T) {
		mirror := newTestMirror()

		pr, err := mirror.GetPullRequest("pr-999")

		require.NoError(t, err)
		assert.Nil(t, pr)
	})

	t.Run("save and get round trip", func(t *testing.T) {
		mirror := newTestMirror()
		pr := testPR("pr-1", 1)

		require.NoError(t, mirror.SavePullRequest(pr))
		got, err := mirror.GetPullRequest("pr-1")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, pr.ID, got.ID)
		assert.Equal(t, pr.Title, got.Title)
	})

	t.Run("list returns pull requests sorted by number", func(t *testing.T) {
		mirror := newTestMirror()
		require.NoError(t, mirror.SavePullRequest(testPR("pr-3", 30)))
		require.NoError(t, mirror.SavePullRequest(testPR("pr-1", 10)))
		require.NoError(t, mirror.SavePullRequest(testPR("pr-2", 20)))

		prs, err := mirror.ListPullRequests()

		require.NoError(t, err)
		require.Len(t, prs, 3)
		assert.Equal(t, []int{10, 20, 30}, []int{prs[0].Number, prs[1].Number, prs[2].Number})
	})

	t.Run("delete removes the pull request and its detail data", func(t *testing.T) {
		mirror := newTestMirror()
		require.NoError(t, mirror.SavePullRequest(testPR("pr-1", 1)))
		require.NoError(t, mirror.SaveDetails(models.PullRequestDetails{PullRequestID: "pr-1"}))
		require.NoError(t, mirror.SavePendingReview(models.PendingReview{PullRequestID: "pr-1", GitHubID: "abc"}))

		require.NoError(t, mirror.DeletePullRequest("pr-1"))

		pr, err := mirror.GetPullRequest("pr-1")
		require.NoError(t, err)
		assert.Nil(t, pr)

		details, err := mirror.GetDetails("pr-1")
		require.NoError(t, err)
		assert.Nil(t, details)

		pending, err := mirror.GetPendingReview("pr-1")
		require.NoError(t, err)
		assert.Nil(t, pending)
	})
}

func TestMirror_PendingReviewComments(t *testing.T) {
	t.Run("get returns empty list when nothing stored", func(t *testing.T) {
		mirror := newTestMirror()

		comments, err := mirror.GetPendingReviewComments("pr-1")

		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("saving an empty list clears the key", func(t *testing.T) {
		mirror := newTestMirror()
		require.NoError(t, mirror.SavePendingReviewComments("pr-1", []models.PendingReviewComment{
			{ID: "temp-1", PullRequestID: "pr-1", Body: "ojo con este nil"},
		}))

		require.NoError(t, mirror.SavePendingReviewComments("pr-1", nil))

		comments, err := mirror.GetPendingReviewComments("pr-1")
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
