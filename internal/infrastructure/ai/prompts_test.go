package ai

import (
	"testing"
	"time"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestGetReviewPromptTemplate(t *testing.T) {
	t.Run("returns the spanish template by default", func(t *testing.T) {
		template := GetReviewPromptTemplate("es")
		assert.Contains(t, template, "Respondé SOLO con un JSON válido")

		template = GetReviewPromptTemplate("pt")
		assert.Contains(t, template, "Respondé SOLO con un JSON válido")
	})

	t.Run("returns the english template for en", func(t *testing.T) {
		template := GetReviewPromptTemplate("en")
		assert.Contains(t, template, "Reply ONLY with valid JSON")
	})
}

func TestBuildReviewContent(t *testing.T) {
	pr := models.PullRequest{
		ID:     "pr-1",
		Title:  "feat: cache de resultados",
		Body:   "Agrega una capa de cache",
		State:  "open",
		Author: models.User{Login: "tomas"},
	}

	t.Run("includes files, commits and comments", func(t *testing.T) {
		details := &models.PullRequestDetails{
			PullRequestID: "pr-1",
			FileChanges: []models.FileChange{
				{Path: "internal/cache/cache.go", Status: "added", Additions: 120, Deletions: 0},
			},
			Commits: []models.Commit{
				{SHA: "abc123", Message: "feat: agregar cache\n\ncuerpo del commit"},
			},
			Comments: []models.Comment{
				{ID: "10", Body: "falta un test de expiración", Author: models.User{Login: "maria"}, CreatedAt: time.Now()},
			},
		}

		content := BuildReviewContent(pr, details)

		assert.Contains(t, content, "feat: cache de resultados")
		assert.Contains(t, content, "internal/cache/cache.go")
		assert.Contains(t, content, "feat: agregar cache")
		assert.NotContains(t, content, "cuerpo del commit")
		assert.Contains(t, content, "maria: falta un test de expiración")
	})

	t.Run("skips optimistic comments", func(t *testing.T) {
		details := &models.PullRequestDetails{
			Comments: []models.Comment{
				{ID: models.TempIDPrefix + "a", Body: "todavía no confirmado"},
			},
		}

		content := BuildReviewContent(pr, details)

		assert.NotContains(t, content, "todavía no confirmado")
	})

	t.Run("works without details", func(t *testing.T) {
		content := BuildReviewContent(pr, nil)

		assert.Contains(t, content, "feat: cache de resultados")
		assert.Contains(t, content, "tomas")
	})
}
