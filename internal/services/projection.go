package services

import "github.com/Tomas-vilte/MateReview/internal/domain/models"

// ReadyPullRequests filtra las PRs listas para mostrar: solo las que ya
// tienen los detalles sincronizados al menos una vez. Preserva el orden de
// entrada y con entrada nil devuelve una lista vacía.
func ReadyPullRequests(prs []models.PullRequest) []models.PullRequest {
	result := make([]models.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if pr.DetailsSyncedAt != nil {
			result = append(result, pr)
		}
	}
	return result
}
