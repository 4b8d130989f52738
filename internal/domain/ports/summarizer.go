package ports

import (
	"context"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
)

// ReviewSummarizer genera un resumen asistido por IA a partir del espejo
// local de una PR.
type ReviewSummarizer interface {
	SummarizeReview(ctx context.Context, prompt string) (models.ReviewSummary, error)
}
