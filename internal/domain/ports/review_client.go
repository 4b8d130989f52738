package ports

import (
	"context"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
)

type (
	// CommentRequest son los datos para crear un comentario en el proveedor remoto.
	CommentRequest struct {
		Owner      string
		Repo       string
		PullNumber int
		Body       string
		Path       string
		Line       int
		// InReplyTo es el id numérico del comentario padre cuando es una respuesta.
		InReplyTo int64
	}

	// SubmitRequest son los datos para enviar una review pendiente.
	SubmitRequest struct {
		Owner      string
		Repo       string
		PullNumber int
		ReviewID   int64
		Event      models.ReviewEvent
		Body       string
	}
)

// ReviewClient define las operaciones contra el servicio de code review remoto.
// Es el colaborador externo del que habla el resto del cliente: acá no hay
// estado local, solo llamadas a la API.
type ReviewClient interface {
	// ListPullRequests lista las PRs abiertas del repositorio configurado.
	ListPullRequests(ctx context.Context) ([]models.PullRequest, error)
	// GetPullRequest trae una PR puntual. Devuelve nil (sin error) si no existe.
	GetPullRequest(ctx context.Context, number int) (*models.PullRequest, error)
	// GetPullRequestDetails trae el detalle completo de la PR (comentarios,
	// reviews, commits, checks, archivos).
	GetPullRequestDetails(ctx context.Context, pr models.PullRequest) (*models.PullRequestDetails, error)
	// CreateReview crea una review en estado pendiente y devuelve los ids asignados.
	CreateReview(ctx context.Context, owner, repo string, pullNumber int) (*models.PendingReview, error)
	// SubmitReview envía la review pendiente con el veredicto indicado.
	SubmitReview(ctx context.Context, req SubmitRequest) error
	// DeleteReview descarta la review pendiente en el remoto.
	DeleteReview(ctx context.Context, owner, repo string, pullNumber int, reviewID int64) error
	// CreateComment crea un comentario y devuelve la versión confirmada por el remoto.
	CreateComment(ctx context.Context, req CommentRequest) (*models.Comment, error)
	// CurrentUser devuelve la identidad del usuario autenticado.
	CurrentUser(ctx context.Context) (*models.User, error)
}
