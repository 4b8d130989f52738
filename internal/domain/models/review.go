package models

import (
	"strings"
	"time"
)

// ReviewStatePending es el estado de una review que el usuario está componiendo.
const ReviewStatePending = "PENDING"

type (
	// PendingReview es la review en curso de una PR. Existe a lo sumo una por PR.
	// GitHubID arranca con un id temporal y se reemplaza cuando el remoto confirma
	// la creación; GitHubNumericID vale 0 hasta esa confirmación y es el campo que
	// habilita el submit/cancel remoto.
	PendingReview struct {
		PullRequestID   string    `json:"pull_request_id"`
		GitHubID        string    `json:"github_id"`
		GitHubNumericID int64     `json:"github_numeric_id"`
		State           string    `json:"state"`
		Body            string    `json:"body,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}

	// PendingReviewComment es un comentario de línea todavía no enviado, asociado
	// a la review en curso. Se persiste para que una review a medio escribir
	// sobreviva un reinicio del proceso.
	PendingReviewComment struct {
		ID            string    `json:"id"`
		PullRequestID string    `json:"pull_request_id"`
		Path          string    `json:"path"`
		Line          int       `json:"line"`
		Body          string    `json:"body"`
		CreatedAt     time.Time `json:"created_at"`
	}

	// ReviewEvent es el veredicto con el que se envía una review.
	ReviewEvent string
)

const (
	ReviewEventApprove        ReviewEvent = "APPROVE"
	ReviewEventRequestChanges ReviewEvent = "REQUEST_CHANGES"
	ReviewEventComment        ReviewEvent = "COMMENT"
)

// IsConfirmed indica si el remoto ya asignó un id numérico a la review.
// Recién a partir de ahí un submit o cancel remoto es seguro de enviar.
func (r PendingReview) IsConfirmed() bool {
	return r.GitHubNumericID > 0
}

// IsOptimistic indica si la review todavía tiene un id temporal local.
func (r PendingReview) IsOptimistic() bool {
	return strings.HasPrefix(r.GitHubID, TempIDPrefix)
}

// PendingReviewCommentsKey devuelve la clave de persistencia de los comentarios
// de la review en curso de una PR.
func PendingReviewCommentsKey(pullRequestID string) string {
	return "pending-review-comments:" + pullRequestID
}
