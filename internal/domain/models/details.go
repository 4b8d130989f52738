package models

import (
	"strings"
	"time"
)

// TempIDPrefix marca los ids generados localmente para entidades optimistas
// que todavía no fueron confirmadas por el proveedor remoto.
const TempIDPrefix = "temp-"

type (
	// PullRequestDetails agrega todo el detalle de una PR. Se reemplaza completo
	// en cada sync autoritativo, salvo los comentarios optimistas que se arrastran
	// (ver ReviewService.MergeAuthoritativeDetails).
	PullRequestDetails struct {
		PullRequestID string       `json:"pull_request_id"`
		Comments      []Comment    `json:"comments,omitempty"`
		Reviews       []Review     `json:"reviews,omitempty"`
		Commits       []Commit     `json:"commits,omitempty"`
		Checks        []Check      `json:"checks,omitempty"`
		FileChanges   []FileChange `json:"file_changes,omitempty"`
		SyncedAt      time.Time    `json:"synced_at"`
	}

	// Comment es un comentario de review. Un id con prefijo "temp-" indica un
	// comentario optimista todavía no confirmado por el remoto.
	Comment struct {
		ID        string     `json:"id"`
		Body      string     `json:"body"`
		Path      string     `json:"path,omitempty"`
		Line      int        `json:"line,omitempty"`
		Author    User       `json:"author"`
		InReplyTo string     `json:"in_reply_to,omitempty"`
		Reactions []Reaction `json:"reactions,omitempty"`
		CreatedAt time.Time  `json:"created_at"`
		SyncedAt  time.Time  `json:"synced_at"`
	}

	// Review es una review ya publicada en el historial de la PR.
	Review struct {
		ID          string    `json:"id"`
		NumericID   int64     `json:"numeric_id"`
		State       string    `json:"state"`
		Body        string    `json:"body,omitempty"`
		Author      User      `json:"author"`
		SubmittedAt time.Time `json:"submitted_at"`
	}

	// Commit es un commit incluido en la PR.
	Commit struct {
		SHA     string `json:"sha"`
		Message string `json:"message"`
		Author  User   `json:"author"`
	}

	// Check es el resultado de un check run sobre el head de la PR.
	Check struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		Status     string `json:"status"`
		Conclusion string `json:"conclusion,omitempty"`
	}

	// FileChange es un archivo modificado por la PR.
	FileChange struct {
		Path      string `json:"path"`
		Status    string `json:"status"`
		Additions int    `json:"additions"`
		Deletions int    `json:"deletions"`
	}

	// Reaction es una reacción sobre un comentario.
	Reaction struct {
		Content string `json:"content"`
		Count   int    `json:"count"`
	}
)

// IsOptimistic indica si el comentario es local y todavía no fue confirmado.
func (c Comment) IsOptimistic() bool {
	return strings.HasPrefix(c.ID, TempIDPrefix)
}

// Key devuelve la clave de persistencia de los detalles en el almacenamiento local.
func (d PullRequestDetails) Key() string {
	return "pull-request-details:" + d.PullRequestID
}
