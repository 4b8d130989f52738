package models

import "time"

type (
	// PullRequest representa una pull request sincronizada desde el proveedor remoto.
	// El campo DetailsSyncedAt indica si los detalles (comentarios, reviews, checks)
	// ya fueron traídos al menos una vez: mientras sea nil la PR no se muestra.
	PullRequest struct {
		ID              string     `json:"id"`
		Number          int        `json:"number"`
		RepositoryOwner string     `json:"repository_owner"`
		RepositoryName  string     `json:"repository_name"`
		Title           string     `json:"title"`
		Body            string     `json:"body,omitempty"`
		State           string     `json:"state"`
		HeadSHA         string     `json:"head_sha,omitempty"`
		Author          User       `json:"author"`
		Labels          []string   `json:"labels,omitempty"`
		Assignees       []string   `json:"assignees,omitempty"`
		CommentCount    int        `json:"comment_count"`
		CommitCount     int        `json:"commit_count"`
		ChangedFiles    int        `json:"changed_files"`
		Additions       int        `json:"additions"`
		Deletions       int        `json:"deletions"`
		SyncedAt        time.Time  `json:"synced_at"`
		DetailsSyncedAt *time.Time `json:"details_synced_at,omitempty"`
	}

	// User es la identidad de un usuario del proveedor remoto.
	User struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url,omitempty"`
	}
)

// Key devuelve la clave bajo la cual se persiste la PR en el almacenamiento local.
func (pr PullRequest) Key() string {
	return "pull-request:" + pr.ID
}
