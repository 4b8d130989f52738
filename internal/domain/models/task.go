package models

import "time"

type (
	// TaskType identifica la clase de operación de fondo.
	TaskType string

	// TaskStatus es el estado de ejecución de una tarea.
	TaskStatus string

	// Task registra el ciclo de vida de una operación de fondo (sync de la lista,
	// sync de detalles) para que la UI pueda mostrar progreso y para que quien
	// dispara un sync pueda detectar duplicados antes de arrancar otro.
	Task struct {
		ID        string     `json:"id"`
		Type      TaskType   `json:"type"`
		TargetID  string     `json:"target_id,omitempty"`
		Status    TaskStatus `json:"status"`
		Message   string     `json:"message,omitempty"`
		StartedAt time.Time  `json:"started_at"`
		UpdatedAt time.Time  `json:"updated_at"`
	}
)

const (
	TaskTypeSyncPullRequests       TaskType = "sync-pull-requests"
	TaskTypeSyncPullRequestDetails TaskType = "sync-pull-request-details"

	TaskStatusRunning TaskStatus = "running"
	TaskStatusIdle    TaskStatus = "idle"
	TaskStatusError   TaskStatus = "error"
)

// IsRunning indica si la tarea sigue en ejecución.
func (t Task) IsRunning() bool {
	return t.Status == TaskStatusRunning
}
