package services

import (
	"sort"
	"sync"
	"time"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/google/uuid"
)

// TaskTracker registra el ciclo de vida de las operaciones de fondo para que
// la UI muestre progreso y para que quien dispara un sync detecte duplicados.
//
// Contrato: antes de arrancar una operación, el llamador TIENE que consultar
// FindRunning con el mismo (tipo, destino); nada más acá impide el doble
// trabajo. RunningTasks se deriva del estado, no se guarda aparte.
type TaskTracker struct {
	mu        sync.RWMutex
	tasks     map[string]models.Task
	listeners []func(models.Task)
}

func NewTaskTracker() *TaskTracker {
	return &TaskTracker{
		tasks: make(map[string]models.Task),
	}
}

// Subscribe registra un callback que se dispara en cada cambio de tarea.
func (t *TaskTracker) Subscribe(listener func(models.Task)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

// StartTask crea y registra una tarea nueva en estado running.
func (t *TaskTracker) StartTask(taskType models.TaskType, targetID, message string) models.Task {
	now := time.Now()
	task := models.Task{
		ID:        uuid.NewString(),
		Type:      taskType,
		TargetID:  targetID,
		Status:    models.TaskStatusRunning,
		Message:   message,
		StartedAt: now,
		UpdatedAt: now,
	}
	t.UpsertTask(task)
	return task
}

func (t *TaskTracker) UpsertTask(task models.Task) {
	t.mu.Lock()
	task.UpdatedAt = time.Now()
	t.tasks[task.ID] = task
	listeners := make([]func(models.Task), len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, listener := range listeners {
		listener(task)
	}
}

func (t *TaskTracker) RemoveTask(id string) {
	t.mu.Lock()
	task, ok := t.tasks[id]
	delete(t.tasks, id)
	listeners := make([]func(models.Task), len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	if ok {
		task.Status = models.TaskStatusIdle
		for _, listener := range listeners {
			listener(task)
		}
	}
}

// ListTasks devuelve todas las tareas ordenadas por inicio.
func (t *TaskTracker) ListTasks() []models.Task {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]models.Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		result = append(result, task)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartedAt.Before(result[j].StartedAt) })
	return result
}

// RunningTasks devuelve las tareas en ejecución. Es una vista derivada.
func (t *TaskTracker) RunningTasks() []models.Task {
	all := t.ListTasks()
	running := make([]models.Task, 0, len(all))
	for _, task := range all {
		if task.IsRunning() {
			running = append(running, task)
		}
	}
	return running
}

// FindRunning busca una tarea en ejecución con el mismo tipo y destino.
// Dos tareas del mismo tipo pueden convivir solo si apuntan a destinos
// distintos (por ejemplo, detalles de dos PRs diferentes).
func (t *TaskTracker) FindRunning(taskType models.TaskType, targetID string) (models.Task, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, task := range t.tasks {
		if task.IsRunning() && task.Type == taskType && task.TargetID == targetID {
			return task, true
		}
	}
	return models.Task{}, false
}
