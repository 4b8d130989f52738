package services

import (
	"testing"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskTracker(t *testing.T) {
	t.Run("start task registers a running task", func(t *testing.T) {
		tracker := NewTaskTracker()

		task := tracker.StartTask(models.TaskTypeSyncPullRequests, "", "sincronizando")

		running := tracker.RunningTasks()
		require.Len(t, running, 1)
		assert.Equal(t, task.ID, running[0].ID)
		assert.True(t, running[0].IsRunning())
	})

	t.Run("find running matches type and target", func(t *testing.T) {
		tracker := NewTaskTracker()
		tracker.StartTask(models.TaskTypeSyncPullRequestDetails, "pr-1", "")

		_, found := tracker.FindRunning(models.TaskTypeSyncPullRequestDetails, "pr-1")
		assert.True(t, found)

		_, found = tracker.FindRunning(models.TaskTypeSyncPullRequestDetails, "pr-2")
		assert.False(t, found)

		_, found = tracker.FindRunning(models.TaskTypeSyncPullRequests, "pr-1")
		assert.False(t, found)
	})

	t.Run("same type with different targets can run in parallel", func(t *testing.T) {
		tracker := NewTaskTracker()
		tracker.StartTask(models.TaskTypeSyncPullRequestDetails, "pr-1", "")
		tracker.StartTask(models.TaskTypeSyncPullRequestDetails, "pr-2", "")

		assert.Len(t, tracker.RunningTasks(), 2)
	})

	t.Run("remove task notifies listeners with idle status", func(t *testing.T) {
		tracker := NewTaskTracker()
		var notified []models.Task
		tracker.Subscribe(func(task models.Task) {
			notified = append(notified, task)
		})

		task := tracker.StartTask(models.TaskTypeSyncPullRequests, "", "")
		tracker.RemoveTask(task.ID)

		require.Len(t, notified, 2)
		assert.Equal(t, models.TaskStatusRunning, notified[0].Status)
		assert.Equal(t, models.TaskStatusIdle, notified[1].Status)
		assert.Empty(t, tracker.ListTasks())
	})

	t.Run("running tasks is derived from task status", func(t *testing.T) {
		tracker := NewTaskTracker()
		task := tracker.StartTask(models.TaskTypeSyncPullRequests, "", "")

		task.Status = models.TaskStatusError
		tracker.UpsertTask(task)

		assert.Len(t, tracker.ListTasks(), 1)
		assert.Empty(t, tracker.RunningTasks())
	})
}
