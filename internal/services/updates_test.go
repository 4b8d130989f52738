package services

import (
	"context"
	"testing"
	"time"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResourceUpdateBus(t *testing.T) {
	t.Run("dispatches updates to the registered handler", func(t *testing.T) {
		bus := NewResourceUpdateBus(8)
		received := make(chan string, 1)
		bus.RegisterHandler(models.ResourceTypePullRequestDetails, func(ctx context.Context, resourceID string) {
			received <- resourceID
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go bus.Run(ctx)

		bus.Publish(ctx, models.ResourceUpdate{Type: models.ResourceTypePullRequestDetails, ResourceID: "pr-1"})

		select {
		case id := <-received:
			assert.Equal(t, "pr-1", id)
		case <-time.After(time.Second):
			t.Fatal("el handler nunca recibió la notificación")
		}
	})

	t.Run("ignores updates with empty resource id", func(t *testing.T) {
		bus := NewResourceUpdateBus(8)
		received := make(chan string, 1)
		bus.RegisterHandler(models.ResourceTypePullRequestDetails, func(ctx context.Context, resourceID string) {
			received <- resourceID
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go bus.Run(ctx)

		bus.Publish(ctx, models.ResourceUpdate{Type: models.ResourceTypePullRequestDetails, ResourceID: ""})
		bus.Publish(ctx, models.ResourceUpdate{Type: models.ResourceTypePullRequestDetails, ResourceID: "pr-2"})

		select {
		case id := <-received:
			assert.Equal(t, "pr-2", id)
		case <-time.After(time.Second):
			t.Fatal("el handler nunca recibió la notificación válida")
		}
	})

	t.Run("ignores updates of unknown resource types", func(t *testing.T) {
		bus := NewResourceUpdateBus(8)
		received := make(chan string, 1)
		bus.RegisterHandler(models.ResourceTypePullRequestDetails, func(ctx context.Context, resourceID string) {
			received <- resourceID
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go bus.Run(ctx)

		bus.Publish(ctx, models.ResourceUpdate{Type: "issues", ResourceID: "issue-1"})
		bus.Publish(ctx, models.ResourceUpdate{Type: models.ResourceTypePullRequestDetails, ResourceID: "pr-3"})

		select {
		case id := <-received:
			assert.Equal(t, "pr-3", id)
		case <-time.After(time.Second):
			t.Fatal("el handler nunca recibió la notificación válida")
		}
	})

	t.Run("publish does not block when the queue is full", func(t *testing.T) {
		bus := NewResourceUpdateBus(1)

		done := make(chan struct{})
		go func() {
			bus.Publish(context.Background(), models.ResourceUpdate{Type: models.ResourceTypePullRequestDetails, ResourceID: "pr-1"})
			bus.Publish(context.Background(), models.ResourceUpdate{Type: models.ResourceTypePullRequestDetails, ResourceID: "pr-2"})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish bloqueó con la cola llena")
		}
	})

	t.Run("publish after close is a no-op", func(t *testing.T) {
		bus := NewResourceUpdateBus(8)
		bus.Close()

		require.NotPanics(t, func() {
			bus.Publish(context.Background(), models.ResourceUpdate{Type: models.ResourceTypePullRequestDetails, ResourceID: "pr-1"})
		})
	})
}

func TestNewPullRequestDetailsHandler(t *testing.T) {
	setup := func(t *testing.T) (*MockReviewClient, *Mirror, *ReviewService, *ResourceUpdateBus, *SyncService) {
		t.Helper()
		client := new(MockReviewClient)
		store := storage.NewMemoryStore()
		mirror := NewMirror(store)
		reviews := NewReviewService(client, mirror, NewDraftService(store), nil, nil)
		bus := NewResourceUpdateBus(8)
		sync := NewSyncService(client, mirror, reviews, NewTaskTracker(), bus)
		bus.RegisterHandler(models.ResourceTypePullRequestDetails, NewPullRequestDetailsHandler(mirror, reviews))
		return client, mirror, reviews, bus, sync
	}

	t.Run("notifies subscribers from the local mirror without refetching", func(t *testing.T) {
		client, mirror, reviews, bus, sync := setup(t)
		require.NoError(t, mirror.SavePullRequest(testPR("pr-1", 1)))
		client.On("GetPullRequestDetails", mock.Anything, mock.Anything).
			Return(&models.PullRequestDetails{}, nil)

		notified := make(chan string, 8)
		reviews.Subscribe(func(pullRequestID string) { notified <- pullRequestID })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go bus.Run(ctx)

		require.NoError(t, sync.SyncPullRequestDetails(context.Background(), "pr-1"))

		select {
		case id := <-notified:
			assert.Equal(t, "pr-1", id)
		case <-time.After(time.Second):
			t.Fatal("los suscriptores nunca se enteraron del cambio")
		}

		// Consumir la notificación no debe volver a tocar el remoto.
		time.Sleep(50 * time.Millisecond)
		client.AssertNumberOfCalls(t, "GetPullRequestDetails", 1)
	})

	t.Run("ignores notifications for pull requests missing from the mirror", func(t *testing.T) {
		_, mirror, reviews, _, _ := setup(t)

		notified := make(chan string, 1)
		reviews.Subscribe(func(pullRequestID string) { notified <- pullRequestID })

		handler := NewPullRequestDetailsHandler(mirror, reviews)
		require.NotPanics(t, func() { handler(context.Background(), "pr-fantasma") })

		assert.Empty(t, notified)
	})
}
