package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
	"github.com/Tomas-vilte/MateReview/internal/logger"
)

// SyncService trae el estado autoritativo del remoto al espejo local. Cada
// operación se registra en el TaskTracker para que quien la dispare pueda
// detectar duplicados, y cada detalle fresco se anuncia por el bus de
// notificaciones.
type SyncService struct {
	client  ports.ReviewClient
	mirror  *Mirror
	reviews *ReviewService
	tasks   *TaskTracker
	bus     *ResourceUpdateBus
}

func NewSyncService(client ports.ReviewClient, mirror *Mirror, reviews *ReviewService, tasks *TaskTracker, bus *ResourceUpdateBus) *SyncService {
	return &SyncService{
		client:  client,
		mirror:  mirror,
		reviews: reviews,
		tasks:   tasks,
		bus:     bus,
	}
}

// SyncPullRequests refresca la lista de PRs abiertas. Actualiza los campos de
// nivel lista, conserva DetailsSyncedAt de cada PR ya conocida y elimina las
// PRs que ya no existen en el remoto. Si ya hay un sync de lista corriendo,
// no arranca otro.
func (s *SyncService) SyncPullRequests(ctx context.Context) error {
	if _, running := s.tasks.FindRunning(models.TaskTypeSyncPullRequests, ""); running {
		logger.Debug(ctx, "sync de lista ya en curso, se omite")
		return nil
	}
	task := s.tasks.StartTask(models.TaskTypeSyncPullRequests, "", "sincronizando pull requests")

	remote, err := s.client.ListPullRequests(ctx)
	if err != nil {
		s.failTask(task, err)
		return fmt.Errorf("error al sincronizar la lista de PRs: %w", err)
	}

	seen := make(map[string]struct{}, len(remote))
	now := time.Now()
	for _, pr := range remote {
		seen[pr.ID] = struct{}{}

		existing, err := s.mirror.GetPullRequest(pr.ID)
		if err != nil {
			s.failTask(task, err)
			return err
		}
		// El sync de lista nunca pisa la marca de detalles: eso lo decide
		// únicamente el sync de detalles.
		if existing != nil {
			pr.DetailsSyncedAt = existing.DetailsSyncedAt
		}
		pr.SyncedAt = now
		if err := s.mirror.SavePullRequest(pr); err != nil {
			s.failTask(task, err)
			return err
		}
	}

	local, err := s.mirror.ListPullRequests()
	if err != nil {
		s.failTask(task, err)
		return err
	}
	for _, pr := range local {
		if _, ok := seen[pr.ID]; ok {
			continue
		}
		if err := s.mirror.DeletePullRequest(pr.ID); err != nil {
			s.failTask(task, err)
			return err
		}
		logger.Debug(ctx, "PR eliminada del espejo, ya no existe en el remoto", "pr", pr.ID)
	}

	s.tasks.RemoveTask(task.ID)
	return nil
}

// SyncPullRequestDetails trae el detalle completo de una PR, lo fusiona con
// el estado optimista local, marca la PR como lista para mostrarse y anuncia
// el cambio por el bus. Si ya hay un sync de detalles corriendo para la misma
// PR, no arranca otro; detalles de PRs distintas sí corren en paralelo.
func (s *SyncService) SyncPullRequestDetails(ctx context.Context, pullRequestID string) error {
	if _, running := s.tasks.FindRunning(models.TaskTypeSyncPullRequestDetails, pullRequestID); running {
		logger.Debug(ctx, "sync de detalles ya en curso, se omite", "pr", pullRequestID)
		return nil
	}

	pr, err := s.mirror.GetPullRequest(pullRequestID)
	if err != nil {
		return err
	}
	if pr == nil {
		return fmt.Errorf("la PR '%s' no está en el espejo local", pullRequestID)
	}

	task := s.tasks.StartTask(models.TaskTypeSyncPullRequestDetails, pullRequestID, "sincronizando detalles")

	details, err := s.client.GetPullRequestDetails(ctx, *pr)
	if err != nil {
		s.failTask(task, err)
		return fmt.Errorf("error al sincronizar los detalles de la PR '%s': %w", pullRequestID, err)
	}

	if err := s.reviews.MergeAuthoritativeDetails(pullRequestID, *details); err != nil {
		s.failTask(task, err)
		return err
	}

	now := time.Now()
	pr.DetailsSyncedAt = &now
	if err := s.mirror.SavePullRequest(*pr); err != nil {
		s.failTask(task, err)
		return err
	}

	s.tasks.RemoveTask(task.ID)
	s.bus.Publish(ctx, models.ResourceUpdate{
		Type:       models.ResourceTypePullRequestDetails,
		ResourceID: pullRequestID,
	})
	return nil
}

// SyncAll refresca la lista y después los detalles de cada PR conocida.
// Un error en los detalles de una PR no frena a las demás.
func (s *SyncService) SyncAll(ctx context.Context) error {
	if err := s.SyncPullRequests(ctx); err != nil {
		return err
	}

	prs, err := s.mirror.ListPullRequests()
	if err != nil {
		return err
	}

	var firstErr error
	for _, pr := range prs {
		if err := s.SyncPullRequestDetails(ctx, pr.ID); err != nil {
			logger.Warn(ctx, "falló el sync de detalles", "pr", pr.ID, "error", err.Error())
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Run ejecuta SyncAll cada interval hasta que el contexto se cancele.
func (s *SyncService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncAll(ctx); err != nil {
				logger.Warn(ctx, "falló el sync periódico", "error", err.Error())
			}
		}
	}
}

func (s *SyncService) failTask(task models.Task, err error) {
	task.Status = models.TaskStatusError
	task.Message = err.Error()
	s.tasks.UpsertTask(task)
	s.tasks.RemoveTask(task.ID)
}
