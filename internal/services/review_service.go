package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
	"github.com/Tomas-vilte/MateReview/internal/logger"
	"github.com/google/uuid"
)

// ResyncFunc dispara un re-fetch dirigido de los detalles de una PR.
type ResyncFunc func(ctx context.Context, pullRequestID string) error

// ReviewService mantiene la vista "autoritativo más pendiente" de reviews y
// comentarios por PR. Las mutaciones del usuario se aplican localmente de
// forma sincrónica y se confirman contra el remoto en segundo plano; si el
// remoto falla, el estado local vuelve exactamente a como estaba.
//
// Las operaciones sobre una misma PR se serializan con un mutex por clave;
// las de PRs distintas corren en paralelo. Ningún lock se sostiene durante
// una llamada de red: el valor optimista y la foto previa se capturan antes.
type ReviewService struct {
	client    ports.ReviewClient
	mirror    *Mirror
	drafts    *DraftService
	resync    ResyncFunc
	localUser func() models.User

	mu        sync.Mutex
	locks     map[string]*sync.Mutex
	listeners []func(pullRequestID string)
}

func NewReviewService(client ports.ReviewClient, mirror *Mirror, drafts *DraftService, resync ResyncFunc, localUser func() models.User) *ReviewService {
	if localUser == nil {
		localUser = func() models.User { return models.User{} }
	}
	return &ReviewService{
		client:    client,
		mirror:    mirror,
		drafts:    drafts,
		resync:    resync,
		localUser: localUser,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Subscribe registra un callback que se dispara con cada cambio de estado de una PR.
func (s *ReviewService) Subscribe(listener func(pullRequestID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// NotifyUpdated avisa a los suscriptores que la PR cambió en el espejo local.
// Lo usa el consumidor del bus de notificaciones para refrescar la
// presentación sin volver a tocar el remoto.
func (s *ReviewService) NotifyUpdated(pullRequestID string) {
	s.notify(pullRequestID)
}

func (s *ReviewService) notify(pullRequestID string) {
	s.mu.Lock()
	listeners := make([]func(string), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(pullRequestID)
	}
}

func (s *ReviewService) lockFor(pullRequestID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[pullRequestID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[pullRequestID] = lock
	}
	return lock
}

// GetPendingReview devuelve la review pendiente de la PR, o nil si no hay.
func (s *ReviewService) GetPendingReview(pullRequestID string) (*models.PendingReview, error) {
	return s.mirror.GetPendingReview(pullRequestID)
}

// GetDetails devuelve la vista fusionada de detalles de la PR.
func (s *ReviewService) GetDetails(pullRequestID string) (*models.PullRequestDetails, error) {
	return s.mirror.GetDetails(pullRequestID)
}

// StartReview instala una review pendiente optimista y confirma la creación
// contra el remoto en segundo plano. Si ya hay una review pendiente para la
// PR no hace nada y devuelve ReviewAlreadyStartedError.
func (s *ReviewService) StartReview(ctx context.Context, pullRequestID string) (<-chan error, error) {
	lock := s.lockFor(pullRequestID)
	lock.Lock()

	existing, err := s.mirror.GetPendingReview(pullRequestID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if existing != nil {
		lock.Unlock()
		return nil, domainErrors.NewReviewAlreadyStartedError(pullRequestID)
	}

	pr, err := s.mirror.GetPullRequest(pullRequestID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if pr == nil {
		lock.Unlock()
		return nil, fmt.Errorf("la PR '%s' no está en el espejo local", pullRequestID)
	}

	tempID := models.TempIDPrefix + uuid.NewString()
	optimistic := models.PendingReview{
		PullRequestID:   pullRequestID,
		GitHubID:        tempID,
		GitHubNumericID: 0,
		State:           models.ReviewStatePending,
		CreatedAt:       time.Now(),
	}
	if err := s.mirror.SavePendingReview(optimistic); err != nil {
		lock.Unlock()
		return nil, err
	}
	lock.Unlock()
	s.notify(pullRequestID)

	done := make(chan error, 1)
	go s.confirmStartReview(ctx, *pr, tempID, done)
	return done, nil
}

func (s *ReviewService) confirmStartReview(ctx context.Context, pr models.PullRequest, tempID string, done chan<- error) {
	confirmed, err := s.client.CreateReview(ctx, pr.RepositoryOwner, pr.RepositoryName, pr.Number)

	lock := s.lockFor(pr.ID)
	lock.Lock()
	current, loadErr := s.mirror.GetPendingReview(pr.ID)
	if loadErr != nil {
		lock.Unlock()
		done <- loadErr
		return
	}
	if current == nil || current.GitHubID != tempID {
		// La review fue cancelada localmente mientras se confirmaba: la
		// respuesta tardía se descarta.
		lock.Unlock()
		logger.Debug(ctx, "confirmación tardía de review descartada", "pr", pr.ID)
		done <- nil
		return
	}

	if err != nil {
		// Sin confirmación no queda estado parcial: la review optimista se borra.
		if delErr := s.mirror.DeletePendingReview(pr.ID); delErr != nil {
			logger.Error(ctx, "no se pudo deshacer la review optimista", delErr, "pr", pr.ID)
		}
		lock.Unlock()
		s.notify(pr.ID)
		done <- err
		return
	}

	current.GitHubID = confirmed.GitHubID
	current.GitHubNumericID = confirmed.GitHubNumericID
	current.State = confirmed.State
	saveErr := s.mirror.SavePendingReview(*current)
	lock.Unlock()
	s.notify(pr.ID)
	done <- saveErr
}

// AddComment agrega un comentario optimista al detalle de la PR y lo publica
// en el remoto en segundo plano. Si la publicación falla, se elimina
// exactamente ese comentario y el borrador vuelve a su texto previo.
func (s *ReviewService) AddComment(ctx context.Context, pullRequestID, body, path string, line int, replyTo string) (<-chan error, error) {
	if strings.HasPrefix(replyTo, models.TempIDPrefix) {
		return nil, fmt.Errorf("no se puede responder a un comentario todavía no confirmado")
	}

	lock := s.lockFor(pullRequestID)
	lock.Lock()

	pr, err := s.mirror.GetPullRequest(pullRequestID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if pr == nil {
		lock.Unlock()
		return nil, fmt.Errorf("la PR '%s' no está en el espejo local", pullRequestID)
	}

	details, err := s.mirror.GetDetails(pullRequestID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if details == nil {
		details = &models.PullRequestDetails{PullRequestID: pullRequestID}
	}

	draftKey := CommentDraftKey(pullRequestID)
	if replyTo != "" {
		draftKey = ReplyDraftKey(pullRequestID, replyTo)
	}
	previousDraft, err := s.drafts.Get(draftKey)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if err := s.drafts.Clear(draftKey); err != nil {
		lock.Unlock()
		return nil, err
	}

	tempID := models.TempIDPrefix + uuid.NewString()
	optimistic := models.Comment{
		ID:        tempID,
		Body:      body,
		Path:      path,
		Line:      line,
		Author:    s.localUser(),
		InReplyTo: replyTo,
		CreatedAt: time.Now(),
	}
	details.Comments = append(details.Comments, optimistic)
	if err := s.mirror.SaveDetails(*details); err != nil {
		lock.Unlock()
		return nil, err
	}
	lock.Unlock()
	s.notify(pullRequestID)

	done := make(chan error, 1)
	go s.confirmAddComment(ctx, *pr, tempID, draftKey, previousDraft, body, path, line, replyTo, done)
	return done, nil
}

func (s *ReviewService) confirmAddComment(ctx context.Context, pr models.PullRequest, tempID, draftKey, previousDraft, body, path string, line int, replyTo string, done chan<- error) {
	req := ports.CommentRequest{
		Owner:      pr.RepositoryOwner,
		Repo:       pr.RepositoryName,
		PullNumber: pr.Number,
		Body:       body,
		Path:       path,
		Line:       line,
	}
	if replyTo != "" {
		parentID, err := strconv.ParseInt(replyTo, 10, 64)
		if err == nil {
			req.InReplyTo = parentID
		}
	}

	confirmed, err := s.client.CreateComment(ctx, req)
	if err != nil {
		s.rollbackComment(ctx, pr.ID, tempID, draftKey, previousDraft, body)
		done <- err
		return
	}

	s.replaceTempComment(pr.ID, tempID, *confirmed)
	s.notify(pr.ID)

	// El resync dirigido trae la versión autoritativa del comentario; si
	// falla lo compensa el próximo sync periódico.
	if s.resync != nil {
		if err := s.resync(ctx, pr.ID); err != nil {
			logger.Warn(ctx, "falló el resync posterior al comentario", "pr", pr.ID, "error", err.Error())
		}
	}
	done <- nil
}

// rollbackComment elimina exactamente el comentario con el id temporal dado
// y restaura el borrador. Si no había borrador previo se guarda el texto
// enviado, para que el usuario no pierda lo que escribió.
func (s *ReviewService) rollbackComment(ctx context.Context, pullRequestID, tempID, draftKey, previousDraft, body string) {
	lock := s.lockFor(pullRequestID)
	lock.Lock()

	details, err := s.mirror.GetDetails(pullRequestID)
	if err == nil && details != nil {
		filtered := details.Comments[:0]
		for _, comment := range details.Comments {
			if comment.ID != tempID {
				filtered = append(filtered, comment)
			}
		}
		details.Comments = filtered
		if saveErr := s.mirror.SaveDetails(*details); saveErr != nil {
			logger.Error(ctx, "no se pudo deshacer el comentario optimista", saveErr, "pr", pullRequestID)
		}
	}

	restored := previousDraft
	if restored == "" {
		restored = body
	}
	if restored != "" {
		if draftErr := s.drafts.Set(draftKey, restored); draftErr != nil {
			logger.Error(ctx, "no se pudo restaurar el borrador", draftErr, "pr", pullRequestID)
		}
	}
	lock.Unlock()
	s.notify(pullRequestID)
}

// replaceTempComment cambia el comentario temporal por la versión confirmada,
// cuidando no duplicarla si un merge autoritativo llegó primero.
func (s *ReviewService) replaceTempComment(pullRequestID, tempID string, confirmed models.Comment) {
	lock := s.lockFor(pullRequestID)
	lock.Lock()
	defer lock.Unlock()

	details, err := s.mirror.GetDetails(pullRequestID)
	if err != nil || details == nil {
		return
	}

	alreadyPresent := false
	for _, comment := range details.Comments {
		if comment.ID == confirmed.ID {
			alreadyPresent = true
			break
		}
	}

	replaced := false
	filtered := details.Comments[:0]
	for _, comment := range details.Comments {
		switch {
		case comment.ID != tempID:
			filtered = append(filtered, comment)
		case alreadyPresent:
			replaced = true // el autoritativo ya está: el temporal solo se elimina
		default:
			filtered = append(filtered, confirmed)
			replaced = true
		}
	}
	details.Comments = filtered

	if replaced {
		if err := s.mirror.SaveDetails(*details); err != nil {
			logger.Error(context.Background(), "no se pudo confirmar el comentario", err, "pr", pullRequestID)
		}
	}
}

// SubmitReview envía la review pendiente. Exige que el remoto ya haya
// confirmado el id numérico; si no, devuelve ReviewNotReadyError sin tocar
// nada ni llamar al remoto.
func (s *ReviewService) SubmitReview(ctx context.Context, pullRequestID string, event models.ReviewEvent, body string) (<-chan error, error) {
	lock := s.lockFor(pullRequestID)
	lock.Lock()

	pending, err := s.mirror.GetPendingReview(pullRequestID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if pending == nil {
		lock.Unlock()
		return nil, fmt.Errorf("no hay una review pendiente para la PR '%s'", pullRequestID)
	}
	if !pending.IsConfirmed() {
		lock.Unlock()
		return nil, domainErrors.NewReviewNotReadyError(pullRequestID)
	}

	pr, err := s.mirror.GetPullRequest(pullRequestID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if pr == nil {
		lock.Unlock()
		return nil, fmt.Errorf("la PR '%s' no está en el espejo local", pullRequestID)
	}

	// Foto previa para poder deshacer si el remoto rechaza el envío.
	previous := *pending
	draftKey := CommentDraftKey(pullRequestID)
	previousDraft, err := s.drafts.Get(draftKey)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	if err := s.drafts.Clear(draftKey); err != nil {
		lock.Unlock()
		return nil, err
	}
	if err := s.mirror.DeletePendingReview(pullRequestID); err != nil {
		lock.Unlock()
		return nil, err
	}
	lock.Unlock()
	s.notify(pullRequestID)

	done := make(chan error, 1)
	go func() {
		err := s.client.SubmitReview(ctx, ports.SubmitRequest{
			Owner:      pr.RepositoryOwner,
			Repo:       pr.RepositoryName,
			PullNumber: pr.Number,
			ReviewID:   previous.GitHubNumericID,
			Event:      event,
			Body:       body,
		})
		if err != nil {
			s.rollbackPendingReview(ctx, pullRequestID, previous, draftKey, previousDraft)
			done <- err
			return
		}
		// La review enviada pasa a ser historia autoritativa; los comentarios
		// pendientes de la review ya no tienen razón de ser.
		if clearErr := s.mirror.SavePendingReviewComments(pullRequestID, nil); clearErr != nil {
			logger.Warn(ctx, "no se pudieron limpiar los comentarios pendientes", "pr", pullRequestID, "error", clearErr.Error())
		}
		done <- nil
	}()
	return done, nil
}

// CancelReview descarta la review pendiente. Mientras el remoto no haya
// confirmado el id, es una operación puramente local sin llamada de red.
func (s *ReviewService) CancelReview(ctx context.Context, pullRequestID string) (<-chan error, error) {
	lock := s.lockFor(pullRequestID)
	lock.Lock()

	pending, err := s.mirror.GetPendingReview(pullRequestID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if pending == nil {
		lock.Unlock()
		return nil, fmt.Errorf("no hay una review pendiente para la PR '%s'", pullRequestID)
	}

	draftKey := CommentDraftKey(pullRequestID)
	previousDraft, err := s.drafts.Get(draftKey)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	if !pending.IsConfirmed() {
		if err := s.removePendingLocally(pullRequestID, draftKey); err != nil {
			lock.Unlock()
			return nil, err
		}
		lock.Unlock()
		s.notify(pullRequestID)

		done := make(chan error, 1)
		done <- nil
		close(done)
		return done, nil
	}

	pr, err := s.mirror.GetPullRequest(pullRequestID)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if pr == nil {
		lock.Unlock()
		return nil, fmt.Errorf("la PR '%s' no está en el espejo local", pullRequestID)
	}

	previous := *pending
	if err := s.removePendingLocally(pullRequestID, draftKey); err != nil {
		lock.Unlock()
		return nil, err
	}
	lock.Unlock()
	s.notify(pullRequestID)

	done := make(chan error, 1)
	go func() {
		err := s.client.DeleteReview(ctx, pr.RepositoryOwner, pr.RepositoryName, pr.Number, previous.GitHubNumericID)
		if err != nil {
			s.rollbackPendingReview(ctx, pullRequestID, previous, draftKey, previousDraft)
			done <- err
			return
		}
		done <- nil
	}()
	return done, nil
}

func (s *ReviewService) removePendingLocally(pullRequestID, draftKey string) error {
	if err := s.drafts.Clear(draftKey); err != nil {
		return err
	}
	if err := s.mirror.SavePendingReviewComments(pullRequestID, nil); err != nil {
		return err
	}
	return s.mirror.DeletePendingReview(pullRequestID)
}

// rollbackPendingReview restaura la review pendiente y el borrador tal como
// estaban antes de la operación optimista.
func (s *ReviewService) rollbackPendingReview(ctx context.Context, pullRequestID string, previous models.PendingReview, draftKey, previousDraft string) {
	lock := s.lockFor(pullRequestID)
	lock.Lock()

	if err := s.mirror.SavePendingReview(previous); err != nil {
		logger.Error(ctx, "no se pudo restaurar la review pendiente", err, "pr", pullRequestID)
	}
	if previousDraft != "" {
		if err := s.drafts.Set(draftKey, previousDraft); err != nil {
			logger.Error(ctx, "no se pudo restaurar el borrador", err, "pr", pullRequestID)
		}
	}
	lock.Unlock()
	s.notify(pullRequestID)
}

// MergeAuthoritativeDetails reemplaza los detalles guardados por la foto
// autoritativa recién traída, arrastrando los comentarios optimistas del
// estado previo que todavía no fueron confirmados. Los autoritativos quedan
// primero en el orden del servidor; los temporales después, en su orden de
// creación local. La operación es idempotente ante entregas repetidas.
func (s *ReviewService) MergeAuthoritativeDetails(pullRequestID string, fresh models.PullRequestDetails) error {
	lock := s.lockFor(pullRequestID)
	lock.Lock()

	previous, err := s.mirror.GetDetails(pullRequestID)
	if err != nil {
		lock.Unlock()
		return err
	}

	seen := make(map[string]struct{}, len(fresh.Comments))
	for _, comment := range fresh.Comments {
		seen[comment.ID] = struct{}{}
	}

	if previous != nil {
		for _, comment := range previous.Comments {
			if !comment.IsOptimistic() {
				continue
			}
			if _, ok := seen[comment.ID]; ok {
				continue
			}
			fresh.Comments = append(fresh.Comments, comment)
		}
	}

	fresh.PullRequestID = pullRequestID
	fresh.SyncedAt = time.Now()
	err = s.mirror.SaveDetails(fresh)
	lock.Unlock()

	if err != nil {
		return err
	}
	s.notify(pullRequestID)
	return nil
}

// AddPendingReviewComment agrega un comentario de línea a la review en curso.
// Es local y durable: no toca el remoto.
func (s *ReviewService) AddPendingReviewComment(pullRequestID, path string, line int, body string) (models.PendingReviewComment, error) {
	lock := s.lockFor(pullRequestID)
	lock.Lock()
	defer lock.Unlock()

	comments, err := s.mirror.GetPendingReviewComments(pullRequestID)
	if err != nil {
		return models.PendingReviewComment{}, err
	}

	comment := models.PendingReviewComment{
		ID:            models.TempIDPrefix + uuid.NewString(),
		PullRequestID: pullRequestID,
		Path:          path,
		Line:          line,
		Body:          body,
		CreatedAt:     time.Now(),
	}
	comments = append(comments, comment)
	if err := s.mirror.SavePendingReviewComments(pullRequestID, comments); err != nil {
		return models.PendingReviewComment{}, err
	}
	return comment, nil
}

// ListPendingReviewComments devuelve los comentarios todavía no enviados de
// la review en curso.
func (s *ReviewService) ListPendingReviewComments(pullRequestID string) ([]models.PendingReviewComment, error) {
	return s.mirror.GetPendingReviewComments(pullRequestID)
}
