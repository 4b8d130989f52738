package services

import (
	"context"
	"sync"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/logger"
)

// UpdateHandler procesa una notificación de recurso ya validada.
type UpdateHandler func(ctx context.Context, resourceID string)

// ResourceUpdateBus es el canal de notificaciones unidireccional entre el
// proceso de sincronización y el de presentación. Es fire-and-forget con
// entrega al menos una vez: no garantiza orden ni deduplica, así que los
// handlers tienen que ser idempotentes.
type ResourceUpdateBus struct {
	mu       sync.RWMutex
	ch       chan models.ResourceUpdate
	handlers map[string]UpdateHandler
	closed   bool
}

func NewResourceUpdateBus(buffer int) *ResourceUpdateBus {
	if buffer <= 0 {
		buffer = 64
	}
	return &ResourceUpdateBus{
		ch:       make(chan models.ResourceUpdate, buffer),
		handlers: make(map[string]UpdateHandler),
	}
}

// RegisterHandler asocia un handler a un tipo de recurso. Los eventos de
// tipos sin handler registrado se ignoran.
func (b *ResourceUpdateBus) RegisterHandler(resourceType string, handler UpdateHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[resourceType] = handler
}

// NewPullRequestDetailsHandler arma el consumidor de las notificaciones de
// detalles: lee el snapshot del espejo local (el sync que publicó ya hizo el
// merge y el sello) y avisa a los suscriptores de presentación. No toca el
// remoto, así el consumidor nunca re-dispara al publicador.
func NewPullRequestDetailsHandler(mirror *Mirror, reviews *ReviewService) UpdateHandler {
	return func(ctx context.Context, resourceID string) {
		pr, err := mirror.GetPullRequest(resourceID)
		if err != nil {
			logger.Warn(ctx, "no se pudo leer la PR notificada", "pr", resourceID, "error", err.Error())
			return
		}
		if pr == nil {
			logger.Debug(ctx, "notificación de una PR que no está en el espejo, ignorada", "pr", resourceID)
			return
		}
		reviews.NotifyUpdated(pr.ID)
	}
}

// Publish encola una notificación sin bloquear al publicador. Si la cola está
// llena el evento se descarta: el próximo sync periódico lo compensa.
func (b *ResourceUpdateBus) Publish(ctx context.Context, update models.ResourceUpdate) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	select {
	case b.ch <- update:
	default:
		logger.Warn(ctx, "cola de notificaciones llena, evento descartado",
			"resource", update.ResourceID, "type", update.Type)
	}
}

// Run consume notificaciones hasta que el contexto se cancele o el bus se
// cierre. Un ResourceID vacío se ignora siempre, sin fetch.
func (b *ResourceUpdateBus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-b.ch:
			if !ok {
				return
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *ResourceUpdateBus) dispatch(ctx context.Context, update models.ResourceUpdate) {
	if update.ResourceID == "" {
		logger.Debug(ctx, "notificación sin resource id, ignorada", "type", update.Type)
		return
	}

	b.mu.RLock()
	handler, ok := b.handlers[update.Type]
	b.mu.RUnlock()

	if !ok {
		logger.Debug(ctx, "notificación de tipo desconocido, ignorada", "type", update.Type)
		return
	}
	handler(ctx, update.ResourceID)
}

// Close cierra el bus. Publicar después de Close es un no-op.
func (b *ResourceUpdateBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}
