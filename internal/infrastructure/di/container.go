package di

import (
	"context"
	"fmt"
	"time"

	"github.com/Tomas-vilte/MateReview/internal/config"
	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/ai/gemini"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/credentials"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/httpclient"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/storage"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/MateReview/internal/services"
)

// Container gestiona las dependencias de la aplicación. Los servicios que
// dependen del token de sesión se construyen recién cuando hay credencial.
type Container struct {
	config       *config.Config
	translations *i18n.Translations

	store       ports.KeyValueStore
	mirror      *services.Mirror
	drafts      *services.DraftService
	tasks       *services.TaskTracker
	bus         *services.ResourceUpdateBus
	auth        *services.AuthService
	reviews     *services.ReviewService
	sync        *services.SyncService
	summarizer  ports.ReviewSummarizer
	currentUser *models.User
}

// NewContainer arma el grafo de servicios sobre el almacenamiento local del
// directorio de datos. No toca la red.
func NewContainer(cfg *config.Config, trans *i18n.Translations) (*Container, error) {
	store, err := storage.NewFileStore(cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("error al abrir el almacenamiento local: %w", err)
	}

	credStore, err := credentials.NewAgeCredentialStore(cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("error al abrir el almacén de credenciales: %w", err)
	}

	c := &Container{
		config:       cfg,
		translations: trans,
		store:        store,
		mirror:       services.NewMirror(store),
		drafts:       services.NewDraftService(store),
		tasks:        services.NewTaskTracker(),
		bus:          services.NewResourceUpdateBus(0),
	}

	deviceFlow := github.NewDeviceFlow(httpclient.NewDefault(), cfg.OAuthClientID)
	c.auth = services.NewAuthService(deviceFlow, credStore)
	c.auth.SetIdentityCheck(func(ctx context.Context, cred *models.Credential) error {
		client := github.NewGitHubReviewClient(cfg.RepositoryOwner, cfg.RepositoryName, cred.AccessToken)
		_, err := client.CurrentUser(ctx)
		return err
	})

	return c, nil
}

// Start arranca el consumidor de notificaciones. Corre hasta que el contexto
// se cancele; va junto al ciclo de vida del proceso.
func (c *Container) Start(ctx context.Context) {
	go c.bus.Run(ctx)
}

func (c *Container) Config() *config.Config             { return c.config }
func (c *Container) Translations() *i18n.Translations   { return c.translations }
func (c *Container) Mirror() *services.Mirror           { return c.mirror }
func (c *Container) Drafts() *services.DraftService     { return c.drafts }
func (c *Container) Tasks() *services.TaskTracker       { return c.tasks }
func (c *Container) Bus() *services.ResourceUpdateBus   { return c.bus }
func (c *Container) AuthService() *services.AuthService { return c.auth }

// Connect construye los servicios que hablan con el remoto. Exige sesión
// activa y repositorio configurado; se llama después de Restore o del login.
func (c *Container) Connect(ctx context.Context) error {
	if c.sync != nil {
		return nil
	}

	cred := c.auth.Credential()
	if cred == nil {
		return domainErrors.NewNotAuthenticatedError()
	}
	if c.config.RepositoryOwner == "" || c.config.RepositoryName == "" {
		msg := c.translations.GetMessage("error_missing_repository", 0, nil)
		return fmt.Errorf("%s", msg)
	}

	client := github.NewGitHubReviewClient(c.config.RepositoryOwner, c.config.RepositoryName, cred.AccessToken)

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	c.currentUser = user

	// ReviewService y SyncService se necesitan mutuamente: el resync dirigido
	// posterior a un comentario se resuelve con esta indirection.
	var syncService *services.SyncService
	resync := func(ctx context.Context, pullRequestID string) error {
		if syncService == nil {
			return nil
		}
		return syncService.SyncPullRequestDetails(ctx, pullRequestID)
	}

	c.reviews = services.NewReviewService(client, c.mirror, c.drafts, resync, func() models.User {
		if c.currentUser == nil {
			return models.User{}
		}
		return *c.currentUser
	})
	syncService = services.NewSyncService(client, c.mirror, c.reviews, c.tasks, c.bus)
	c.sync = syncService

	// El consumidor del bus refresca la presentación desde el espejo local;
	// el re-fetch remoto ya lo hizo el sync que publicó el evento.
	c.bus.RegisterHandler(models.ResourceTypePullRequestDetails,
		services.NewPullRequestDetailsHandler(c.mirror, c.reviews))

	return nil
}

// CurrentUser devuelve la identidad resuelta en Connect, o nil.
func (c *Container) CurrentUser() *models.User {
	return c.currentUser
}

// ReviewService devuelve el servicio de reviews. Requiere Connect previo.
func (c *Container) ReviewService() (*services.ReviewService, error) {
	if c.reviews == nil {
		return nil, domainErrors.NewNotAuthenticatedError()
	}
	return c.reviews, nil
}

// SyncService devuelve el servicio de sincronización. Requiere Connect previo.
func (c *Container) SyncService() (*services.SyncService, error) {
	if c.sync == nil {
		return nil, domainErrors.NewNotAuthenticatedError()
	}
	return c.sync, nil
}

// SyncInterval devuelve el período configurado del sync de fondo.
func (c *Container) SyncInterval() time.Duration {
	return time.Duration(c.config.SyncIntervalSeconds) * time.Second
}

// GetReviewSummarizer construye (una sola vez) el resumidor con Gemini.
func (c *Container) GetReviewSummarizer(ctx context.Context) (ports.ReviewSummarizer, error) {
	if c.summarizer != nil {
		return c.summarizer, nil
	}

	summarizer, err := gemini.NewGeminiReviewSummarizer(ctx, c.config, c.translations)
	if err != nil {
		return nil, err
	}
	c.summarizer = summarizer
	return summarizer, nil
}
