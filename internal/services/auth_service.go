package services

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
	"github.com/Tomas-vilte/MateReview/internal/logger"
)

const (
	pollErrorAuthorizationPending = "authorization_pending"
	pollErrorSlowDown             = "slow_down"

	// El proveedor pide ensanchar el intervalo en 5 segundos ante slow_down;
	// el ensanche es pegajoso por el resto de la sesión de polling.
	slowDownPenaltySeconds = 5
)

// AuthService maneja la máquina de estados del login por device code:
// idle → requesting → polling → authenticated | error. Hay exactamente un
// poller activo; arrancar un login nuevo cancela al anterior y descarta sus
// respuestas tardías.
type AuthService struct {
	authorizer  ports.DeviceAuthorizer
	credentials ports.CredentialStore

	// intervalUnit existe para que los tests no esperen segundos reales.
	intervalUnit time.Duration

	// openURL abre la URL de verificación en el navegador. Se invoca una
	// sola vez por login, al entrar en polling. Puede ser nil.
	openURL func(url string)

	// identityCheck valida la credencial persistida contra el endpoint de
	// identidad antes de dar una sesión restaurada por buena. Si es nil la
	// credencial se acepta tal cual.
	identityCheck func(ctx context.Context, cred *models.Credential) error

	mu         sync.Mutex
	state      models.AuthState
	credential *models.Credential
	generation int
	cancelPoll context.CancelFunc
	listeners  []func(models.AuthState)
}

func NewAuthService(authorizer ports.DeviceAuthorizer, credentials ports.CredentialStore) *AuthService {
	return &AuthService{
		authorizer:   authorizer,
		credentials:  credentials,
		intervalUnit: time.Second,
		state:        models.AuthState{Status: models.AuthStatusIdle},
	}
}

// SetOpenURL registra el callback que abre la URL de verificación.
func (s *AuthService) SetOpenURL(open func(url string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openURL = open
}

// SetIdentityCheck registra la validación remota que corre Restore antes de
// pasar a authenticated.
func (s *AuthService) SetIdentityCheck(check func(ctx context.Context, cred *models.Credential) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identityCheck = check
}

// Subscribe registra un callback que recibe cada transición de estado.
func (s *AuthService) Subscribe(listener func(models.AuthState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// State devuelve el estado actual del flujo.
func (s *AuthService) State() models.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Credential devuelve la credencial activa, o nil si no hay sesión.
func (s *AuthService) Credential() *models.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

// IsAuthenticated indica si hay una sesión activa.
func (s *AuthService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Status == models.AuthStatusAuthenticated
}

func (s *AuthService) transition(state models.AuthState) {
	s.mu.Lock()
	s.state = state
	listeners := make([]func(models.AuthState), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(state)
	}
}

// Restore carga la credencial persistida, si la hay, la valida contra el
// endpoint de identidad y recién entonces deja el flujo en authenticated sin
// pasar por el navegador. Si no hay credencial guardada, o la validación
// falla, queda en idle.
func (s *AuthService) Restore(ctx context.Context) error {
	cred, err := s.credentials.Load()
	if err != nil {
		return err
	}
	if cred == nil {
		s.transition(models.AuthState{Status: models.AuthStatusIdle})
		return nil
	}

	s.mu.Lock()
	check := s.identityCheck
	s.mu.Unlock()
	if check != nil {
		if err := check(ctx, cred); err != nil {
			logger.Warn(ctx, "la credencial persistida no pasó la validación de identidad", "error", err.Error())
			s.transition(models.AuthState{Status: models.AuthStatusIdle})
			return nil
		}
	}

	s.mu.Lock()
	s.credential = cred
	s.mu.Unlock()
	s.transition(models.AuthState{Status: models.AuthStatusAuthenticated})
	logger.Debug(ctx, "sesión restaurada desde la credencial persistida")
	return nil
}

// StartLogin arranca un flujo de device code nuevo. Devuelve un canal que se
// resuelve cuando el flujo termina: nil si quedó autenticado, el error
// terminal si no. Si había un poller corriendo, se cancela primero.
func (s *AuthService) StartLogin(ctx context.Context) (<-chan error, error) {
	s.mu.Lock()
	if s.cancelPoll != nil {
		s.cancelPoll()
		s.cancelPoll = nil
	}
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	s.transition(models.AuthState{Status: models.AuthStatusRequesting})

	code, err := s.authorizer.RequestDeviceCode(ctx)
	if err != nil {
		s.failLogin(generation, err)
		return nil, err
	}

	s.transition(models.AuthState{
		Status:          models.AuthStatusPolling,
		UserCode:        code.UserCode,
		VerificationURI: code.VerificationURI,
	})

	s.mu.Lock()
	open := s.openURL
	s.mu.Unlock()
	if open != nil {
		open(code.VerificationURI)
	}

	pollCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if generation != s.generation {
		// Otro login arrancó mientras pedíamos el código.
		s.mu.Unlock()
		cancel()
		return nil, context.Canceled
	}
	s.cancelPoll = cancel
	s.mu.Unlock()

	done := make(chan error, 1)
	go s.poll(pollCtx, generation, *code, done)
	return done, nil
}

// poll canjea el device code en loop hasta autenticarse, agotar el código o
// ser cancelado. Los errores de transporte no son terminales: se reintenta
// en el próximo tick.
func (s *AuthService) poll(ctx context.Context, generation int, code models.DeviceCode, done chan<- error) {
	interval := time.Duration(code.Interval) * s.intervalUnit
	if interval <= 0 {
		interval = 5 * s.intervalUnit
	}
	deadline := time.Now().Add(time.Duration(code.ExpiresIn) * s.intervalUnit)

	for {
		select {
		case <-ctx.Done():
			done <- ctx.Err()
			return
		case <-time.After(interval):
		}

		if time.Now().After(deadline) {
			err := domainErrors.NewAuthTerminalError("expired_token", "el código de dispositivo expiró")
			s.failLogin(generation, err)
			done <- err
			return
		}

		result, err := s.authorizer.PollToken(ctx, code.DeviceCode)
		if err != nil {
			logger.Debug(ctx, "error transitorio canjeando el device code", "error", err.Error())
			continue
		}

		if result.Credential != nil {
			s.completeLogin(ctx, generation, *result.Credential, done)
			return
		}

		switch result.ErrorCode {
		case pollErrorAuthorizationPending:
			// El usuario todavía no autorizó: se sigue esperando.
		case pollErrorSlowDown:
			interval += slowDownPenaltySeconds * s.intervalUnit
		default:
			err := domainErrors.NewAuthTerminalError(result.ErrorCode, result.ErrorDesc)
			s.failLogin(generation, err)
			done <- err
			return
		}
	}
}

func (s *AuthService) completeLogin(ctx context.Context, generation int, cred models.Credential, done chan<- error) {
	s.mu.Lock()
	if generation != s.generation {
		// Confirmación tardía de un login ya superado: se descarta.
		s.mu.Unlock()
		done <- context.Canceled
		return
	}
	s.credential = &cred
	s.cancelPoll = nil
	s.mu.Unlock()

	if err := s.credentials.Save(cred); err != nil {
		// La sesión en memoria sigue válida aunque no se pudo persistir.
		logger.Warn(ctx, "no se pudo persistir la credencial", "error", err.Error())
	}
	s.transition(models.AuthState{Status: models.AuthStatusAuthenticated})
	done <- nil
}

func (s *AuthService) failLogin(generation int, err error) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	s.cancelPoll = nil
	s.mu.Unlock()
	s.transition(models.AuthState{Status: models.AuthStatusError, Error: err.Error()})
}

// CancelLogin aborta el poller activo, si lo hay, y vuelve a idle.
func (s *AuthService) CancelLogin() {
	s.mu.Lock()
	cancel := s.cancelPoll
	s.cancelPoll = nil
	s.generation++
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		s.transition(models.AuthState{Status: models.AuthStatusIdle})
	}
}

// Logout borra la credencial persistida y vuelve el flujo a idle.
func (s *AuthService) Logout() error {
	s.mu.Lock()
	if s.cancelPoll != nil {
		s.cancelPoll()
		s.cancelPoll = nil
	}
	s.generation++
	s.credential = nil
	s.mu.Unlock()

	if err := s.credentials.Erase(); err != nil {
		return err
	}
	s.transition(models.AuthState{Status: models.AuthStatusIdle})
	return nil
}
