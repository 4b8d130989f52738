package errors

import "fmt"

// NetworkError representa una falla de transporte hablando con el proveedor remoto.
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("error de red en '%s': %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError crea un nuevo error de red
func NewNetworkError(operation string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Err: err}
}

// RemoteRejectionError indica que el proveedor remoto rechazó la operación
// con una respuesta no exitosa.
type RemoteRejectionError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *RemoteRejectionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("el remoto rechazó '%s' (status %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("el remoto rechazó '%s': %s", e.Operation, e.Message)
}

// NewRemoteRejectionError crea un nuevo error de rechazo remoto
func NewRemoteRejectionError(operation string, statusCode int, message string) *RemoteRejectionError {
	return &RemoteRejectionError{Operation: operation, StatusCode: statusCode, Message: message}
}

// ReviewNotReadyError indica un intento de submit/cancel antes de que el remoto
// haya confirmado el id de la review pendiente.
type ReviewNotReadyError struct {
	PullRequestID string
}

func (e *ReviewNotReadyError) Error() string {
	return fmt.Sprintf("la review de la PR '%s' todavía no fue confirmada por el remoto", e.PullRequestID)
}

// NewReviewNotReadyError crea un nuevo error de review no confirmada
func NewReviewNotReadyError(pullRequestID string) *ReviewNotReadyError {
	return &ReviewNotReadyError{PullRequestID: pullRequestID}
}

// EncryptionError indica que el almacén de credenciales no pudo cifrar o
// descifrar en esta plataforma.
type EncryptionError struct {
	Operation string
	Err       error
}

func (e *EncryptionError) Error() string {
	return fmt.Sprintf("error de cifrado en '%s': %v", e.Operation, e.Err)
}

func (e *EncryptionError) Unwrap() error {
	return e.Err
}

// NewEncryptionError crea un nuevo error de cifrado
func NewEncryptionError(operation string, err error) *EncryptionError {
	return &EncryptionError{Operation: operation, Err: err}
}

// AuthTerminalError indica un resultado fatal del polling de device code
// (expired_token, access_denied o un código desconocido).
type AuthTerminalError struct {
	Code    string
	Message string
}

func (e *AuthTerminalError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("autenticación terminada ('%s'): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("autenticación terminada ('%s')", e.Code)
}

// NewAuthTerminalError crea un nuevo error terminal de autenticación
func NewAuthTerminalError(code, message string) *AuthTerminalError {
	return &AuthTerminalError{Code: code, Message: message}
}

// ReviewAlreadyStartedError indica que ya existe una review pendiente para la PR.
type ReviewAlreadyStartedError struct {
	PullRequestID string
}

func (e *ReviewAlreadyStartedError) Error() string {
	return fmt.Sprintf("ya hay una review en curso para la PR '%s'", e.PullRequestID)
}

// NewReviewAlreadyStartedError crea un nuevo error de review duplicada
func NewReviewAlreadyStartedError(pullRequestID string) *ReviewAlreadyStartedError {
	return &ReviewAlreadyStartedError{PullRequestID: pullRequestID}
}

// NotAuthenticatedError indica que no hay credencial disponible para llamadas remotas.
type NotAuthenticatedError struct{}

func (e *NotAuthenticatedError) Error() string {
	return "no hay una sesión iniciada; ejecutá 'matereview login'"
}

// NewNotAuthenticatedError crea un nuevo error de sesión ausente
func NewNotAuthenticatedError() *NotAuthenticatedError {
	return &NotAuthenticatedError{}
}
