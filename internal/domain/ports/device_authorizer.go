package ports

import (
	"context"

	"github.com/Tomas-vilte/MateReview/internal/domain/models"
)

// PollResult es el resultado de un intento de canje del device code.
// Exactamente uno de Credential o ErrorCode viene cargado; un ErrorCode
// "authorization_pending" o "slow_down" no es terminal.
type PollResult struct {
	Credential *models.Credential
	ErrorCode  string
	ErrorDesc  string
}

// DeviceAuthorizer define los endpoints del flujo OAuth por device code.
type DeviceAuthorizer interface {
	// RequestDeviceCode pide un device code nuevo al proveedor.
	RequestDeviceCode(ctx context.Context) (*models.DeviceCode, error)
	// PollToken intenta canjear el device code por un token. Los errores de
	// transporte se devuelven como error; los códigos del protocolo vienen
	// en el PollResult.
	PollToken(ctx context.Context, deviceCode string) (*PollResult, error)
}
