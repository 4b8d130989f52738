package models

import "time"

type (
	// AuthStatus es el estado de la máquina de autenticación por device code.
	AuthStatus string

	// AuthState es el estado observable del flujo de autenticación. Existe
	// exactamente uno por instancia del cliente.
	AuthState struct {
		Status          AuthStatus `json:"status"`
		UserCode        string     `json:"user_code,omitempty"`
		VerificationURI string     `json:"verification_uri,omitempty"`
		Error           string     `json:"error,omitempty"`
		User            *User      `json:"user,omitempty"`
	}

	// DeviceCode es la respuesta del endpoint de device code del proveedor.
	DeviceCode struct {
		DeviceCode      string `json:"device_code"`
		UserCode        string `json:"user_code"`
		VerificationURI string `json:"verification_uri"`
		ExpiresIn       int    `json:"expires_in"`
		Interval        int    `json:"interval"`
	}

	// Credential es el token persistido (cifrado) que consume el resto del cliente.
	Credential struct {
		AccessToken string    `json:"access_token"`
		TokenType   string    `json:"token_type,omitempty"`
		Scope       string    `json:"scope,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}
)

const (
	AuthStatusIdle          AuthStatus = "idle"
	AuthStatusRequesting    AuthStatus = "requesting"
	AuthStatusPolling       AuthStatus = "polling"
	AuthStatusAuthenticated AuthStatus = "authenticated"
	AuthStatusError         AuthStatus = "error"
)
