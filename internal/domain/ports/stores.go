package ports

import "github.com/Tomas-vilte/MateReview/internal/domain/models"

// KeyValueStore es el almacenamiento local durable, indexado por clave.
// Get devuelve (nil, nil) cuando la clave no existe: la ausencia no es un error.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Keys devuelve las claves existentes con el prefijo dado.
	Keys(prefix string) ([]string, error)
}

// CredentialStore persiste la credencial cifrada. Load devuelve (nil, nil)
// cuando no hay credencial guardada.
type CredentialStore interface {
	Save(cred models.Credential) error
	Load() (*models.Credential, error)
	// Erase borra la credencial en forma permanente. Es idempotente.
	Erase() error
}
