package credentials

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
)

var _ ports.CredentialStore = (*AgeCredentialStore)(nil)

const (
	identityFile   = "identity.key"
	credentialFile = "credential.age"
)

// AgeCredentialStore persiste la credencial cifrada con age (x25519). La
// identidad se genera una sola vez y queda con permisos 0600 al lado del
// blob cifrado; el token nunca toca el disco en texto plano.
type AgeCredentialStore struct {
	dir string
}

func NewAgeCredentialStore(dir string) (*AgeCredentialStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("error creando el directorio de credenciales: %w", err)
	}
	return &AgeCredentialStore{dir: dir}, nil
}

func (s *AgeCredentialStore) Save(cred models.Credential) error {
	identity, err := s.loadOrCreateIdentity()
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("error serializando la credencial: %w", err)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, identity.Recipient())
	if err != nil {
		return domainErrors.NewEncryptionError("encrypt", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return domainErrors.NewEncryptionError("encrypt", err)
	}
	if err := writer.Close(); err != nil {
		return domainErrors.NewEncryptionError("encrypt", err)
	}

	path := filepath.Join(s.dir, credentialFile)
	if err := os.WriteFile(path, ciphertext.Bytes(), 0600); err != nil {
		return fmt.Errorf("error escribiendo la credencial: %w", err)
	}
	return nil
}

func (s *AgeCredentialStore) Load() (*models.Credential, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, credentialFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error leyendo la credencial: %w", err)
	}

	identity, err := s.loadIdentity()
	if err != nil {
		return nil, err
	}
	if identity == nil {
		// Hay blob pero no identidad: imposible descifrar en esta máquina.
		return nil, domainErrors.NewEncryptionError("decrypt", fmt.Errorf("no existe la identidad local"))
	}

	reader, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, domainErrors.NewEncryptionError("decrypt", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, domainErrors.NewEncryptionError("decrypt", err)
	}

	var cred models.Credential
	if err := json.Unmarshal(plaintext, &cred); err != nil {
		return nil, fmt.Errorf("error deserializando la credencial: %w", err)
	}
	return &cred, nil
}

func (s *AgeCredentialStore) Erase() error {
	if err := os.Remove(filepath.Join(s.dir, credentialFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error borrando la credencial: %w", err)
	}
	return nil
}

func (s *AgeCredentialStore) loadIdentity() (*age.X25519Identity, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, identityFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error leyendo la identidad: %w", err)
	}

	identity, err := age.ParseX25519Identity(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, domainErrors.NewEncryptionError("parse-identity", err)
	}
	return identity, nil
}

func (s *AgeCredentialStore) loadOrCreateIdentity() (*age.X25519Identity, error) {
	identity, err := s.loadIdentity()
	if err != nil {
		return nil, err
	}
	if identity != nil {
		return identity, nil
	}

	identity, err = age.GenerateX25519Identity()
	if err != nil {
		return nil, domainErrors.NewEncryptionError("generate-identity", err)
	}

	path := filepath.Join(s.dir, identityFile)
	if err := os.WriteFile(path, []byte(identity.String()+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("error escribiendo la identidad: %w", err)
	}
	return identity, nil
}
