package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeCredentialStore(t *testing.T) {
	t.Run("should return nil when no credential is stored", func(t *testing.T) {
		store, err := NewAgeCredentialStore(t.TempDir())
		require.NoError(t, err)

		cred, err := store.Load()

		require.NoError(t, err)
		assert.Nil(t, cred)
	})

	t.Run("should round-trip a credential encrypted on disk", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewAgeCredentialStore(dir)
		require.NoError(t, err)

		original := models.Credential{
			AccessToken: "gho_secreto",
			TokenType:   "bearer",
			Scope:       "repo",
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		}
		require.NoError(t, store.Save(original))

		// El token no puede aparecer en texto plano en el blob.
		raw, err := os.ReadFile(filepath.Join(dir, credentialFile))
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "gho_secreto")

		loaded, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, original.AccessToken, loaded.AccessToken)
		assert.Equal(t, original.Scope, loaded.Scope)
	})

	t.Run("should survive a new store instance", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewAgeCredentialStore(dir)
		require.NoError(t, err)
		require.NoError(t, store.Save(models.Credential{AccessToken: "tok"}))

		reopened, err := NewAgeCredentialStore(dir)
		require.NoError(t, err)
		loaded, err := reopened.Load()

		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "tok", loaded.AccessToken)
	})

	t.Run("should erase permanently and idempotently", func(t *testing.T) {
		store, err := NewAgeCredentialStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, store.Save(models.Credential{AccessToken: "tok"}))

		require.NoError(t, store.Erase())
		require.NoError(t, store.Erase())

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("should report an encryption error when the identity is missing", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewAgeCredentialStore(dir)
		require.NoError(t, err)
		require.NoError(t, store.Save(models.Credential{AccessToken: "tok"}))
		require.NoError(t, os.Remove(filepath.Join(dir, identityFile)))

		_, err = store.Load()

		var encErr *domainErrors.EncryptionError
		assert.True(t, errors.As(err, &encErr))
	})
}
