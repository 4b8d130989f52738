package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	require.NoError(t, err)
}

func TestNewTranslations(t *testing.T) {
	t.Run("should load embedded defaults", func(t *testing.T) {
		trans, err := NewTranslations("en", t.TempDir())

		require.NoError(t, err)
		msg := trans.GetMessage("logout_success", 0, nil)
		assert.Contains(t, msg, "Signed out")
	})

	t.Run("should load locale files from the given directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[logout_success]
		other = "Sesión cerrada."
		`)

		trans, err := NewTranslations("es", tmpDir)

		require.NoError(t, err)
		assert.Equal(t, "Sesión cerrada.", trans.GetMessage("logout_success", 0, nil))
	})

	t.Run("should interpolate template data", func(t *testing.T) {
		trans, err := NewTranslations("en", t.TempDir())
		require.NoError(t, err)

		msg := trans.GetMessage("login_success", 0, map[string]interface{}{"Login": "tomas"})
		assert.Contains(t, msg, "tomas")
	})

	t.Run("should report missing messages instead of panicking", func(t *testing.T) {
		trans, err := NewTranslations("en", t.TempDir())
		require.NoError(t, err)

		msg := trans.GetMessage("no_such_message", 0, nil)
		assert.Contains(t, msg, "Translation missing")
	})
}

func TestSetLanguage(t *testing.T) {
	t.Run("should reject an unsupported language", func(t *testing.T) {
		trans, err := NewTranslations("en", t.TempDir())
		require.NoError(t, err)

		assert.Error(t, trans.SetLanguage("fr"))
	})

	t.Run("should switch to a loaded language", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
		[logout_success]
		other = "Sesión cerrada."
		`)
		trans, err := NewTranslations("en", tmpDir)
		require.NoError(t, err)

		require.NoError(t, trans.SetLanguage("es"))
		assert.Equal(t, "Sesión cerrada.", trans.GetMessage("logout_success", 0, nil))
	})
}
