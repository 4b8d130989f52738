package registry

import (
	"testing"

	"github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type mockCommandFactory struct {
	name string
}

func (m *mockCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{Name: m.name}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	translations, err := i18n.NewTranslations("es", "")
	require.NoError(t, err)
	return NewRegistry(&config.Config{}, translations)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("registers a new factory successfully", func(t *testing.T) {
		registry := newTestRegistry(t)

		err := registry.Register("sync", &mockCommandFactory{name: "sync"})

		assert.NoError(t, err)
		assert.Contains(t, registry.factories, "sync")
	})

	t.Run("rejects duplicated names", func(t *testing.T) {
		registry := newTestRegistry(t)
		require.NoError(t, registry.Register("sync", &mockCommandFactory{name: "sync"}))

		err := registry.Register("sync", &mockCommandFactory{name: "sync"})

		assert.Error(t, err)
	})
}

func TestRegistry_CreateCommands(t *testing.T) {
	t.Run("creates commands in registration order", func(t *testing.T) {
		registry := newTestRegistry(t)
		require.NoError(t, registry.Register("login", &mockCommandFactory{name: "login"}))
		require.NoError(t, registry.Register("sync", &mockCommandFactory{name: "sync"}))
		require.NoError(t, registry.Register("list", &mockCommandFactory{name: "list"}))

		commands := registry.CreateCommands()

		require.Len(t, commands, 3)
		assert.Equal(t, "login", commands[0].Name)
		assert.Equal(t, "sync", commands[1].Name)
		assert.Equal(t, "list", commands[2].Name)
	})
}
