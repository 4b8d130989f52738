package auth

import (
	"context"
	"os"

	cfg "github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/di"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

type LogoutCommandFactory struct {
	container *di.Container
}

func NewLogoutCommandFactory(container *di.Container) *LogoutCommandFactory {
	return &LogoutCommandFactory{container: container}
}

func (f *LogoutCommandFactory) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: t.GetMessage("logout_command_usage", 0, nil),
		Action: func(_ context.Context, _ *cli.Command) error {
			if err := f.container.AuthService().Logout(); err != nil {
				return err
			}
			ui.PrintSuccess(os.Stdout, t.GetMessage("logout_success", 0, nil))
			return nil
		},
	}
}
