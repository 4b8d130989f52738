package auth

import (
	"context"
	"fmt"
	"os"

	cfg "github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/di"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

type WhoamiCommandFactory struct {
	container *di.Container
}

func NewWhoamiCommandFactory(container *di.Container) *WhoamiCommandFactory {
	return &WhoamiCommandFactory{container: container}
}

func (f *WhoamiCommandFactory) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: t.GetMessage("whoami_command_usage", 0, nil),
		Action: func(ctx context.Context, _ *cli.Command) error {
			if !f.container.AuthService().IsAuthenticated() {
				ui.PrintWarning(os.Stdout, t.GetMessage("whoami_not_authenticated", 0, nil))
				return nil
			}
			if err := f.container.Connect(ctx); err != nil {
				return err
			}
			if user := f.container.CurrentUser(); user != nil {
				fmt.Printf("%s %s\n", ui.MateEmoji, user.Login)
			}
			return nil
		},
	}
}
