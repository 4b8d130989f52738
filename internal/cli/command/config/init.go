package config

import (
	"context"
	"os"

	"github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config_init_usage", 0, nil),
		Action: func(_ context.Context, _ *cli.Command) error {
			// LoadConfig ya creó el archivo con los defaults; acá solo se
			// reescribe para dejarlo normalizado.
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			ui.PrintSuccess(os.Stdout, t.GetMessage("config_saved", 0, nil))
			return nil
		},
	}
}
