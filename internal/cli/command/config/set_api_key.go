package config

import (
	"context"
	"os"

	"github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetAPIKeyCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-api-key",
		Usage: t.GetMessage("config_set_api_key_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "key",
				Aliases:  []string{"k"},
				Usage:    t.GetMessage("config_set_api_key_usage", 0, nil),
				Required: true,
			},
		},
		Action: func(_ context.Context, command *cli.Command) error {
			cfg.GeminiAPIKey = command.String("key")
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("config_saved", 0, nil))
			return nil
		},
	}
}
