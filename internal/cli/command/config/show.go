package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(_ context.Context, _ *cli.Command) error {
			repo := "-"
			if cfg.RepositoryOwner != "" {
				repo = cfg.RepositoryOwner + "/" + cfg.RepositoryName
			}
			apiKey := "-"
			if cfg.GeminiAPIKey != "" {
				apiKey = maskKey(cfg.GeminiAPIKey)
			}

			fmt.Printf("%s MateReview\n", ui.MateEmoji)
			fmt.Printf("  language:       %s\n", cfg.Language)
			fmt.Printf("  repository:     %s\n", repo)
			fmt.Printf("  sync interval:  %ds\n", cfg.SyncIntervalSeconds)
			fmt.Printf("  gemini model:   %s\n", cfg.GeminiModel)
			fmt.Printf("  gemini api key: %s\n", apiKey)
			fmt.Printf("  config file:    %s\n", cfg.PathFile)
			return nil
		},
	}
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
