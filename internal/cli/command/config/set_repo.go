package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetRepoCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-repo",
		Usage: t.GetMessage("config_set_repo_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Usage:    t.GetMessage("config_set_repo_usage", 0, nil),
				Required: true,
			},
		},
		Action: func(_ context.Context, command *cli.Command) error {
			repo := command.String("repo")
			parts := strings.Split(repo, "/")
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				msg := t.GetMessage("config_invalid_repo", 0, map[string]interface{}{"Repo": repo})
				return fmt.Errorf("%s", msg)
			}

			cfg.RepositoryOwner = parts[0]
			cfg.RepositoryName = parts[1]
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("config_saved", 0, nil))
			return nil
		},
	}
}
