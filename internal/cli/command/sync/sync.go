package sync

import (
	"context"
	"os"

	cfg "github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/di"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

type SyncCommandFactory struct {
	container *di.Container
}

func NewSyncCommandFactory(container *di.Container) *SyncCommandFactory {
	return &SyncCommandFactory{container: container}
}

func (f *SyncCommandFactory) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: t.GetMessage("sync_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "details",
				Aliases: []string{"d"},
				Usage:   t.GetMessage("sync_details_flag_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if err := f.container.Connect(ctx); err != nil {
				return err
			}
			syncService, err := f.container.SyncService()
			if err != nil {
				return err
			}

			spin := ui.NewSpinner(t.GetMessage("sync_command_usage", 0, nil))
			spin.Start()

			if command.Bool("details") {
				err = syncService.SyncAll(ctx)
			} else {
				err = syncService.SyncPullRequests(ctx)
			}
			if err != nil {
				spin.Error(t.GetMessage("sync_error", 0, map[string]interface{}{"Error": err.Error()}))
				return err
			}
			spin.Stop()

			prs, err := f.container.Mirror().ListPullRequests()
			if err != nil {
				return err
			}
			ui.PrintSuccess(os.Stdout, t.GetMessage("sync_success", 0, map[string]interface{}{"Count": len(prs)}))
			return nil
		},
	}
}
