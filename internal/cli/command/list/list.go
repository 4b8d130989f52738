package list

import (
	"context"
	"fmt"
	"os"

	cfg "github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/di"
	"github.com/Tomas-vilte/MateReview/internal/services"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

type ListCommandFactory struct {
	container *di.Container
}

func NewListCommandFactory(container *di.Container) *ListCommandFactory {
	return &ListCommandFactory{container: container}
}

func (f *ListCommandFactory) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: t.GetMessage("list_command_usage", 0, nil),
		Action: func(_ context.Context, _ *cli.Command) error {
			prs, err := f.container.Mirror().ListPullRequests()
			if err != nil {
				return err
			}

			ready := services.ReadyPullRequests(prs)
			if len(ready) == 0 {
				ui.PrintInfo(os.Stdout, t.GetMessage("list_empty", 0, nil))
				return nil
			}

			for _, pr := range ready {
				number := ui.Accent.Sprintf("#%d", pr.Number)
				fmt.Printf("%s %s %s %s\n", number, pr.Title, ui.Dim.Sprintf("@%s", pr.Author.Login), ui.Dim.Sprint(pr.ID))
			}
			return nil
		},
	}
}
