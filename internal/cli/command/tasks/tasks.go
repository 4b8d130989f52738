package tasks

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

type TasksCommandFactory struct {
	container *di.Container
}

func NewTasksCommandFactory(container *di.Container) *TasksCommandFactory {
	return &TasksCommandFactory{container: container}
}

func (f *TasksCommandFactory) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: t.GetMessage("tasks_command_usage", 0, nil),
		Action: func(_ context.Context, _ *cli.Command) error {
			running := f.container.Tasks().RunningTasks()
			if len(running) == 0 {
				ui.PrintInfo(os.Stdout, t.GetMessage("tasks_empty", 0, nil))
				return nil
			}

			for _, task := range running {
				target := task.TargetID
				if target == "" {
					target = "-"
				}
				fmt.Printf("%s %s %s %s\n", ui.SyncEmoji, task.Type, ui.Dim.Sprint(target), task.Message)
			}
			return nil
		},
	}
}
