package summarize

import (
	"context"
	"fmt"
	"os"

	cfg "github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/ai"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/di"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

type SummarizeCommandFactory struct {
	container *di.Container
}

func NewSummarizeCommandFactory(container *di.Container) *SummarizeCommandFactory {
	return &SummarizeCommandFactory{container: container}
}

func (f *SummarizeCommandFactory) CreateCommand(t *i18n.Translations, appCfg *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "summarize",
		Usage: t.GetMessage("summarize_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "pr",
				Usage:    t.GetMessage("review_pr_flag_usage", 0, nil),
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			prID := command.String("pr")

			pr, err := f.container.Mirror().GetPullRequest(prID)
			if err != nil {
				return err
			}
			if pr == nil || pr.DetailsSyncedAt == nil {
				ui.PrintWarning(os.Stdout, t.GetMessage("summarize_missing_details", 0, nil))
				return nil
			}

			details, err := f.container.Mirror().GetDetails(prID)
			if err != nil {
				return err
			}

			content := ai.BuildReviewContent(*pr, details)
			if content == "" {
				msg := t.GetMessage("error_empty_prompt", 0, nil)
				return fmt.Errorf("%s", msg)
			}
			prompt := fmt.Sprintf(ai.GetReviewPromptTemplate(appCfg.Language), content)

			summarizer, err := f.container.GetReviewSummarizer(ctx)
			if err != nil {
				return err
			}

			spin := ui.NewSpinner(t.GetMessage("summarize_command_usage", 0, nil))
			spin.Start()
			summary, err := summarizer.SummarizeReview(ctx, prompt)
			if err != nil {
				spin.Error(err.Error())
				return err
			}
			spin.Stop()

			fmt.Printf("\n%s #%d %s\n\n", ui.MateEmoji, pr.Number, pr.Title)
			fmt.Println(summary.Overview)
			if len(summary.KeyChanges) > 0 {
				fmt.Println()
				for _, change := range summary.KeyChanges {
					fmt.Printf("  %s %s\n", ui.InfoEmoji, change)
				}
			}
			if len(summary.Risks) > 0 {
				fmt.Println()
				for _, risk := range summary.Risks {
					fmt.Printf("  %s %s\n", ui.WarningEmoji, risk)
				}
			}
			return nil
		},
	}
}
