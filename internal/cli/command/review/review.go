package review

import (
	"context"
	"errors"
	"fmt"
	"os"

	cfg "github.com/Tomas-vilte/MateReview/internal/config"
	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/di"
	"github.com/Tomas-vilte/MateReview/internal/services"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

type ReviewCommandFactory struct {
	container *di.Container
}

func NewReviewCommandFactory(container *di.Container) *ReviewCommandFactory {
	return &ReviewCommandFactory{container: container}
}

func (f *ReviewCommandFactory) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: t.GetMessage("review_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newStartCommand(t),
			f.newCommentCommand(t),
			f.newSubmitCommand(t),
			f.newCancelCommand(t),
		},
	}
}

func (f *ReviewCommandFactory) reviewService(ctx context.Context) (*services.ReviewService, error) {
	if err := f.container.Connect(ctx); err != nil {
		return nil, err
	}
	return f.container.ReviewService()
}

func prFlag(t *i18n.Translations) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "pr",
		Usage:    t.GetMessage("review_pr_flag_usage", 0, nil),
		Required: true,
	}
}

func (f *ReviewCommandFactory) newStartCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: t.GetMessage("review_start_usage", 0, nil),
		Flags: []cli.Flag{prFlag(t)},
		Action: func(ctx context.Context, command *cli.Command) error {
			service, err := f.reviewService(ctx)
			if err != nil {
				return err
			}
			prID := command.String("pr")

			done, err := service.StartReview(ctx, prID)
			var alreadyStarted *domainErrors.ReviewAlreadyStartedError
			if errors.As(err, &alreadyStarted) {
				ui.PrintInfo(os.Stdout, t.GetMessage("review_already_started", 0, map[string]interface{}{"PullRequestID": prID}))
				return nil
			}
			if err != nil {
				return err
			}
			if err := <-done; err != nil {
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("review_started", 0, map[string]interface{}{"PullRequestID": prID}))
			return nil
		},
	}
}

func (f *ReviewCommandFactory) newCommentCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "comment",
		Usage: t.GetMessage("review_comment_usage", 0, nil),
		Flags: []cli.Flag{
			prFlag(t),
			&cli.StringFlag{
				Name:     "body",
				Aliases:  []string{"b"},
				Usage:    t.GetMessage("review_body_flag_usage", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: t.GetMessage("review_path_flag_usage", 0, nil),
			},
			&cli.IntFlag{
				Name:  "line",
				Usage: t.GetMessage("review_line_flag_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "reply-to",
				Usage: t.GetMessage("review_reply_flag_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			service, err := f.reviewService(ctx)
			if err != nil {
				return err
			}
			prID := command.String("pr")

			done, err := service.AddComment(ctx, prID, command.String("body"), command.String("path"), int(command.Int("line")), command.String("reply-to"))
			if err != nil {
				return err
			}
			if err := <-done; err != nil {
				ui.PrintError(os.Stdout, t.GetMessage("comment_failed", 0, map[string]interface{}{"Error": err.Error()}))
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("comment_added", 0, map[string]interface{}{"PullRequestID": prID}))
			return nil
		},
	}
}

func parseEvent(t *i18n.Translations, raw string) (models.ReviewEvent, error) {
	switch raw {
	case "approve":
		return models.ReviewEventApprove, nil
	case "request-changes":
		return models.ReviewEventRequestChanges, nil
	case "comment", "":
		return models.ReviewEventComment, nil
	default:
		msg := t.GetMessage("review_invalid_event", 0, map[string]interface{}{"Event": raw})
		return "", fmt.Errorf("%s", msg)
	}
}

func (f *ReviewCommandFactory) newSubmitCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: t.GetMessage("review_submit_usage", 0, nil),
		Flags: []cli.Flag{
			prFlag(t),
			&cli.StringFlag{
				Name:    "event",
				Aliases: []string{"e"},
				Usage:   t.GetMessage("review_event_flag_usage", 0, nil),
				Value:   "comment",
			},
			&cli.StringFlag{
				Name:    "body",
				Aliases: []string{"b"},
				Usage:   t.GetMessage("review_body_flag_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			service, err := f.reviewService(ctx)
			if err != nil {
				return err
			}
			prID := command.String("pr")

			event, err := parseEvent(t, command.String("event"))
			if err != nil {
				return err
			}

			done, err := service.SubmitReview(ctx, prID, event, command.String("body"))
			var notReady *domainErrors.ReviewNotReadyError
			if errors.As(err, &notReady) {
				ui.PrintWarning(os.Stdout, t.GetMessage("review_not_ready", 0, nil))
				return nil
			}
			if err != nil {
				return err
			}
			if err := <-done; err != nil {
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("review_submitted", 0, map[string]interface{}{"PullRequestID": prID}))
			return nil
		},
	}
}

func (f *ReviewCommandFactory) newCancelCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "cancel",
		Usage: t.GetMessage("review_cancel_usage", 0, nil),
		Flags: []cli.Flag{prFlag(t)},
		Action: func(ctx context.Context, command *cli.Command) error {
			service, err := f.reviewService(ctx)
			if err != nil {
				return err
			}
			prID := command.String("pr")

			done, err := service.CancelReview(ctx, prID)
			if err != nil {
				return err
			}
			if err := <-done; err != nil {
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("review_cancelled", 0, map[string]interface{}{"PullRequestID": prID}))
			return nil
		},
	}
}
