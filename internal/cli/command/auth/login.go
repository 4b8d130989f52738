package auth

import (
	"context"
	"os"
	"os/exec"
	"runtime"

	cfg "github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/di"
	"github.com/Tomas-vilte/MateReview/internal/ui"
	"github.com/urfave/cli/v3"
)

type LoginCommandFactory struct {
	container *di.Container
}

func NewLoginCommandFactory(container *di.Container) *LoginCommandFactory {
	return &LoginCommandFactory{container: container}
}

func (f *LoginCommandFactory) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: t.GetMessage("login_command_usage", 0, nil),
		Action: func(ctx context.Context, _ *cli.Command) error {
			authService := f.container.AuthService()
			authService.SetOpenURL(openBrowser)

			spin := ui.NewSpinner(t.GetMessage("login_requesting", 0, nil))
			authService.Subscribe(func(state models.AuthState) {
				if state.Status != models.AuthStatusPolling {
					return
				}
				spin.Stop()
				ui.PrintInfo(os.Stdout, t.GetMessage("login_enter_code", 0, map[string]interface{}{
					"UserCode":        state.UserCode,
					"VerificationURI": state.VerificationURI,
				}))
				spin.UpdateMessage(t.GetMessage("login_waiting", 0, nil))
				spin.Start()
			})

			spin.Start()
			done, err := authService.StartLogin(ctx)
			if err != nil {
				spin.Error(t.GetMessage("login_failed", 0, map[string]interface{}{"Error": err.Error()}))
				return err
			}

			if err := <-done; err != nil {
				spin.Error(t.GetMessage("login_failed", 0, map[string]interface{}{"Error": err.Error()}))
				return err
			}
			spin.Stop()

			login := ""
			if err := f.container.Connect(ctx); err != nil {
				// La sesión quedó iniciada aunque falte configurar el repositorio.
				ui.PrintWarning(os.Stdout, err.Error())
			} else if user := f.container.CurrentUser(); user != nil {
				login = user.Login
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("login_success", 0, map[string]interface{}{"Login": login}))
			return nil
		},
	}
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
