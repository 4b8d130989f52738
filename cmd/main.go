package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Tomas-vilte/MateReview/internal/cli/command/auth"
	configcmd "github.com/Tomas-vilte/MateReview/internal/cli/command/config"
	"github.com/Tomas-vilte/MateReview/internal/cli/command/list"
	"github.com/Tomas-vilte/MateReview/internal/cli/command/review"
	"github.com/Tomas-vilte/MateReview/internal/cli/command/summarize"
	synccmd "github.com/Tomas-vilte/MateReview/internal/cli/command/sync"
	"github.com/Tomas-vilte/MateReview/internal/cli/command/tasks"
	"github.com/Tomas-vilte/MateReview/internal/cli/registry"
	cfg "github.com/Tomas-vilte/MateReview/internal/config"
	"github.com/Tomas-vilte/MateReview/internal/i18n"
	"github.com/Tomas-vilte/MateReview/internal/infrastructure/di"
	"github.com/Tomas-vilte/MateReview/internal/logger"
	"github.com/Tomas-vilte/MateReview/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error iniciando la cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	logger.Initialize(os.Getenv("MATEREVIEW_DEBUG") != "", false)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener el directorio del usuario: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, fmt.Errorf("error al cargar las traducciones: %w", err)
	}

	container, err := di.NewContainer(cfgApp, translations)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := container.AuthService().Restore(ctx); err != nil {
		log.Printf("Warning: no se pudo restaurar la sesión: %v", err)
	}
	container.Start(ctx)

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("login", auth.NewLoginCommandFactory(container)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("logout", auth.NewLogoutCommandFactory(container)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("whoami", auth.NewWhoamiCommandFactory(container)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("sync", synccmd.NewSyncCommandFactory(container)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("list", list.NewListCommandFactory(container)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("review", review.NewReviewCommandFactory(container)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("tasks", tasks.NewTasksCommandFactory(container)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("summarize", summarize.NewSummarizeCommandFactory(container)); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, err
	}

	return &cli.Command{
		Name:                  "matereview",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, nil
}
