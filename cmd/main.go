package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/dig"

	chipp "github.com/davidbz/chipp-go"
	"github.com/davidbz/chipp-go/internal/cli"
	"github.com/davidbz/chipp-go/internal/config"
	"github.com/davidbz/chipp-go/internal/observability"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(root *cobra.Command) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return root.ExecuteContext(ctx)
	})
	if err != nil {
		log.Fatalf("chipp: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Chipp client
	if err := container.Provide(func(cfg *config.ChippConfig) (*chipp.Client, error) {
		return chipp.NewClient(cfg.APIKey, cfg.Model,
			chipp.WithBaseURL(cfg.BaseURL),
			chipp.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
			chipp.WithMaxRetries(cfg.MaxRetries),
			chipp.WithInitialRetryDelay(time.Duration(cfg.InitialRetryDelay)*time.Millisecond),
			chipp.WithMaxRetryDelay(time.Duration(cfg.MaxRetryDelay)*time.Millisecond),
		)
	}); err != nil {
		log.Fatalf("Failed to provide Chipp client: %v", err)
	}

	// Command tree
	if err := container.Provide(cli.NewRootCommand); err != nil {
		log.Fatalf("Failed to provide command tree: %v", err)
	}

	return container
}
