// Package commands implements the storetools subcommands on top of the runtime.
package commands

import (
	"context"
	"flag"
	"io"
	"os/signal"
	"syscall"

	"github.com/architeacher/storetools/internal/adapters/services"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/runtime"
	"github.com/architeacher/storetools/internal/usecases/tools"
	"github.com/mitchellh/cli"
)

type (
	// Service is the part of the runtime the commands drive.
	Service interface {
		Run(ctx context.Context) error
		Catalog(ctx context.Context) (*tools.Catalog, error)
		CheckConnections(ctx context.Context) (*model.HealthReport, error)
		Webhooks(ctx context.Context) (*services.WebhookService, error)
		Close()
	}

	ServiceFactory func() Service

	Command struct {
		UI         cli.Ui
		newService ServiceFactory
	}
)

func NewService() Service {
	return runtime.New()
}

// Factories registers every subcommand.
func Factories(ui cli.Ui, newService ServiceFactory) map[string]cli.CommandFactory {
	base := &Command{UI: ui, newService: newService}

	return map[string]cli.CommandFactory{
		"serve": func() (cli.Command, error) {
			return &ServeCommand{Command: base}, nil
		},
		"check": func() (cli.Command, error) {
			return &CheckCommand{Command: base}, nil
		},
		"tools": func() (cli.Command, error) {
			return &ToolsCommand{Command: base}, nil
		},
		"webhooks": func() (cli.Command, error) {
			return &WebhooksCommand{Command: base}, nil
		},
		"webhooks setup": func() (cli.Command, error) {
			return &WebhooksSetupCommand{Command: base}, nil
		},
		"webhooks list": func() (cli.Command, error) {
			return &WebhooksListCommand{Command: base}, nil
		},
		"version": func() (cli.Command, error) {
			return &VersionCommand{Command: base}, nil
		},
	}
}

func (c *Command) flagSet(name string) *flag.FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(io.Discard)

	return f
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
