package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/architeacher/storetools/internal/adapters/inbound/rpc"
	"github.com/architeacher/storetools/internal/adapters/services"
	"github.com/architeacher/storetools/internal/config"
	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/usecases/queries"
	"github.com/architeacher/storetools/internal/usecases/tools"
	"golang.org/x/sync/errgroup"
)

type ServiceCtx struct {
	deps            *dependencies
	depOpts         []DependencyOption
	in              io.Reader
	out             io.Writer
	shutdownChannel chan os.Signal
	serverReady     chan struct{}
	closed          bool
}

func New(opts ...ServiceOption) *ServiceCtx {
	ctx := &ServiceCtx{
		in:              os.Stdin,
		out:             os.Stdout,
		shutdownChannel: make(chan os.Signal, 1),
	}

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx
}

// Run serves tool calls over the rpc streams until the input closes, a termination
// signal arrives or ctx is cancelled. The webhook server and the config watcher
// run alongside and stop with it.
func (c *ServiceCtx) Run(ctx context.Context) error {
	if err := c.build(ctx); err != nil {
		return err
	}

	serverCtx, stop := context.WithCancel(ctx)
	defer stop()

	signal.Notify(c.shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c.shutdownChannel)

	group, groupCtx := errgroup.WithContext(serverCtx)

	group.Go(func() error {
		defer stop()

		return c.serveRPC(groupCtx)
	})

	group.Go(func() error {
		return c.serveWebhooks(groupCtx)
	})

	group.Go(func() error {
		c.monitorConfigChanges(groupCtx)

		return nil
	})

	group.Go(func() error {
		select {
		case <-groupCtx.Done():
		case sig := <-c.shutdownChannel:
			c.deps.infra.logger.Info().Str("signal", sig.String()).Msg("termination signal received")
			stop()
		}

		return nil
	})

	err := group.Wait()

	c.shutdown()

	return err
}

// Catalog builds the dependencies and returns the registered tools.
func (c *ServiceCtx) Catalog(ctx context.Context) (*tools.Catalog, error) {
	if err := c.build(ctx); err != nil {
		return nil, err
	}

	return c.deps.apps.catalog, nil
}

// CheckConnections checks the cache store and every upstream once.
func (c *ServiceCtx) CheckConnections(ctx context.Context) (*model.HealthReport, error) {
	if err := c.build(ctx); err != nil {
		return nil, err
	}

	return c.deps.apps.app.Queries.FetchHealthReport.Execute(ctx, queries.FetchHealthReportQuery{})
}

func (c *ServiceCtx) Webhooks(ctx context.Context) (*services.WebhookService, error) {
	if err := c.build(ctx); err != nil {
		return nil, err
	}

	return c.deps.services.webhooks, nil
}

// Close releases what Catalog, CheckConnections or Webhooks acquired.
func (c *ServiceCtx) Close() {
	if c.deps != nil {
		c.shutdown()
	}
}

// WaitForServer blocks until the webhook server is listening, or returns at once
// when it is disabled. It requires WithWaitingForServer.
func (c *ServiceCtx) WaitForServer() {
	if c.serverReady != nil {
		<-c.serverReady
	}
}

func (c *ServiceCtx) build(ctx context.Context) error {
	if c.deps != nil {
		return nil
	}

	deps, err := initializeDependencies(ctx, c.depOpts...)
	if err != nil {
		return fmt.Errorf("initializing dependencies: %w", err)
	}

	c.deps = deps

	return nil
}

func (c *ServiceCtx) serveRPC(ctx context.Context) error {
	server := rpc.NewServer(c.deps.apps.catalog, rpc.Config{
		Name:               c.deps.config.App.ServiceName,
		Version:            config.ServiceVersion,
		MaxConcurrentCalls: c.deps.config.RPCServer.MaxConcurrentCalls,
		MaxMessageBytes:    c.deps.config.RPCServer.MaxMessageBytes,
	}, c.deps.infra.logger)

	c.deps.infra.logger.Info().
		Int("tools", c.deps.apps.catalog.Len()).
		Msg("serving tools over stdio")

	return server.Serve(ctx, c.in, c.out)
}

func (c *ServiceCtx) serveWebhooks(ctx context.Context) error {
	srv := c.deps.infra.webhookServer
	if srv == nil {
		c.markReady()

		return nil
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		c.markReady()

		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	}

	c.deps.infra.logger.Info().
		Str("address", listener.Addr().String()).
		Msg("starting the webhook server")

	c.markReady()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.deps.config.WebhookServer.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			c.deps.infra.logger.Error().Err(err).Msg("webhook server shutdown failed")
		}
	}()

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webhook server: %w", err)
	}

	return nil
}

func (c *ServiceCtx) markReady() {
	if c.serverReady != nil {
		close(c.serverReady)
	}
}

func (c *ServiceCtx) monitorConfigChanges(ctx context.Context) {
	if c.deps.configLoader == nil {
		return
	}

	for err := range c.deps.configLoader.WatchConfigSignals(ctx) {
		if err != nil {
			c.deps.infra.logger.Error().Err(err).Msg("config reload failed")

			continue
		}

		c.deps.infra.logger.Info().Msg("config reloaded successfully")
	}
}

func (c *ServiceCtx) shutdown() {
	if c.closed {
		return
	}

	c.closed = true

	c.deps.infra.logger.Info().Msg("shutting down service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.deps.config.WebhookServer.ShutdownTimeout)
	defer cancel()

	c.deps.infra.logger.Info().Msg("cleaning up resources...")

	c.deps.cleanup(shutdownCtx)

	c.deps.infra.logger.Info().Msg("service shutdown complete")
}
