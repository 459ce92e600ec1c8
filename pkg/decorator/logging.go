package decorator

import (
	"context"
	"time"

	"github.com/architeacher/storetools/pkg/logger"
)

type (
	commandLoggingDecorator[C Command, R any] struct {
		base   CommandHandler[C, R]
		logger logger.Logger
	}

	queryLoggingDecorator[Q Query, R Result] struct {
		base   QueryHandler[Q, R]
		logger logger.Logger
	}
)

func (d commandLoggingDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	actionName := generateActionName(cmd)
	log := d.logger.WithContext(ctx).With().Str("command", actionName).Logger()
	start := time.Now()

	log.Debug().Msg("executing command")

	defer func() {
		event := log.Info()
		if err != nil {
			event = log.Error().Err(err)
		}

		event.Dur("duration", time.Since(start)).Msg("command finished")
	}()

	return d.base.Handle(ctx, cmd)
}

func (d queryLoggingDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	actionName := generateActionName(query)
	log := d.logger.WithContext(ctx).With().Str("query", actionName).Logger()
	start := time.Now()

	ctx = TrackCacheStatus(ctx)

	log.Debug().Msg("executing query")

	defer func() {
		event := log.Info()
		if err != nil {
			event = log.Error().Err(err)
		}

		event.
			Str("cache_status", string(GetCacheStatus(ctx))).
			Dur("duration", time.Since(start)).
			Msg("query finished")
	}()

	return d.base.Execute(ctx, query)
}
