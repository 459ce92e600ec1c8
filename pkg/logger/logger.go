package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const (
	JSONLoggingFormat = "json"

	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelFatal   = "fatal"
	LogLevelPanic   = "panic"

	ContextKeyRequestID contextKey = "requestID"
	ContextKeyToolName  contextKey = "toolName"
	ContextKeyCallID    contextKey = "callID"

	ContextKeyWebhookTopic contextKey = "webhookTopic"
	ContextKeyDeliveryID   contextKey = "deliveryID"
)

type Logger struct {
	zerolog.Logger
}

// New writes to stderr. Stdout is reserved for RPC frames when serving over stdio.
func New(level, format string) Logger {
	return NewWithWriter(level, format, os.Stderr)
}

// Nop discards every event.
func Nop() Logger {
	return Logger{Logger: zerolog.Nop()}
}

func NewWithWriter(level, format string, w io.Writer) Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true})

	if format == JSONLoggingFormat {
		logger = zerolog.New(w)
	}

	logger = logger.Level(ParseLevel(level)).With().Timestamp().Logger()

	return Logger{
		Logger: logger,
	}
}

// ParseLevel maps a textual level to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarn, LogLevelWarning:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelFatal:
		return zerolog.FatalLevel
	case LogLevelPanic:
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a child logger tagged with the given component name.
func (l Logger) Component(name string) Logger {
	return Logger{Logger: l.With().Str("component", name).Logger()}
}

func (l Logger) WithContext(ctx context.Context) zerolog.Logger {
	logger := l.Logger

	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok && requestID != "" {
		logger = logger.With().Str("request_id", requestID).Logger()
	}

	if tool, ok := ctx.Value(ContextKeyToolName).(string); ok && tool != "" {
		logger = logger.With().Str("tool", tool).Logger()
	}

	if callID, ok := ctx.Value(ContextKeyCallID).(string); ok && callID != "" {
		logger = logger.With().Str("call_id", callID).Logger()
	}

	if topic, ok := ctx.Value(ContextKeyWebhookTopic).(string); ok && topic != "" {
		logger = logger.With().Str("webhook_topic", topic).Logger()
	}

	if deliveryID, ok := ctx.Value(ContextKeyDeliveryID).(string); ok && deliveryID != "" {
		logger = logger.With().Str("delivery_id", deliveryID).Logger()
	}

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		logger = logger.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return logger
}

// WithToolCall stores the tool name and call id used by WithContext.
func WithToolCall(ctx context.Context, tool, callID string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyToolName, tool)

	return context.WithValue(ctx, ContextKeyCallID, callID)
}

// WithRequestID stores the inbound HTTP request id used by WithContext.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// WithWebhookDelivery stores the topic and delivery id of an inbound webhook.
func WithWebhookDelivery(ctx context.Context, topic, deliveryID string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyWebhookTopic, topic)

	return context.WithValue(ctx, ContextKeyDeliveryID, deliveryID)
}
