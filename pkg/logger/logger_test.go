package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/architeacher/storetools/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: logger.LogLevelDebug, want: zerolog.DebugLevel},
		{name: "warning alias", level: logger.LogLevelWarning, want: zerolog.WarnLevel},
		{name: "upper case", level: "ERROR", want: zerolog.ErrorLevel},
		{name: "unknown defaults to info", level: "verbose", want: zerolog.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, logger.ParseLevel(tc.level))
		})
	}
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.LogLevelWarn, logger.JSONLoggingFormat, &buf)

	log.Info().Msg("hidden")
	require.Empty(t, buf.String())

	log.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		setupContext func() context.Context
		expected     map[string]string
		absent       []string
	}{
		{
			name: "adds request ID",
			setupContext: func() context.Context {
				return logger.WithRequestID(context.Background(), "req-123")
			},
			expected: map[string]string{"request_id": "req-123"},
		},
		{
			name: "adds tool and call ID",
			setupContext: func() context.Context {
				return logger.WithToolCall(context.Background(), "list_products", "call-7")
			},
			expected: map[string]string{"tool": "list_products", "call_id": "call-7"},
		},
		{
			name: "adds webhook topic and delivery ID",
			setupContext: func() context.Context {
				return logger.WithWebhookDelivery(context.Background(), "order.updated", "8812")
			},
			expected: map[string]string{"webhook_topic": "order.updated", "delivery_id": "8812"},
		},
		{
			name: "skips empty values",
			setupContext: func() context.Context {
				return logger.WithRequestID(context.Background(), "")
			},
			absent: []string{"request_id", "tool", "call_id", "webhook_topic", "delivery_id", "trace_id"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := logger.NewWithWriter(logger.LogLevelInfo, logger.JSONLoggingFormat, &buf)

			ctxLogger := log.WithContext(tc.setupContext())
			ctxLogger.Info().Msg("test message")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for key, value := range tc.expected {
				require.Equal(t, value, entry[key])
			}

			for _, key := range tc.absent {
				require.NotContains(t, entry, key)
			}
		})
	}
}

func TestComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(logger.LogLevelInfo, logger.JSONLoggingFormat, &buf).Component("rest")

	log.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "rest", entry["component"])
}

func TestNopDiscardsEvents(t *testing.T) {
	t.Parallel()

	log := logger.Nop()
	ctxLogger := log.WithContext(logger.WithRequestID(context.Background(), "req-1"))

	require.Equal(t, zerolog.Disabled, ctxLogger.GetLevel())
}

func TestDecodeEntries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := logger.NewBufferedTestLogger(&buf)
	log.Debug().Str("upstream", "commerce").Msg("first")
	log.Warn().Msg("second")

	entries, err := logger.DecodeEntries(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "debug", entries[0]["level"])
	require.Equal(t, "commerce", entries[0]["upstream"])
	require.Equal(t, "second", entries[1]["message"])

	_, err = logger.DecodeEntries([]byte("{not json"))
	require.Error(t, err)
}
