package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":         zerolog.InfoLevel,
		"DEBUG":    zerolog.DebugLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"bogus":    zerolog.InfoLevel,
	}

	for raw, want := range tests {
		assert.Equal(t, want, parseLevel(raw), "level %q", raw)
	}
}

func TestInitJSONWritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Format: "json", Level: "info", Out: &buf})
	t.Cleanup(func() { Init(Config{Format: "json", Level: "info"}) })

	log.Info().Str("account_id", "abc").Msg("account created")
	log.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "account created", entry["message"])
	assert.Equal(t, "abc", entry["account_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx, id := WithRequestID(context.Background(), "")
	require.NotEmpty(t, id)
	assert.Equal(t, id, RequestID(ctx))

	ctx, id = WithRequestID(context.Background(), " req-1 ")
	assert.Equal(t, "req-1", id)
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}

func TestFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Format: "json", Level: "info", Out: &buf})
	t.Cleanup(func() { Init(Config{Format: "json", Level: "info"}) })

	ctx, _ := WithRequestID(context.Background(), "req-42")
	logger := FromContext(ctx)
	logger.Info().Msg("handled")

	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}
