package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

func TestNewDefaultsToJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	log.Info("hello", slog.String("key", "value"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestNewRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	log.Debug("dropped")
	assert.Empty(t, buf.String())

	log = logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug))
	log.Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestWithDevelopment(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithDevelopment("authkit"))
	log.Debug("dev message")

	out := buf.String()
	assert.Contains(t, out, "dev message")
	assert.Contains(t, out, "service=authkit")
}

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(assert.AnError).Key)
	assert.Equal(t, "identity_id", logger.IdentityID("abc").Key)
	assert.Equal(t, "component", logger.Component("auth").Key)
	assert.Equal(t, "scheme", logger.Scheme("bearer").Key)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	// Must not panic and must accept records at any level.
	log := logger.Discard()
	log.Info("ignored")
	log.Error("ignored too")
}
