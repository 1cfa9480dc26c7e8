package errutil_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegedir/cli/internal/errutil"
)

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.In("auth").Code("LOGIN_FAILED").
		With("role", "STUDENT").
		Errorf("login failed")

	errutil.LogError(logger, "command failed", err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "command failed", entry["msg"])
	assert.Equal(t, "LOGIN_FAILED", entry["code"])
	assert.Equal(t, "auth", entry["domain"])
}

func TestLogError_WithStandardError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.LogError(logger, "command failed", errors.New("standard error"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry["error"], "standard error")
}

func TestLogError_GroupsOopsContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.In("students").Code("PROFILE_FAILED").
		With("id", "7").
		Wrap(errors.New("profile not found"))

	errutil.LogError(logger, "command failed", err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	ctx, ok := entry["context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "7", ctx["id"])
	assert.Contains(t, entry["error"], "profile not found")
}

func TestAttrs_StandardErrorHasOnlyMessage(t *testing.T) {
	attrs := errutil.Attrs(errors.New("boom"))
	require.Len(t, attrs, 1)
	assert.Equal(t, "error", attrs[0].Key)
	assert.Equal(t, "boom", attrs[0].Value.String())
}
