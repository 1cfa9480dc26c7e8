package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	viper.Reset()
	globalConfig = nil
	outputFormat = ""
	debug = false
	t.Cleanup(func() {
		viper.Reset()
		globalConfig = nil
		outputFormat = ""
		debug = false
	})
}

func TestInitializeCreatesDefaultFile(t *testing.T) {
	resetGlobals(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Initialize(""))

	_, err := os.Stat(filepath.Join(home, ".collegedir.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), Get())
}

func TestInitializeReadsFile(t *testing.T) {
	resetGlobals(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  url: https://directory.example.edu
  timeout: 5s
validation:
  policy: strict
registration:
  require_otp: false
  image_max_kb: 800
`), 0600))

	require.NoError(t, Initialize(path))

	cfg := Get()
	assert.Equal(t, "https://directory.example.edu", cfg.Server.URL)
	assert.Equal(t, "strict", cfg.Validation.Policy)
	assert.False(t, cfg.Registration.RequireOTP)
	assert.Equal(t, int64(30), cfg.Registration.ImageMinKB)
	assert.Equal(t, int64(800), cfg.Registration.ImageMaxKB)

	timeout, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestInitializeEnvOverride(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COLLEGEDIR_SERVER_URL", "http://api.internal:9000")

	require.NoError(t, Initialize(""))
	assert.Equal(t, "http://api.internal:9000", Get().Server.URL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Server.Timeout = "soon"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Registration.ImageMinKB = 900
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.URL = ""
	assert.Error(t, cfg.Validate())
}

func TestOutputFormatPrecedence(t *testing.T) {
	resetGlobals(t)
	assert.Equal(t, "table", GetOutputFormat())

	Set(&Config{Format: FormatConfig{Default: "yaml"}})
	assert.Equal(t, "yaml", GetOutputFormat())

	SetOutputFormat("json")
	assert.Equal(t, "json", GetOutputFormat())
}
