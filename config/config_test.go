package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oxy-hands.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 60.0, c.Engine.TickRate)
	assert.Equal(t, 5, c.Engine.MaxFixedSteps)
	assert.Equal(t, float32(10), c.Pose.BlendRate)
	assert.Equal(t, float32(0.01), c.Pose.WeightThreshold)
	assert.True(t, c.Pose.Loop)
	assert.Equal(t, float32(0.1), c.Interaction.ThrottleInterval)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
[pose]
blend_rate = 4.0

[interaction]
throttle_interval = 0.25

[log]
level = "debug"
`)
	t.Setenv("OXY_HANDS_CONFIG", path)
	t.Setenv("OXY_HANDS_ENGINE_TICK_RATE", "90")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, float32(4), c.Pose.BlendRate)
	assert.Equal(t, float32(0.25), c.Interaction.ThrottleInterval)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 90.0, c.Engine.TickRate)
	assert.Equal(t, 50.0, c.Engine.FixedRate, "unset keys keep their defaults")
}

func TestLoadWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("OXY_HANDS_CONFIG", "")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("OXY_HANDS_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[engine]
max_fixed_steps = 0

[pose]
weight_threshold = 2.0
`)
	t.Setenv("OXY_HANDS_CONFIG", path)
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestValidateLogSettings(t *testing.T) {
	c := Default()
	c.Log.Level = "loud"
	c.Log.Encoding = "xml"
	err := c.Validate()
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "log.level")
}

func TestNewLogger(t *testing.T) {
	c := Default().Log
	c.Level = "warn"
	logger, err := NewLogger(c)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	c.Level = "nope"
	_, err = NewLogger(c)
	assert.Error(t, err)
}
