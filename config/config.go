// Package config loads the tuning parameters of the hand interaction core.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment override, e.g. OXY_HANDS_POSE_BLEND_RATE.
const EnvPrefix = "OXY_HANDS"

// ErrInvalid reports a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the core's tuning.
type Config struct {
	Engine      EngineConfig      `mapstructure:"engine"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Pose        PoseConfig        `mapstructure:"pose"`
	Interaction InteractionConfig `mapstructure:"interaction"`
	Log         LogConfig         `mapstructure:"log"`
}

// EngineConfig holds frame loop settings.
type EngineConfig struct {
	// TickRate is the presentation frame rate of Run, in Hz.
	TickRate float64 `mapstructure:"tick_rate"`
	// FixedRate is the rate of the fixed proximity phase, in Hz.
	FixedRate float64 `mapstructure:"fixed_rate"`
	// MaxFixedSteps caps fixed steps per frame so a long frame cannot spiral.
	MaxFixedSteps int  `mapstructure:"max_fixed_steps"`
	Profiling     bool `mapstructure:"profiling"`
}

// SchedulerConfig holds interpolation scheduler settings.
type SchedulerConfig struct {
	TimeScale float32 `mapstructure:"time_scale"`
}

// PoseConfig holds pose graph settings.
type PoseConfig struct {
	BlendRate       float32 `mapstructure:"blend_rate"`
	WeightThreshold float32 `mapstructure:"weight_threshold"`
	Loop            bool    `mapstructure:"loop"`
}

// InteractionConfig holds interaction state machine settings.
type InteractionConfig struct {
	// ThrottleInterval is the volume re-arbitration throttle in simulation seconds.
	ThrottleInterval float32 `mapstructure:"throttle_interval"`
	Attach           bool    `mapstructure:"attach"`
	AttachRate       float32 `mapstructure:"attach_rate"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
	Output      string `mapstructure:"output"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.tick_rate", 60.0)
	v.SetDefault("engine.fixed_rate", 50.0)
	v.SetDefault("engine.max_fixed_steps", 5)
	v.SetDefault("engine.profiling", false)
	v.SetDefault("scheduler.time_scale", 1.0)
	v.SetDefault("pose.blend_rate", 10.0)
	v.SetDefault("pose.weight_threshold", 0.01)
	v.SetDefault("pose.loop", true)
	v.SetDefault("interaction.throttle_interval", 0.1)
	v.SetDefault("interaction.attach", true)
	v.SetDefault("interaction.attach_rate", 8.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.output", "stderr")
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from defaults, an optional TOML file and the environment, then
// validates it. The file is OXY_HANDS_CONFIG when set, otherwise ./oxy-hands.toml if present.
// Env var overrides use prefix OXY_HANDS_ with dots replaced by underscores.
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, unmarshal or validation error
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	cfgPath := os.Getenv(EnvPrefix + "_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("oxy-hands")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every out-of-range value.
//
// Returns:
//   - error: the combined problems, each wrapping ErrInvalid, or nil
func (c Config) Validate() error {
	var err error
	check := func(ok bool, key string, val any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: %s = %v", ErrInvalid, key, val))
		}
	}
	check(c.Engine.TickRate > 0, "engine.tick_rate", c.Engine.TickRate)
	check(c.Engine.FixedRate > 0, "engine.fixed_rate", c.Engine.FixedRate)
	check(c.Engine.MaxFixedSteps >= 1, "engine.max_fixed_steps", c.Engine.MaxFixedSteps)
	check(c.Scheduler.TimeScale >= 0, "scheduler.time_scale", c.Scheduler.TimeScale)
	check(c.Pose.BlendRate >= 0, "pose.blend_rate", c.Pose.BlendRate)
	check(c.Pose.WeightThreshold >= 0 && c.Pose.WeightThreshold < 1, "pose.weight_threshold", c.Pose.WeightThreshold)
	check(c.Interaction.ThrottleInterval > 0, "interaction.throttle_interval", c.Interaction.ThrottleInterval)
	check(c.Interaction.AttachRate >= 0, "interaction.attach_rate", c.Interaction.AttachRate)

	_, lvlErr := zapcore.ParseLevel(c.Log.Level)
	check(lvlErr == nil, "log.level", c.Log.Level)
	check(c.Log.Encoding == "console" || c.Log.Encoding == "json", "log.encoding", c.Log.Encoding)
	return err
}
