// Package config loads runtime settings from defaults, a TOML file, ORBITALS_* env vars and flags
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/orbitals/parameter"
)

// EnvPrefix namespaces environment overrides, e.g. ORBITALS_VIEWPORT_X
const EnvPrefix = "ORBITALS"

// Config holds application configuration
type Config struct {
	Registry  RegistryConfig
	Viewport  ViewportConfig
	Animation AnimationConfig
	Audio     AudioConfig
	Debug     bool
}

// RegistryConfig holds the shared store location and liveness policy
type RegistryConfig struct {
	Path              string
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	StaleAfter        time.Duration `mapstructure:"stale_after"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
}

// ViewportConfig places the local viewport in the shared space
type ViewportConfig struct {
	X          int
	Y          int
	CellWidth  int `mapstructure:"cell_width"`
	CellHeight int `mapstructure:"cell_height"`
	MoveStep   int `mapstructure:"move_step"`
}

// AnimationConfig holds frame rate and easing
type AnimationConfig struct {
	FPS         int
	Falloff     float64
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

type AudioConfig struct {
	Enabled bool
}

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"db":    "registry.path",
	"x":     "viewport.x",
	"y":     "viewport.y",
	"fps":   "animation.fps",
	"audio": "audio.enabled",
	"debug": "debug",
}

// DefaultPath returns the registry database used when none is configured
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "orbitals", "registry.db")
}

// RegisterFlags adds the config-backed flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("db", DefaultPath(), "shared registry database path")
	fs.Int("x", 0, "viewport origin x in shared-space pixels")
	fs.Int("y", 0, "viewport origin y in shared-space pixels")
	fs.Int("fps", parameter.FrameRate, "frames per second")
	fs.Bool("audio", false, "play join/leave chimes")
	fs.Bool("debug", false, "write logs to logs/orbitals.log")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("registry.path", DefaultPath())
	v.SetDefault("registry.heartbeat_interval", parameter.RegistryHeartbeatInterval)
	v.SetDefault("registry.stale_after", parameter.RegistryStaleAfter)
	v.SetDefault("registry.poll_interval", parameter.RegistryPollInterval)
	v.SetDefault("viewport.x", 0)
	v.SetDefault("viewport.y", 0)
	v.SetDefault("viewport.cell_width", parameter.CellWidth)
	v.SetDefault("viewport.cell_height", parameter.CellHeight)
	v.SetDefault("viewport.move_step", parameter.MoveStep)
	v.SetDefault("animation.fps", parameter.FrameRate)
	v.SetDefault("animation.falloff", parameter.AnimationFalloff)
	v.SetDefault("animation.idle_timeout", parameter.IdleTimeout)
	v.SetDefault("audio.enabled", false)
	v.SetDefault("debug", false)
}

// Load reads configuration; fs may be nil
// Precedence: explicitly set flag, env, config file, default
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv(EnvPrefix + "_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "orbitals"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
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

// Validate rejects settings the engine cannot run with
func (c Config) Validate() error {
	switch {
	case c.Registry.Path == "":
		return fmt.Errorf("config: registry.path is empty")
	case c.Registry.HeartbeatInterval <= 0 || c.Registry.PollInterval <= 0:
		return fmt.Errorf("config: registry intervals must be positive")
	case c.Registry.StaleAfter <= c.Registry.HeartbeatInterval:
		return fmt.Errorf("config: registry.stale_after %v must exceed heartbeat_interval %v", c.Registry.StaleAfter, c.Registry.HeartbeatInterval)
	case c.Viewport.CellWidth <= 0 || c.Viewport.CellHeight <= 0:
		return fmt.Errorf("config: cell size must be positive")
	case c.Animation.FPS <= 0:
		return fmt.Errorf("config: animation.fps must be positive")
	case c.Animation.Falloff <= 0 || c.Animation.Falloff > 1:
		return fmt.Errorf("config: animation.falloff %v outside (0, 1]", c.Animation.Falloff)
	case c.Animation.IdleTimeout <= 0:
		return fmt.Errorf("config: animation.idle_timeout must be positive")
	}
	return nil
}
