package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/orbitals/parameter"
)

// isolate points HOME at an empty dir so no user config leaks into the test
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvPrefix+"_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	c, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(home, ".local", "share", "orbitals", "registry.db"); c.Registry.Path != want {
		t.Errorf("Expected default path %s, got %s", want, c.Registry.Path)
	}
	if c.Registry.HeartbeatInterval != parameter.RegistryHeartbeatInterval || c.Registry.StaleAfter != parameter.RegistryStaleAfter {
		t.Errorf("Unexpected registry timings: %+v", c.Registry)
	}
	if c.Viewport.CellWidth != parameter.CellWidth || c.Viewport.CellHeight != parameter.CellHeight || c.Viewport.MoveStep != parameter.MoveStep {
		t.Errorf("Unexpected viewport defaults: %+v", c.Viewport)
	}
	if c.Animation.FPS != parameter.FrameRate || c.Animation.Falloff != parameter.AnimationFalloff || c.Animation.IdleTimeout != parameter.IdleTimeout {
		t.Errorf("Unexpected animation defaults: %+v", c.Animation)
	}
	if c.Audio.Enabled || c.Debug {
		t.Error("Expected audio and debug off by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ORBITALS_VIEWPORT_X", "300")
	t.Setenv("ORBITALS_ANIMATION_IDLE_TIMEOUT", "2s")
	t.Setenv("ORBITALS_AUDIO_ENABLED", "true")

	c, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Viewport.X != 300 {
		t.Errorf("Expected x=300 from env, got %d", c.Viewport.X)
	}
	if c.Animation.IdleTimeout != 2*time.Second {
		t.Errorf("Expected idle timeout 2s, got %v", c.Animation.IdleTimeout)
	}
	if !c.Audio.Enabled {
		t.Error("Expected audio enabled from env")
	}
}

func TestLoadConfigFileAndFlags(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "orbitals.toml")
	body := `
[viewport]
x = 120
y = 80
move_step = 16

[animation]
falloff = 0.1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPrefix+"_CONFIG", path)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--y", "500", "--debug"}); err != nil {
		t.Fatal(err)
	}

	c, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Viewport.X != 120 || c.Viewport.MoveStep != 16 || c.Animation.Falloff != 0.1 {
		t.Errorf("Expected file values, got %+v %+v", c.Viewport, c.Animation)
	}
	if c.Viewport.Y != 500 {
		t.Errorf("Expected flag to override file y, got %d", c.Viewport.Y)
	}
	if !c.Debug {
		t.Error("Expected --debug to enable debug")
	}
	if c.Animation.FPS != parameter.FrameRate {
		t.Errorf("Expected unset flag to leave fps at default, got %d", c.Animation.FPS)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvPrefix+"_CONFIG", filepath.Join(dir, "absent.toml"))

	if _, err := Load(nil); err == nil {
		t.Error("Expected an error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]func(c *Config){
		"empty path":    func(c *Config) { c.Registry.Path = "" },
		"stale <= beat": func(c *Config) { c.Registry.StaleAfter = c.Registry.HeartbeatInterval },
		"zero cell":     func(c *Config) { c.Viewport.CellWidth = 0 },
		"zero fps":      func(c *Config) { c.Animation.FPS = 0 },
		"falloff > 1":   func(c *Config) { c.Animation.Falloff = 1.5 },
		"zero idle":     func(c *Config) { c.Animation.IdleTimeout = 0 },
	}
	for name, mutate := range cases {
		c := base
		mutate(&c)
		if c.Validate() == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
