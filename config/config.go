// Package config provides configuration loading and access for the leaf field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all leaf field configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Motion    MotionConfig    `yaml:"motion"`
	Avoidance AvoidanceConfig `yaml:"avoidance"`
	Wind      WindConfig      `yaml:"wind"`
	Bounds    BoundsConfig    `yaml:"bounds"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Capacity  CapacityConfig  `yaml:"capacity"`
	Perf      PerfConfig      `yaml:"perf"`
	Palette   PaletteConfig   `yaml:"palette"`
	Static    StaticConfig    `yaml:"static"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width         int  `yaml:"width"`
	Height        int  `yaml:"height"`
	TargetFPS     int  `yaml:"target_fps"`
	ReducedMotion bool `yaml:"reduced_motion"` // Honour a reduced-motion preference at startup
	LowPower      bool `yaml:"low_power"`      // Data-saver / battery hint
}

// MotionConfig holds the oscillator and momentum constants of the per-frame update.
// Values are tuned for visual feel, not derived from a physical model.
type MotionConfig struct {
	PrimaryFreq     float64 `yaml:"primary_freq"`     // Primary sway frequency (rad/s)
	SecondaryFreq   float64 `yaml:"secondary_freq"`   // ~0.6x primary
	TertiaryFreq    float64 `yaml:"tertiary_freq"`    // ~1.6x primary
	PrimaryWeight   float64 `yaml:"primary_weight"`
	SecondaryWeight float64 `yaml:"secondary_weight"`
	TertiaryWeight  float64 `yaml:"tertiary_weight"`
	DriftOffset     float64 `yaml:"drift_offset"` // PersonalityX is multiplied by this

	VerticalFreq     float64 `yaml:"vertical_freq"`
	VerticalWeight   float64 `yaml:"vertical_weight"`
	TurbulenceFreq   float64 `yaml:"turbulence_freq"`
	TurbulenceWeight float64 `yaml:"turbulence_weight"`

	MomentumBlend  float64 `yaml:"momentum_blend"` // Fraction of target gap added to momentum per frame
	VerticalGain   float64 `yaml:"vertical_gain"`  // Avoidance Y fed into vertical momentum
	VerticalApply  float64 `yaml:"vertical_apply"` // Fraction of vertical momentum applied to Y
	MomentumDecayX float64 `yaml:"momentum_decay_x"`
	MomentumDecayY float64 `yaml:"momentum_decay_y"`

	RotationWaveFreq    float64 `yaml:"rotation_wave_freq"`
	RotationWaveWeight  float64 `yaml:"rotation_wave_weight"`
	AirFreq             float64 `yaml:"air_freq"`
	AirWeight           float64 `yaml:"air_weight"`
	RotationGain        float64 `yaml:"rotation_gain"`
	SpinDecayBase       float64 `yaml:"spin_decay_base"`
	SpinDecayTurbulence float64 `yaml:"spin_decay_turbulence"`

	BreathFreq      float64 `yaml:"breath_freq"`
	BreathAmplitude float64 `yaml:"breath_amplitude"`
	AvoidShrink     float64 `yaml:"avoid_shrink"` // Scale shrink at full influence
}

// AvoidanceConfig holds the pointer force field parameters.
type AvoidanceConfig struct {
	OuterRadius   float64 `yaml:"outer_radius"`
	InnerRadius   float64 `yaml:"inner_radius"`
	FlutterRadius float64 `yaml:"flutter_radius"`
	InnerWeight   float64 `yaml:"inner_weight"`
	WeightX       float64 `yaml:"weight_x"`
	WeightY       float64 `yaml:"weight_y"`
	JitterX       float64 `yaml:"jitter_x"`
	JitterY       float64 `yaml:"jitter_y"`
	FlutterSpin   float64 `yaml:"flutter_spin"`
	AvoidSpin     float64 `yaml:"avoid_spin"`
	WindDamping   float64 `yaml:"wind_damping"` // Wind influence reduction per unit strength
	WindWeightX   float64 `yaml:"wind_weight_x"`
	WindWeightY   float64 `yaml:"wind_weight_y"`
}

// WindConfig holds ambient force parameters.
type WindConfig struct {
	ScaleX  float64 `yaml:"scale_x"`
	ScaleY  float64 `yaml:"scale_y"`
	MaxX    float64 `yaml:"max_x"`
	MaxY    float64 `yaml:"max_y"`
	Decay   float64 `yaml:"decay"`
	IdleSec float64 `yaml:"idle_sec"`
}

// BoundsConfig holds boundary margins.
type BoundsConfig struct {
	BottomMargin  float64 `yaml:"bottom_margin"`
	SideMargin    float64 `yaml:"side_margin"`
	SideInset     float64 `yaml:"side_inset"` // Distance inside the margin a clamped leaf is placed
	SpawnTop      float64 `yaml:"spawn_top"`  // Highest start Y (negative, above the viewport)
	SpawnDepth    float64 `yaml:"spawn_depth"`
	SpawnOverscan float64 `yaml:"spawn_overscan"` // Dynamic anchors may start this far outside each side
}

// SpawnConfig holds generation timer parameters.
type SpawnConfig struct {
	MinIntervalSec   float64 `yaml:"min_interval_sec"`
	MaxIntervalSec   float64 `yaml:"max_interval_sec"`
	BurstMinSec      float64 `yaml:"burst_min_sec"`
	BurstMaxSec      float64 `yaml:"burst_max_sec"`
	BurstChance      float64 `yaml:"burst_chance"`
	BurstMax         int     `yaml:"burst_max"`
	BurstStaggerMS   int     `yaml:"burst_stagger_ms"`
	MaxLifetimeSec   float64 `yaml:"max_lifetime_sec"`
	RippleLifetimeMS int     `yaml:"ripple_lifetime_ms"`
}

// CapacityConfig holds population bounds.
type CapacityConfig struct {
	Narrow      int `yaml:"narrow"`       // Narrow viewport or low power
	Default     int `yaml:"default"`
	Wide        int `yaml:"wide"`
	NarrowWidth int `yaml:"narrow_width"` // Width at or below which Narrow applies
	WideWidth   int `yaml:"wide_width"`   // Width above which Wide applies
	Floor       int `yaml:"floor"`        // Degraded mode never shrinks below this
}

// PerfConfig holds frame-rate sampling parameters.
type PerfConfig struct {
	WindowSec float64 `yaml:"window_sec"`
	MinFPS    float64 `yaml:"min_fps"`
}

// PaletteConfig holds leaf appearance ranges.
type PaletteConfig struct {
	Colors        []string `yaml:"colors"`
	MinSize       float64  `yaml:"min_size"`
	MaxSize       float64  `yaml:"max_size"`
	MinBrightness float64  `yaml:"min_brightness"`
	MaxBrightness float64  `yaml:"max_brightness"`
	HueJitter     float64  `yaml:"hue_jitter"` // Degrees either side
}

// StaticConfig holds the initial, identity-stable leaves.
type StaticConfig struct {
	Anchors []float64 `yaml:"anchors"` // Horizontal anchors as viewport percentages
	Count   int       `yaml:"count"`   // Used when Anchors is empty
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow      float64 `yaml:"stats_window"`
	PerfWindowFrames int     `yaml:"perf_window_frames"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxLifetime    time.Duration
	IdleTimeout    time.Duration
	BurstStagger   time.Duration
	RippleLifetime time.Duration
	PerfWindow     time.Duration
	StaticAnchors  []float64 // Resolved anchor percentages
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Avoidance.InnerRadius > c.Avoidance.OuterRadius {
		return fmt.Errorf("avoidance inner_radius %.0f exceeds outer_radius %.0f",
			c.Avoidance.InnerRadius, c.Avoidance.OuterRadius)
	}
	if c.Spawn.MinIntervalSec <= 0 || c.Spawn.MaxIntervalSec < c.Spawn.MinIntervalSec {
		return fmt.Errorf("spawn interval range [%v, %v] is invalid", c.Spawn.MinIntervalSec, c.Spawn.MaxIntervalSec)
	}
	if c.Spawn.BurstMinSec <= 0 || c.Spawn.BurstMaxSec < c.Spawn.BurstMinSec {
		return fmt.Errorf("burst interval range [%v, %v] is invalid", c.Spawn.BurstMinSec, c.Spawn.BurstMaxSec)
	}
	if len(c.Palette.Colors) == 0 {
		return fmt.Errorf("palette needs at least one color")
	}
	if c.Capacity.Floor < 0 || c.Capacity.Narrow < c.Capacity.Floor {
		return fmt.Errorf("capacity floor %d must be between 0 and narrow capacity %d", c.Capacity.Floor, c.Capacity.Narrow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MaxLifetime = seconds(c.Spawn.MaxLifetimeSec)
	c.Derived.IdleTimeout = seconds(c.Wind.IdleSec)
	c.Derived.BurstStagger = time.Duration(c.Spawn.BurstStaggerMS) * time.Millisecond
	c.Derived.RippleLifetime = time.Duration(c.Spawn.RippleLifetimeMS) * time.Millisecond
	c.Derived.PerfWindow = seconds(c.Perf.WindowSec)

	// Anchors fall back to 10 + 15*i percent when none are configured
	if len(c.Static.Anchors) > 0 {
		c.Derived.StaticAnchors = append([]float64(nil), c.Static.Anchors...)
	} else {
		c.Derived.StaticAnchors = make([]float64, c.Static.Count)
		for i := range c.Derived.StaticAnchors {
			c.Derived.StaticAnchors[i] = 10 + float64(i)*15
		}
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
