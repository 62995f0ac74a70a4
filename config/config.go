package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robmorgan/liftoff/cuelist"
	"github.com/robmorgan/liftoff/profile"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvPort          = "PORT"
	EnvFrontendURL   = "FRONTEND_URL"
	EnvResendAPIKey  = "RESEND_API_KEY"
	EnvContactEmail  = "CONTACT_EMAIL"
	EnvFPS           = "LIFTOFF_FPS"
	EnvOLAAddress    = "LIFTOFF_OLA_ADDR"
	EnvOSCListen     = "LIFTOFF_OSC_LISTEN"
	EnvProjectsFile  = "LIFTOFF_PROJECTS_FILE"
	EnvSoundDisabled = "LIFTOFF_MUTE"
)

// Config represents options that configure the global behavior of the program
type Config struct {
	// FPS is the sequencer frame rate.
	FPS int `yaml:"fps"`

	// Hysteresis is the default one-shot re-arm distance.
	Hysteresis float64 `yaml:"hysteresis"`

	// VelocityDecay is the weight of a new reading in the scroll velocity average.
	VelocityDecay float64 `yaml:"velocity_decay"`

	// FullWarpSpeed is the scroll speed that drives the particle warp to full.
	FullWarpSpeed float64 `yaml:"full_warp_speed"`

	// PageHeight is the virtual scroll extent used by the terminal scrubber.
	PageHeight float64 `yaml:"page_height"`

	OLA    OLAConfig    `yaml:"ola"`
	OSC    OSCConfig    `yaml:"osc"`
	Sound  SoundConfig  `yaml:"sound"`
	Server ServerConfig `yaml:"server"`

	// The output profiles
	Profiles map[string]profile.Profile `yaml:"profiles"`

	// Patch stores all of the patched output layers
	Patch []PatchedLayer `yaml:"patch"`
}

// OLAConfig configures DMX output through OLA.
type OLAConfig struct {
	Enabled bool          `yaml:"enabled"`
	Address string        `yaml:"address"`
	Tick    time.Duration `yaml:"tick"`
}

// OSCConfig configures OSC scroll input and output.
type OSCConfig struct {
	Listen     string `yaml:"listen"`
	TargetHost string `yaml:"target_host"`
	TargetPort int    `yaml:"target_port"`
	Prefix     string `yaml:"prefix"`
}

// SoundConfig configures local audio.
type SoundConfig struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sample_rate"`
}

// ServerConfig configures the HTTP backend.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	FrontendURL  string `yaml:"frontend_url"`
	ContactEmail string `yaml:"contact_email"`
	ProjectsFile string `yaml:"projects_file"`

	// ResendAPIKey is only read from the environment.
	ResendAPIKey string `yaml:"-"`
}

// NewConfig creates a Config with reasonable defaults for real usage.
func NewConfig() Config {
	return Config{
		FPS:           60,
		Hysteresis:    cuelist.DefaultHysteresis,
		VelocityDecay: 0.2,
		FullWarpSpeed: 2500,
		PageHeight:    20000,
		OLA: OLAConfig{
			Address: "localhost:9010",
			Tick:    40 * time.Millisecond,
		},
		OSC: OSCConfig{
			Listen:     "127.0.0.1:9000",
			TargetHost: "127.0.0.1",
			TargetPort: 9001,
			Prefix:     "/liftoff",
		},
		Sound: SoundConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Server: ServerConfig{
			Port:         4000,
			FrontendURL:  "http://localhost:5173",
			ContactEmail: "hello@example.com",
			ProjectsFile: "data/projects.json",
		},
		Profiles: initializeProfiles(),
		Patch:    PatchLayers(),
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// LookupFunc finds an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup over the process environment backed by the given dotenv files.
// Process variables win over file values and missing files are skipped.
func EnvLookup(files ...string) (LookupFunc, error) {
	fileVars := map[string]string{}
	for _, f := range files {
		vars, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range vars {
			fileVars[k] = v
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvFPS); ok && v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFPS, err)
		}
		c.FPS = fps
	}
	if v, ok := lookup(EnvSoundDisabled); ok && v != "" {
		muted, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSoundDisabled, err)
		}
		c.Sound.Enabled = !muted
	}

	overrides := map[string]*string{
		EnvFrontendURL:  &c.Server.FrontendURL,
		EnvResendAPIKey: &c.Server.ResendAPIKey,
		EnvContactEmail: &c.Server.ContactEmail,
		EnvProjectsFile: &c.Server.ProjectsFile,
		EnvOLAAddress:   &c.OLA.Address,
		EnvOSCListen:    &c.OSC.Listen,
	}
	for key, dst := range overrides {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	return c.Validate()
}

// Validate checks the settings that would otherwise fail later in confusing ways.
func (c Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("fps must be between 1 and 240, got %d", c.FPS)
	}
	if c.Hysteresis < 0 || c.Hysteresis >= 1 {
		return fmt.Errorf("hysteresis must be in [0,1), got %v", c.Hysteresis)
	}
	if c.VelocityDecay <= 0 || c.VelocityDecay > 1 {
		return fmt.Errorf("velocity_decay must be in (0,1], got %v", c.VelocityDecay)
	}
	for _, p := range c.Patch {
		if _, ok := c.Profiles[p.Profile]; !ok {
			return fmt.Errorf("layer %s uses unknown profile %q", p.Name, p.Profile)
		}
		if p.Address < 1 || p.Address > 512 {
			return fmt.Errorf("layer %s address %d not in [1,512]", p.Name, p.Address)
		}
	}
	return nil
}
