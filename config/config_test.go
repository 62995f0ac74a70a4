package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.02, cfg.Hysteresis)
	assert.Equal(t, 4000, cfg.Server.Port)

	for _, p := range cfg.Patch {
		assert.Contains(t, cfg.Profiles, p.Profile, p.Name)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load("testdata/liftoff.yaml")
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 0.03, cfg.Hysteresis)
	assert.True(t, cfg.OLA.Enabled)
	assert.Equal(t, "ola.local:9010", cfg.OLA.Address)
	assert.Equal(t, 25*time.Millisecond, cfg.OLA.Tick)
	assert.Equal(t, 8080, cfg.Server.Port)
	require.Len(t, cfg.Patch, 1)
	assert.Equal(t, PatchedLayer{Name: "earth", Address: 100, Universe: 2, Profile: "layer"}, cfg.Patch[0])

	// untouched settings keep their defaults
	assert.Equal(t, 0.2, cfg.VelocityDecay)
	assert.NotEmpty(t, cfg.Profiles)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load("testdata/nope.yaml")
	require.Error(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NewConfig().FPS, cfg.FPS)
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvPort:          "5050",
		EnvResendAPIKey:  "re_123",
		EnvSoundDisabled: "true",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := NewConfig()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, 5050, cfg.Server.Port)
	assert.Equal(t, "re_123", cfg.Server.ResendAPIKey)
	assert.False(t, cfg.Sound.Enabled)
	assert.Equal(t, "http://localhost:5173", cfg.Server.FrontendURL)

	env[EnvPort] = "forty"
	require.Error(t, cfg.ApplyEnv(lookup))
}

func TestEnvLookupReadsDotenv(t *testing.T) {
	t.Parallel()

	lookup, err := EnvLookup("testdata/.env.test", "testdata/.env.missing")
	require.NoError(t, err)

	v, ok := lookup(EnvResendAPIKey)
	require.True(t, ok)
	assert.Equal(t, "re_test_key", v)

	cfg := NewConfig()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "https://liftoff.example", cfg.Server.FrontendURL)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.FPS = 0
	require.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.Patch = append(cfg.Patch, PatchedLayer{Name: "ghost", Address: 1, Profile: "hologram"})
	require.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.Patch = []PatchedLayer{{Name: "earth", Address: 600, Profile: "layer"}}
	require.Error(t, cfg.Validate())
}
