package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 10, cfg.Limits.DailyExerciseSearches)
	assert.Equal(t, 5, cfg.Limits.DailyWorkouts)
	assert.Equal(t, 10*time.Minute, cfg.Cache.ExerciseTTL)
	assert.Equal(t, 64, cfg.Cache.SizeMB)
	assert.True(t, cfg.Recovery.ExcludeWarmups)
	assert.Equal(t, []string{"warm"}, cfg.Recovery.WarmupSectionTerms)
	assert.Equal(t, []string{"circle", "warm"}, cfg.Recovery.WarmupExerciseTerms)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
jwt:
  secret: "file-secret"
  expiration: "30m"
llm:
  provider: anthropic
  anthropic:
    model: claude-test
limits:
  daily_workouts: 2
recovery:
  exclude_warmups: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("LLM_ANTHROPIC_API_KEY", "sk-test")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-test", cfg.LLM.Anthropic.Model)
	assert.Equal(t, "sk-test", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, 2, cfg.Limits.DailyWorkouts)
	assert.Equal(t, 10, cfg.Limits.DailyExerciseSearches)
	assert.False(t, cfg.Recovery.ExcludeWarmups)
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
