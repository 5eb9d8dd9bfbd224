package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Recovery RecoveryConfig `mapstructure:"recovery"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	JSON     bool   `mapstructure:"json"`
	FileName string `mapstructure:"file_name"`
	ToStdout bool   `mapstructure:"to_stdout"`
}

// LLMConfig selects the text-generation provider. Only the key and model of
// the chosen provider are used.
type LLMConfig struct {
	Provider   string         `mapstructure:"provider"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	MaxRetries uint64         `mapstructure:"max_retries"`
}

type ProviderConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// LimitsConfig caps AI calls per user per UTC day.
type LimitsConfig struct {
	DailyExerciseSearches int `mapstructure:"daily_exercise_searches"`
	DailyWorkouts         int `mapstructure:"daily_workouts"`
}

type CacheConfig struct {
	ExerciseTTL time.Duration `mapstructure:"exercise_ttl"`
	SizeMB      int           `mapstructure:"size_mb"`
}

type RecoveryConfig struct {
	ExcludeWarmups      bool     `mapstructure:"exclude_warmups"`
	WarmupSectionTerms  []string `mapstructure:"warmup_section_terms"`
	WarmupExerciseTerms []string `mapstructure:"warmup_exercise_terms"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, llm.gemini.api_key -> LLM_GEMINI_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// Running on defaults and env vars only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness_ai")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket_name", "fitness-ai-raw")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file_name", "")
	v.SetDefault("log.to_stdout", true)

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", "gemini-2.0-flash")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", "claude-3-5-haiku-latest")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.max_retries", 2)

	v.SetDefault("limits.daily_exercise_searches", 10)
	v.SetDefault("limits.daily_workouts", 5)

	v.SetDefault("cache.exercise_ttl", "10m")
	v.SetDefault("cache.size_mb", 64)

	v.SetDefault("recovery.exclude_warmups", true)
	v.SetDefault("recovery.warmup_section_terms", []string{"warm"})
	v.SetDefault("recovery.warmup_exercise_terms", []string{"circle", "warm"})
}
