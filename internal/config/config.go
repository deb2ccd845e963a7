package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime settings for mentorlink
type Config struct {
	APIKey         string
	Model          string
	SessionsFile   string
	MentorsFile    string
	RequestTimeout time.Duration
	LogLevel       string
}

// Load merges, in increasing priority, defaults, the YAML config file,
// MENTORLINK_* environment variables and values already set on v (bound
// flags). A .env file in the working directory is loaded first if present.
// An empty cfgFile looks for ./mentorlink.yaml and tolerates its absence.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if v == nil {
		v = viper.New()
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("mentorlink")
	}

	v.SetEnvPrefix("MENTORLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_key", firstEnv("GEMINI_API_KEY", "API_KEY"))
	v.SetDefault("model", "gemini-3-flash-preview")
	v.SetDefault("sessions_file", "")
	v.SetDefault("mentors_file", "")
	v.SetDefault("request_timeout", 60*time.Second)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		APIKey:         v.GetString("api_key"),
		Model:          v.GetString("model"),
		SessionsFile:   v.GetString("sessions_file"),
		MentorsFile:    v.GetString("mentors_file"),
		RequestTimeout: v.GetDuration("request_timeout"),
		LogLevel:       v.GetString("log_level"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
