package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Nyne      NyneConfig      `yaml:"nyne" mapstructure:"nyne"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Research  ResearchConfig  `yaml:"research" mapstructure:"research"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// NyneConfig holds Nyne.ai data-provider credentials and settings.
type NyneConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	Secret  string `yaml:"secret" mapstructure:"secret"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// Configured reports whether both provider credentials are present.
func (c NyneConfig) Configured() bool {
	return c.Key != "" && c.Secret != ""
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// ResearchConfig configures pipeline behavior.
type ResearchConfig struct {
	BatchSize            int     `yaml:"batch_size" mapstructure:"batch_size"`
	MaxConcurrentBatches int     `yaml:"max_concurrent_batches" mapstructure:"max_concurrent_batches"`
	ModelMaxAttempts     int     `yaml:"model_max_attempts" mapstructure:"model_max_attempts"`
	ModelRateLimit       float64 `yaml:"model_rate_limit" mapstructure:"model_rate_limit"` // calls/sec across the analyzer pool
	ModelMaxTokens       int64   `yaml:"model_max_tokens" mapstructure:"model_max_tokens"`
	FollowingMaxResults  int     `yaml:"following_max_results" mapstructure:"following_max_results"`
	ArticleLimit         int     `yaml:"article_limit" mapstructure:"article_limit"`
	PollInitialSecs      int     `yaml:"poll_initial_secs" mapstructure:"poll_initial_secs"`
	PollMaxSecs          int     `yaml:"poll_max_secs" mapstructure:"poll_max_secs"`
	FetchTimeoutSecs     int     `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
	RunTimeoutSecs       int     `yaml:"run_timeout_secs" mapstructure:"run_timeout_secs"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RESEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("nyne.base_url", "https://api.nyne.ai")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("research.batch_size", 75)
	v.SetDefault("research.max_concurrent_batches", 4)
	v.SetDefault("research.model_max_attempts", 3)
	v.SetDefault("research.model_rate_limit", 2.0)
	v.SetDefault("research.model_max_tokens", 8192)
	v.SetDefault("research.following_max_results", 500)
	v.SetDefault("research.article_limit", 15)
	v.SetDefault("research.poll_initial_secs", 1)
	v.SetDefault("research.poll_max_secs", 10)
	v.SetDefault("research.fetch_timeout_secs", 120)
	v.SetDefault("research.run_timeout_secs", 600)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
