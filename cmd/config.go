package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/maxisme/releasefeed"
	yaml "gopkg.in/yaml.v3"
)

// EnvFileName is the environment file loaded from the working directory, if present
const EnvFileName = ".env"

// environment variables overriding the configuration file
const (
	EnvListen         = "RELEASE_FEED_LISTEN"
	EnvRepository     = "RELEASE_FEED_REPOSITORY"
	EnvGitHubAPIURL   = "RELEASE_FEED_GITHUB_API_URL"
	EnvMirrorURL      = "RELEASE_FEED_MIRROR_URL"
	EnvAssetSubstring = "RELEASE_FEED_ASSET_SUBSTRING"
	EnvCacheSize      = "RELEASE_FEED_CACHE_SIZE"
	EnvCacheMaxAge    = "RELEASE_FEED_CACHE_MAX_AGE"
	EnvLogLevel       = "RELEASE_FEED_LOG_LEVEL"
	EnvLogFormat      = "RELEASE_FEED_LOG_FORMAT"
)

// Config of the release feed commands
type Config struct {
	Listen         string        `yaml:"listen"`
	Repository     string        `yaml:"repository"`
	GitHubAPIURL   string        `yaml:"github_api_url"`
	MirrorURL      string        `yaml:"mirror_url"`
	AssetSubstring string        `yaml:"asset_substring"`
	CacheSize      int           `yaml:"cache_size"`
	CacheMaxAge    time.Duration `yaml:"cache_max_age"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		Listen:         "localhost:8787",
		Repository:     releasefeed.DefaultRepository,
		AssetSubstring: releasefeed.DefaultAssetSubstring,
		CacheSize:      releasefeed.DefaultCacheSize,
		CacheMaxAge:    releasefeed.DefaultMaxAge,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig builds the configuration from, in order of priority:
// the environment (after loading the .env file, which never overrides existing variables),
// the YAML file at path (optional, can be empty), and the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if err := loadDotEnv(EnvFileName); err != nil {
		return config, err
	}

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return config, fmt.Errorf("cannot open configuration file: %w", err)
		}
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return config, fmt.Errorf("cannot read configuration file %q: %w", path, err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// loadDotEnv loads the variables of an environment file if it exists.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("cannot load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, target *string) {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*target = value
		}
	}
	setString(EnvListen, &c.Listen)
	setString(EnvRepository, &c.Repository)
	setString(EnvGitHubAPIURL, &c.GitHubAPIURL)
	setString(EnvMirrorURL, &c.MirrorURL)
	setString(EnvAssetSubstring, &c.AssetSubstring)
	setString(EnvLogLevel, &c.LogLevel)
	setString(EnvLogFormat, &c.LogFormat)

	if value := os.Getenv(EnvCacheSize); value != "" {
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheSize, err)
		}
		c.CacheSize = size
	}
	if value := os.Getenv(EnvCacheMaxAge); value != "" {
		maxAge, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheMaxAge, err)
		}
		c.CacheMaxAge = maxAge
	}
	return nil
}

// Validate checks the values that cannot be fixed by a default
func (c Config) Validate() error {
	if _, _, err := SplitDomainSlug(c.Repository); err != nil {
		return fmt.Errorf("repository: %w", err)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.CacheSize)
	}
	if c.CacheMaxAge < time.Second {
		return fmt.Errorf("cache max age must be at least one second, got %s", c.CacheMaxAge)
	}
	if c.AssetSubstring == "" {
		return errors.New("asset substring cannot be empty")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q, expected \"text\" or \"json\"", c.LogFormat)
	}
	return nil
}
