package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/seatsync/pkg/constants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Seatsync configuration
	Roster           string
	Endpoint         string
	Token            string
	TierMap          string
	AutoSync         bool
	AutoSyncInterval time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.seatsync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Bind the documented SEATSYNC_* variables
	bindEnvAliases()

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(constants.DefaultConfigName)
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	// Build config from viper
	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		// Config file
		ConfigFile: viper.ConfigFileUsed(),

		// Seatsync configuration
		Roster:           viper.GetString("roster"),
		Endpoint:         viper.GetString("endpoint"),
		Token:            viper.GetString("token"),
		TierMap:          viper.GetString("tier_map"),
		AutoSync:         viper.GetBool("auto_sync"),
		AutoSyncInterval: viper.GetDuration("auto_sync_interval"),

		// Logging configuration. LogLevel stays empty when LOG_LEVEL is
		// unset so the -v/-q precedence in logger.go can take effect.
		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Set defaults
	if config.AutoSyncInterval == 0 {
		config.AutoSyncInterval = constants.DefaultSyncInterval
	}

	return config, nil
}

// UpdateFromFlags applies parsed command flags on top of the loaded config.
// This should be called after cobra parses flags so flag values take
// precedence over config file and env vars. Boolean flags can only enable
// behavior; string flags override when non-empty.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// Try to load .env files in order of precedence
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindEnvAliases explicitly binds the documented SEATSYNC_* environment
// variables to their viper keys. AutomaticEnv only covers the bare key
// names (TOKEN, ENDPOINT), which are too generic to document.
func bindEnvAliases() {
	aliases := [][]string{
		{"token", "SEATSYNC_TOKEN"},
		{"endpoint", "SEATSYNC_ENDPOINT"},
		{"roster", "SEATSYNC_ROSTER"},
		{"tier_map", "SEATSYNC_TIER_MAP"},
	}

	for _, binding := range aliases {
		if err := viper.BindEnv(binding...); err != nil {
			// Log warning but continue - this isn't critical
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", binding[1], err)
		}
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
