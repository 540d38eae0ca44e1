package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	dirName    = ".resumatch"
	fileName   = "config.yaml"
	envPrefix  = "RESUMATCH"
	dbFileName = "resumatch.db"
)

// Config holds the application configuration
type Config struct {
	DBPath      string `mapstructure:"db_path" validate:"required"`
	CatalogPath string `mapstructure:"catalog_path"` // empty uses the built-in catalog
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	// Password hashing cost (argon2id). Memory is in KiB.
	ArgonMemory  uint32 `mapstructure:"argon_memory" validate:"min=8192"`
	ArgonTime    uint32 `mapstructure:"argon_time" validate:"min=1"`
	ArgonThreads uint8  `mapstructure:"argon_threads" validate:"min=1"`
	// Job description fetching
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" validate:"gt=0"`
	UseBrowser   bool          `mapstructure:"use_browser"`
}

// Keys lists the settings `config set` accepts
var Keys = []string{
	"db_path", "catalog_path", "log_level",
	"argon_memory", "argon_time", "argon_threads",
	"fetch_timeout", "use_browser",
}

var validate = validator.New()

// configDir is where Initialize looked last
var configDir string

// Dir returns the default configuration directory, ~/.resumatch
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, dirName), nil
}

// Initialize loads or creates the configuration file in the default directory
func Initialize() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return InitializeAt(dir)
}

// InitializeAt loads or creates dir/config.yaml. Environment variables
// prefixed RESUMATCH_ override file values.
func InitializeAt(dir string) (*Config, error) {
	configFile := filepath.Join(dir, fileName)

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return nil, err
		}
	}

	viper.Reset()
	configDir = dir
	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("db_path", filepath.Join(dir, dbFileName))
	viper.SetDefault("catalog_path", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("argon_memory", 64*1024)
	viper.SetDefault("argon_time", 1)
	viper.SetDefault("argon_threads", 4)
	viper.SetDefault("fetch_timeout", "20s")
	viper.SetDefault("use_browser", false)

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return load()
}

// load unmarshals and validates the current settings
func load() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(configDir, dbFileName)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Resumatch Configuration
# Leave db_path empty to keep the database next to this file.
db_path: ""
# Path to a custom role/stop-word catalog (YAML). Empty uses the built-in one.
catalog_path: ""
# debug, info, warn or error
log_level: info

# Password hashing (argon2id). Memory is in KiB.
argon_memory: 65536
argon_time: 1
argon_threads: 4

# Job description fetching (analyze --jd-url)
fetch_timeout: 20s
use_browser: false
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value and writes the file. The value is
// rejected, and nothing is written, when the result would not validate.
func Set(key, value string) (*Config, error) {
	if !slices.Contains(Keys, key) {
		return nil, fmt.Errorf("unknown key %q, must be one of: %s", key, strings.Join(Keys, ", "))
	}

	previous := viper.Get(key)
	viper.Set(key, value)
	cfg, err := load()
	if err != nil {
		viper.Set(key, previous)
		return nil, err
	}
	if err := viper.WriteConfig(); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	return cfg, nil
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configDir == "" {
		if dir, err := Dir(); err == nil {
			return filepath.Join(dir, fileName)
		}
	}
	return filepath.Join(configDir, fileName)
}
