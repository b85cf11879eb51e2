package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appDirName = ".tallybook"

// Config represents the application configuration, loaded from
// ~/.tallybook/config.yaml with TALLYBOOK_* environment overrides.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Display  DisplayConfig  `mapstructure:"display"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Debug    bool           `mapstructure:"debug"`
}

// DatabaseConfig locates the sqlite file holding the book snapshot.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DisplayConfig controls list presentation defaults.
type DisplayConfig struct {
	DefaultSort string `mapstructure:"default_sort"` // "name" or "debt", empty keeps insertion order
}

// BackupConfig locates encrypted backup files.
type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

// Dir returns the application directory (~/.tallybook), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, appDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// Load loads configuration from the config file and environment variables.
// A missing config file is fine; defaults apply.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	// .env is optional and only consulted in the working directory
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("database.path", filepath.Join(dir, "tallybook.db"))
	v.SetDefault("display.default_sort", "")
	v.SetDefault("backup.dir", filepath.Join(dir, "backups"))
	v.SetDefault("debug", false)

	v.SetEnvPrefix("TALLYBOOK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
