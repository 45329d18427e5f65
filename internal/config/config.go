// Package config manages application configuration from
// ~/.ganttkit/config.yaml and GANTT_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sandrine-crypto/ganttkit/internal/chart"
)

// Config holds the application configuration.
type Config struct {
	Chart struct {
		Title string `mapstructure:"title"`
		Width int    `mapstructure:"width"`
	} `mapstructure:"chart"`
	Output struct {
		Dir   string `mapstructure:"dir"`
		Color bool   `mapstructure:"color"`
	} `mapstructure:"output"`
	Serve struct {
		Addr         string  `mapstructure:"addr"`
		MaxUploadMB  int     `mapstructure:"max_upload_mb"`
		RateLimit    float64 `mapstructure:"rate_limit"`
		RateLimitTTL int     `mapstructure:"rate_limit_ttl"`
	} `mapstructure:"serve"`
	Watch struct {
		DebounceMs int  `mapstructure:"debounce_ms"`
		Recursive  bool `mapstructure:"recursive"`
	} `mapstructure:"watch"`
}

func setDefaults() {
	viper.SetDefault("chart.title", chart.DefaultTitle)
	viper.SetDefault("chart.width", chart.DefaultWidth)
	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.color", true)
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("serve.max_upload_mb", 10)
	viper.SetDefault("serve.rate_limit", 10)
	viper.SetDefault("serve.rate_limit_ttl", 3600)
	viper.SetDefault("watch.debounce_ms", 500)
	viper.SetDefault("watch.recursive", false)
}

// Load reads the configuration from ~/.ganttkit/config.yaml and
// environment variables. A missing config file is not an error.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	setDefaults()

	viper.SetEnvPrefix("GANTT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ganttkit"
	}
	return filepath.Join(home, ".ganttkit")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Set sets a config value and saves to disk.
func Set(key, value string) error {
	viper.Set(key, value)
	return SaveConfig()
}

// Get retrieves a config value.
func Get(key string) string {
	return viper.GetString(key)
}

// SaveConfig writes the current config to ~/.ganttkit/config.yaml.
func SaveConfig() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

// ResetConfig deletes the config file and restores defaults.
func ResetConfig() error {
	if err := os.Remove(ConfigPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete config: %w", err)
	}
	setDefaults()
	return nil
}

// ShowConfig returns a formatted string of the current configuration.
func ShowConfig() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Config: %s\n\n", ConfigPath()))

	sb.WriteString("Chart\n")
	sb.WriteString(fmt.Sprintf("  title:  %s\n", viper.GetString("chart.title")))
	sb.WriteString(fmt.Sprintf("  width:  %d\n", viper.GetInt("chart.width")))
	sb.WriteString("\n")

	sb.WriteString("Output\n")
	sb.WriteString(fmt.Sprintf("  dir:    %s\n", viper.GetString("output.dir")))
	sb.WriteString(fmt.Sprintf("  color:  %v\n", viper.GetBool("output.color")))
	sb.WriteString("\n")

	sb.WriteString("Serve\n")
	sb.WriteString(fmt.Sprintf("  addr:           %s\n", viper.GetString("serve.addr")))
	sb.WriteString(fmt.Sprintf("  max_upload_mb:  %d\n", viper.GetInt("serve.max_upload_mb")))
	sb.WriteString(fmt.Sprintf("  rate_limit:     %v\n", viper.GetFloat64("serve.rate_limit")))
	sb.WriteString("\n")

	sb.WriteString("Watch\n")
	sb.WriteString(fmt.Sprintf("  debounce_ms:  %d\n", viper.GetInt("watch.debounce_ms")))
	sb.WriteString(fmt.Sprintf("  recursive:    %v\n", viper.GetBool("watch.recursive")))

	return sb.String()
}
