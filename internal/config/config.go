package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type SheetsConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	SpreadsheetID  string        `mapstructure:"spreadsheet_id"`
	OrdersSheet    string        `mapstructure:"orders_sheet"`
	ChecklistSheet string        `mapstructure:"checklist_sheet"`
	APIKeyEnv      string        `mapstructure:"api_key_env"`
	APIKey         string        `mapstructure:"api_key"`
	AccessTokenEnv string        `mapstructure:"access_token_env"`
	AccessToken    string        `mapstructure:"access_token"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type ChatConfig struct {
	Provider  string        `mapstructure:"provider"` // openai, anthropic, mock, or empty to disable
	Model     string        `mapstructure:"model"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
	ProjectID string        `mapstructure:"project_id"`
	MaxRows   int           `mapstructure:"max_rows"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type SnapshotConfig struct {
	Driver       string `mapstructure:"driver"` // mysql or sqlite3
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.mode", "release")

	v.SetDefault("cache.ttl", 120*time.Second)

	v.SetDefault("sheets.base_url", "https://sheets.googleapis.com")
	v.SetDefault("sheets.spreadsheet_id", "1zaRPHP3k-K1L0z3Bi_Wk--S1Xe2erOAAVYp78h18UUI")
	v.SetDefault("sheets.orders_sheet", "Orders")
	v.SetDefault("sheets.checklist_sheet", "Booth Checklist")
	v.SetDefault("sheets.api_key_env", "GOOGLE_SHEETS_API_KEY")
	v.SetDefault("sheets.access_token_env", "GOOGLE_SHEETS_ACCESS_TOKEN")
	v.SetDefault("sheets.timeout", 15*time.Second)

	v.SetDefault("chat.provider", "")
	v.SetDefault("chat.model", "gpt-4o-mini")
	v.SetDefault("chat.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("chat.max_rows", 50)
	v.SetDefault("chat.timeout", 30*time.Second)

	v.SetDefault("snapshot.driver", "mysql")
	v.SetDefault("snapshot.dsn", "")
	v.SetDefault("snapshot.maxOpenConns", 5)

	v.SetDefault("log.level", "info")
}

// LoadConfig loads configuration from config.yaml and environment variables.
// A missing config file is fine; defaults cover every setting.
func LoadConfig() (*Config, error) {
	return Load("")
}

// Load reads the given config file, or searches the usual locations when path is empty
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Set config file locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("./")
		v.AddConfigPath("$HOME/.expotrack/")
		v.AddConfigPath("/etc/expotrack/")
	}

	// Enable environment variable override with EXPOTRACK_ prefix
	v.SetEnvPrefix("EXPOTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// PORT is what the hosting platform hands us
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Addr = ":" + port
	}

	return &config, nil
}

// ResolveSecret returns the direct value if set, otherwise the named environment variable
func ResolveSecret(direct, envName string) string {
	if direct != "" {
		return direct
	}
	if envName != "" {
		return os.Getenv(envName)
	}
	return ""
}
