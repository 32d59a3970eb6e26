package config

import (
	"time"

	"nikkei-dashboard/pkg/common"
	"nikkei-dashboard/pkg/config"
)

// Columns maps sheet header names to record fields.
type Columns struct {
	Date     string `mapstructure:"date"`
	Score    string `mapstructure:"score"`
	Label    string `mapstructure:"label"`
	Judgment string `mapstructure:"judgment"`
}

// Sheets holds the configuration for the Google Sheets record store.
type Sheets struct {
	SpreadsheetKey      string  `mapstructure:"spreadsheet_key"`
	Worksheet           string  `mapstructure:"worksheet"`
	CredentialsFile     string  `mapstructure:"credentials_file"`
	CredentialsJSON     string  `mapstructure:"credentials_json"`
	MaxRequestPerMinute int     `mapstructure:"max_request_per_minute"`
	Columns             Columns `mapstructure:"columns"`
}

// Thresholds points at the threshold file.
type Thresholds struct {
	Path string `mapstructure:"path"`
}

// Cache holds configuration for the record read cache.
type Cache struct {
	Provider string        `mapstructure:"provider"`
	TTL      time.Duration `mapstructure:"ttl"`
	Key      string        `mapstructure:"key"`
}

// Chart holds configuration for the score history chart.
type Chart struct {
	Width    int    `mapstructure:"width"`
	Height   int    `mapstructure:"height"`
	FontPath string `mapstructure:"font_path"`
}

// Model points at the trained model artifact. It is reported at startup only.
type Model struct {
	Path string `mapstructure:"path"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App        config.App    `mapstructure:"app"`
	Logger     config.Logger `mapstructure:"logger"`
	Redis      config.Redis  `mapstructure:"redis"`
	API        config.API    `mapstructure:"api"`
	Sheets     Sheets        `mapstructure:"sheets"`
	Thresholds Thresholds    `mapstructure:"thresholds"`
	Cache      Cache         `mapstructure:"cache"`
	Chart      Chart         `mapstructure:"chart"`
	Model      Model         `mapstructure:"model"`
}

var defaults = map[string]interface{}{
	"app.name":                      "nikkei-dashboard",
	"logger.level":                  "info",
	"logger.encoding":               "json",
	"redis.host":                    "localhost",
	"redis.port":                    6379,
	"redis.pool_size":               10,
	"api.port":                      8080,
	"sheets.spreadsheet_key":        "",
	"sheets.worksheet":              common.DefaultWorksheet,
	"sheets.credentials_file":       "",
	"sheets.credentials_json":       "",
	"sheets.max_request_per_minute": 60,
	"sheets.columns.date":           common.DefaultDateColumn,
	"sheets.columns.score":          common.DefaultScoreColumn,
	"sheets.columns.label":          common.DefaultLabelColumn,
	"sheets.columns.judgment":       common.DefaultJudgmentColumn,
	"thresholds.path":               "ls_thresholds.yaml",
	"cache.provider":                common.CacheProviderMemory,
	"cache.ttl":                     "10m",
	"cache.key":                     common.RedisKeyScoreRecords,
	"chart.width":                   800,
	"chart.height":                  300,
	"chart.font_path":               "",
	"model.path":                    "ls_model.pkl",
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.LoadWithDefaults(path, &cfg, defaults); err != nil {
		return nil, err
	}
	return &cfg, nil
}
