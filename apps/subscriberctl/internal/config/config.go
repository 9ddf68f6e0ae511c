// Package config はsubscriberctlの設定を環境変数から読み込む。
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix は環境変数の接頭辞。
const EnvPrefix = "SUBSCRIBERCTL"

// Config はsubscriberctlの設定を保持する。
// フラグ指定があればフラグが優先される。
type Config struct {
	APIURL    string        `envconfig:"API_URL" default:"http://localhost:8080"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"5s"`
	AdminUser string        `envconfig:"ADMIN_USER"`
	LogLevel  string        `envconfig:"LOG_LEVEL" default:"WARN"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("failed to load config: %s_TIMEOUT must be positive", EnvPrefix)
	}
	return &cfg, nil
}
