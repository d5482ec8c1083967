// Package config 加载应用配置：YAML 文件管结构化配置，
// 环境变量（可选 .env 文件）管上游凭证——凭证不进配置文件。
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/LLrodyaLL/predictive-analytics-project/wildbox"
)

// Config 是应用配置（支持 YAML）。
type Config struct {
	Wildbox struct {
		BaseURL                 string `yaml:"base_url"`
		TimeoutSeconds          int    `yaml:"timeout_seconds"`
		PositionsTimeoutSeconds int    `yaml:"positions_timeout_seconds"`
		HistoryDays             int    `yaml:"history_days"`
	} `yaml:"wildbox"`

	Model struct {
		Endpoint       string `yaml:"endpoint"`
		Name           string `yaml:"name"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"model"`

	Store struct {
		Type       string `yaml:"type"` // memory / redis
		Addr       string `yaml:"addr"`
		DB         int    `yaml:"db"`
		TTLSeconds int    `yaml:"ttl_seconds"`
	} `yaml:"store"`

	Matrix struct {
		Path string `yaml:"path"`
	} `yaml:"matrix"`

	Batch struct {
		MaxConcurrent int `yaml:"max_concurrent"`
	} `yaml:"batch"`
}

// Load 从 YAML 文件加载配置并填默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Wildbox.TimeoutSeconds <= 0 {
		c.Wildbox.TimeoutSeconds = 30
	}
	if c.Wildbox.PositionsTimeoutSeconds <= 0 {
		c.Wildbox.PositionsTimeoutSeconds = 45
	}
	if c.Wildbox.HistoryDays <= 0 {
		c.Wildbox.HistoryDays = 30
	}
	if c.Model.TimeoutSeconds <= 0 {
		c.Model.TimeoutSeconds = 30
	}
	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}
	if c.Store.TTLSeconds <= 0 {
		c.Store.TTLSeconds = 900
	}
	if c.Batch.MaxConcurrent <= 0 {
		c.Batch.MaxConcurrent = 4
	}
}

// AuthFromEnv 从环境变量读取上游凭证；当前目录有 .env 时先加载它
// （不存在不算错）。三个变量缺一不可。
func AuthFromEnv() (wildbox.AuthConfig, error) {
	_ = godotenv.Load()

	auth := wildbox.AuthConfig{
		Token:     os.Getenv("AUTH_TOKEN"),
		CompanyID: os.Getenv("COMPANY_ID"),
		UserID:    os.Getenv("USER_ID"),
	}
	if auth.Token == "" || auth.CompanyID == "" || auth.UserID == "" {
		return wildbox.AuthConfig{}, fmt.Errorf(
			"AUTH_TOKEN, COMPANY_ID and USER_ID must be set (env or .env)")
	}
	return auth, nil
}
