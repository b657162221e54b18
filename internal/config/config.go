package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const appDir = "stopwatch"

type Config struct {
	App       AppConfig       `yaml:"app"`
	Stopwatch StopwatchConfig `yaml:"stopwatch"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

type StopwatchConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	LapSound     string        `yaml:"lap_sound"` // wav 文件路径，为空时不播放
	Volume       float64       `yaml:"volume"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver"` // sqlite / redis / memory
	Path      string `yaml:"path"`
	RedisURL  string `yaml:"redis_url"`
	KeyPrefix string `yaml:"key_prefix"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// 默认配置
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "秒表",
			Version:      "1.0.0",
			WindowWidth:  360,
			WindowHeight: 520,
		},
		Stopwatch: StopwatchConfig{
			TickInterval: 10 * time.Millisecond,
			Volume:       0,
		},
		Storage: StorageConfig{
			Driver:    "sqlite",
			Path:      defaultDatabasePath(),
			RedisURL:  "redis://localhost:6379/0",
			KeyPrefix: "stopwatch:",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

type Manager struct {
	config     *Config
	configPath string
}

// NewManager 使用 XDG 配置目录下的 config.yaml
func NewManager() (*Manager, error) {
	configPath, err := xdg.ConfigFile(filepath.Join(appDir, "config.yaml"))
	if err != nil {
		return nil, errors.Wrap(err, "resolve config path")
	}
	return NewManagerAt(configPath)
}

// NewManagerAt 使用指定路径的配置文件，不存在或无法解析时写入默认配置
func NewManagerAt(configPath string) (*Manager, error) {
	manager := &Manager{
		configPath: configPath,
	}

	// 加载或创建配置
	if err := manager.loadConfig(); err != nil {
		log.Debug("using default config", "path", configPath, "err", err)
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	}

	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.Wrapf(err, "parse %s", m.configPath)
	}
	config.normalize()

	m.config = config
	return nil
}

// normalize 修正缺失或非法的字段
func (c *Config) normalize() {
	defaults := DefaultConfig()
	if c.Stopwatch.TickInterval <= 0 {
		c.Stopwatch.TickInterval = defaults.Stopwatch.TickInterval
	}
	if c.Stopwatch.Volume < -10 || c.Stopwatch.Volume > 10 {
		c.Stopwatch.Volume = defaults.Stopwatch.Volume
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaults.Storage.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	// 确保配置目录存在
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	return errors.Wrap(os.WriteFile(m.configPath, data, 0644), "write config")
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// 更新配置的便捷方法
func (m *Manager) UpdateStopwatchConfig(config StopwatchConfig) error {
	m.config.Stopwatch = config
	m.config.normalize()
	return m.SaveConfig()
}

func (m *Manager) UpdateStorageConfig(config StorageConfig) error {
	m.config.Storage = config
	m.config.normalize()
	return m.SaveConfig()
}

// ApplyLogLevel 按配置设置全局日志级别
func (c *Config) ApplyLogLevel() {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		log.Warn("unknown log level, falling back to info", "level", c.Log.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func defaultDatabasePath() string {
	path, err := xdg.DataFile(filepath.Join(appDir, "stopwatch.db"))
	if err != nil {
		return "stopwatch.db"
	}
	return path
}
