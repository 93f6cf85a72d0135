package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 客户端配置
type Config struct {
	Game  GameConfig  `yaml:"game"`
	Sound SoundConfig `yaml:"sound"`
	Stats StatsConfig `yaml:"stats"`
	Redis RedisConfig `yaml:"redis"`
}

// GameConfig 游戏配置
type GameConfig struct {
	ThinkDelay int `yaml:"think_delay"` // 电脑思考延迟（毫秒）
}

// SoundConfig 音效配置
type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StatsConfig 战绩统计配置
type StatsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RedisConfig Redis 配置（仅在开启战绩统计时使用）
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ThinkDelayDuration 返回电脑思考延迟时长
func (c *GameConfig) ThinkDelayDuration() time.Duration {
	return time.Duration(c.ThinkDelay) * time.Millisecond
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Game.ThinkDelay == 0 {
		cfg.Game.ThinkDelay = 1500
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			ThinkDelay: 1500,
		},
		Sound: SoundConfig{
			Enabled: true,
		},
		Stats: StatsConfig{
			Enabled: false,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}
