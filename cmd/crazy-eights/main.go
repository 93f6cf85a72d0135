package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/crazy-eights/internal/config"
	"github.com/palemoky/crazy-eights/internal/logger"
	"github.com/palemoky/crazy-eights/internal/sound"
	"github.com/palemoky/crazy-eights/internal/stats"
	"github.com/palemoky/crazy-eights/internal/ui"
)

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".crazy-eights", "config.yaml")
}

func main() {
	configPath := flag.String("config", defaultConfigPath(), "配置文件路径")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// 没有配置文件时用默认配置
		cfg = config.Default()
		logger.LogInfo("config not loaded (%v), using defaults", err)
	}

	sm := sound.NewSoundManager()
	if cfg.Sound.Enabled {
		if err := sm.Init(); err != nil {
			logger.LogError("sound init failed: %v", err)
		}
	}
	defer sm.Close()

	var store *stats.Store
	if cfg.Stats.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = stats.NewStore(client)
	}

	model := ui.NewModel(cfg, sm, store)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动游戏时出错: %v", err)
	}
}
