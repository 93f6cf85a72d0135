// Package stats persists aggregate game results in Redis. Optional,
// gated by config; only totals are stored, never game state.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/crazy-eights/internal/game"
)

// Redis key 单机单玩家，战绩存在一个 key 下
const statsKey = "crazy8:stats"

// PlayerStats 玩家战绩
type PlayerStats struct {
	TotalGames int `json:"total_games"` // 总场次
	Wins       int `json:"wins"`        // 胜场
	Losses     int `json:"losses"`      // 败场
	Draws      int `json:"draws"`       // 平局

	CurrentStreak int `json:"current_streak"` // 正数为连胜，负数为连败
	MaxWinStreak  int `json:"max_win_streak"` // 最大连胜

	LastPlayedAt int64 `json:"last_played_at"` // 最后游戏时间
	CreatedAt    int64 `json:"created_at"`     // 首次游戏时间
}

// WinRate 胜率
func (ps *PlayerStats) WinRate() float64 {
	if ps.TotalGames == 0 {
		return 0
	}
	return float64(ps.Wins) / float64(ps.TotalGames)
}

// Store Redis 战绩存储
type Store struct {
	client *redis.Client
}

// NewStore 创建战绩存储
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get 读取战绩，不存在时返回 nil
func (s *Store) Get(ctx context.Context) (*PlayerStats, error) {
	data, err := s.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Record 记录一局结果并更新连胜统计
func (s *Store) Record(ctx context.Context, winner game.Winner) (*PlayerStats, error) {
	stats, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	if stats == nil {
		stats = &PlayerStats{CreatedAt: now}
	}
	stats.TotalGames++
	stats.LastPlayedAt = now

	switch winner {
	case game.WinnerPlayer:
		stats.Wins++
		if stats.CurrentStreak < 0 {
			stats.CurrentStreak = 0
		}
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.MaxWinStreak {
			stats.MaxWinStreak = stats.CurrentStreak
		}
	case game.WinnerComputer:
		stats.Losses++
		if stats.CurrentStreak > 0 {
			stats.CurrentStreak = 0
		}
		stats.CurrentStreak--
	case game.WinnerDraw:
		stats.Draws++
		stats.CurrentStreak = 0
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, statsKey, data, 0).Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
