// Package engine 行为模式分析与建议引擎。
//
// 输入：每个维度的当前分数、按时间升序的会话历史、用户上下文。
// 输出：按 confidence × successProbability 降序的建议列表（最多 5 条）。
// 引擎是纯计算，不做 I/O，不访问数据库；唯一的可变状态是内部的
// 学习历史缓冲区（互斥锁保护）。任何残缺输入都降级为文档化的默认值，
// 永远不会返回错误。
package engine

import (
	"fmt"
	"time"

	"lifeos_backend/internal/model"
)

type Config struct {
	PatternWindow      int     // 每个维度参与分析的最近观测数
	VelocityWindow     int     // 速度计算窗口
	StabilityWindow    int     // 稳定度计算窗口
	MaxRecommendations int     // 返回建议上限
	MinConfidence      float64 // 低于该置信度的建议被过滤
	HistoryCap         int     // 历史缓冲区上限
	HistoryTrim        int     // 超限后保留的最近记录数
}

func DefaultConfig() Config {
	return Config{
		PatternWindow:      20,
		VelocityWindow:     5,
		StabilityWindow:    10,
		MaxRecommendations: 5,
		MinConfidence:      0.6,
		HistoryCap:         200,
		HistoryTrim:        100,
	}
}

// sanitize 补齐零值配置，保证引擎在空 Config 下也能工作
func (c Config) sanitize() Config {
	def := DefaultConfig()
	if c.PatternWindow <= 0 {
		c.PatternWindow = def.PatternWindow
	}
	if c.VelocityWindow <= 0 {
		c.VelocityWindow = def.VelocityWindow
	}
	if c.StabilityWindow <= 0 {
		c.StabilityWindow = def.StabilityWindow
	}
	if c.MaxRecommendations <= 0 {
		c.MaxRecommendations = def.MaxRecommendations
	}
	if c.MinConfidence <= 0 {
		c.MinConfidence = def.MinConfidence
	}
	if c.HistoryCap <= 0 {
		c.HistoryCap = def.HistoryCap
	}
	if c.HistoryTrim <= 0 {
		c.HistoryTrim = def.HistoryTrim
	}
	if c.HistoryTrim > c.HistoryCap {
		c.HistoryTrim = c.HistoryCap
	}
	return c
}

type Engine struct {
	cfg     Config
	history *HistoryStore
}

func New(cfg Config) *Engine {
	cfg = cfg.sanitize()
	return &Engine{
		cfg:     cfg,
		history: NewHistoryStore(cfg.HistoryCap, cfg.HistoryTrim),
	}
}

// Analyze 是引擎的主入口。scores 为各维度当前分数，history 为按时间
// 升序的会话历史，userCtx 为本次调用的用户上下文。空输入返回空列表。
func (e *Engine) Analyze(scores map[string]float64, history []model.SessionScores, userCtx model.UserContext) []model.Recommendation {
	patterns := e.ExtractPatterns(scores, history)
	recommendations := e.generate(patterns, userCtx)

	e.history.Append(model.LearningRecord{
		Timestamp:       time.Now(),
		Patterns:        patterns,
		Recommendations: recommendations,
		UserContext:     userCtx,
	})

	return recommendations
}

// Insights 根据用户上下文生成至多 2 条简短的洞察文案
func (e *Engine) Insights(userCtx model.UserContext) []string {
	insights := make([]string, 0, 2)

	if userCtx.CurrentStreak > 7 {
		insights = append(insights, fmt.Sprintf("Your %d-day streak puts you in the top tier of consistent users. Streaks above a week strongly predict follow-through.", userCtx.CurrentStreak))
	} else if userCtx.CurrentStreak > 0 {
		insights = append(insights, fmt.Sprintf("You are %d day(s) into a streak. Reaching 7 consecutive days is where habit formation accelerates.", userCtx.CurrentStreak))
	}

	if len(insights) < 2 {
		if userCtx.CompletionRate > 0.8 {
			insights = append(insights, "You complete most of what you start. Recommendations are calibrated upward to match your follow-through.")
		} else if userCtx.TotalSessions > 50 {
			insights = append(insights, fmt.Sprintf("With %d sessions recorded, your trend data is mature enough for high-confidence pattern detection.", userCtx.TotalSessions))
		} else if userCtx.PreferredTime != "" {
			insights = append(insights, fmt.Sprintf("You tend to check in during the %s. Scheduling action steps in that window improves completion odds.", userCtx.PreferredTime))
		}
	}

	if len(insights) > 2 {
		insights = insights[:2]
	}
	return insights
}

// HistoryStats 历史缓冲区的描述性统计，供运营侧洞察展示
func (e *Engine) HistoryStats() model.HistoryStats {
	return e.history.Stats()
}

// HistorySnapshot 返回历史缓冲区的副本
func (e *Engine) HistorySnapshot() []model.LearningRecord {
	return e.history.Snapshot()
}
