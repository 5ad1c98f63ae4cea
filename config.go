package main

import "sync"

type Config struct {
	AiDepth          int  `json:"ai_depth"`
	AiTimeBudgetMs   int  `json:"ai_time_budget_ms"`
	AiTtSize         int  `json:"ai_tt_size"`
	AiTtBuckets      int  `json:"ai_tt_buckets"`
	AiLogSearchStats bool `json:"ai_log_search_stats"`
	TickMs           int  `json:"tick_ms"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		AiDepth:        2,
		AiTimeBudgetMs: 1500,
		AiTtSize:       1 << 16,
		AiTtBuckets:    2,
		TickMs:         50,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
