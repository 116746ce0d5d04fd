package models

import "time"

// ChatRecord is one answered chat request as written to the history log.
type ChatRecord struct {
	ID           int64     `json:"id"`
	Question     string    `json:"question"`
	Intent       Intent    `json:"intent"`
	CacheHit     bool      `json:"cache_hit"`
	ProductCount int       `json:"product_count"`
	ResponseLen  int       `json:"response_len"`
	StatusCode   int       `json:"status_code"`
	LatencyMs    int64     `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChatStat is an aggregate history row grouped by intent and day.
type ChatStat struct {
	Intent       Intent  `json:"intent"`
	Day          string  `json:"day"`
	Requests     int64   `json:"requests"`
	CacheHits    int64   `json:"cache_hits"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// QuotaPeriod defines the time window for a quota policy.
type QuotaPeriod string

const (
	QuotaDaily   QuotaPeriod = "daily"
	QuotaMonthly QuotaPeriod = "monthly"
)

// QuotaPolicy caps the number of generative API calls per period.
type QuotaPolicy struct {
	MaxCalls int64       `json:"max_calls" yaml:"max_calls"`
	Period   QuotaPeriod `json:"period" yaml:"period"`
}
