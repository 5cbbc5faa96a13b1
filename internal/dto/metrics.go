package dto

import "time"

// MetricsSnapshot aggregates engine and transport counters for the
// JSON stats endpoint.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	SessionsAssigned         uint64    `json:"sessions_assigned"`
	CallOutsCovered          uint64    `json:"callouts_covered"`
	CallOutsUncovered        uint64    `json:"callouts_uncovered"`
	BidsResolved             uint64    `json:"bids_resolved"`
	Transfers                uint64    `json:"transfers"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
