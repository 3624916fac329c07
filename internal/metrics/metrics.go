package metrics

import (
	"sync"
	"time"
)

// Metrics collects per-run curation counters, exposed over /metrics when the
// monitoring server is enabled.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourcesFetched     int64
	SourcesFailed      int64
	CandidatesSeen     int64
	RejectedIrrelevant int64
	RejectedStale      int64
	DuplicatesFiltered int64
	ArticlesCurated    int64
	EmailsSent         int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddSourceFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFetched++
}

func (m *Metrics) AddSourceFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFailed++
}

func (m *Metrics) AddCandidates(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesSeen += int64(n)
}

func (m *Metrics) AddRejectedIrrelevant() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RejectedIrrelevant++
}

func (m *Metrics) AddRejectedStale() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RejectedStale++
}

func (m *Metrics) AddDuplicateFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) AddArticlesCurated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesCurated += int64(n)
}

func (m *Metrics) AddEmailSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailsSent++
}

func (m *Metrics) RecordRun(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = d
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"sources_fetched":      m.SourcesFetched,
		"sources_failed":       m.SourcesFailed,
		"candidates_seen":      m.CandidatesSeen,
		"rejected_irrelevant":  m.RejectedIrrelevant,
		"rejected_stale":       m.RejectedStale,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"articles_curated":     m.ArticlesCurated,
		"emails_sent":          m.EmailsSent,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
