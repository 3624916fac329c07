package metrics

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := &Metrics{IsHealthy: true}

	m.AddSourceFetched()
	m.AddSourceFetched()
	m.AddSourceFailed()
	m.AddCandidates(12)
	m.AddRejectedIrrelevant()
	m.AddRejectedStale()
	m.AddDuplicateFiltered()
	m.AddArticlesCurated(7)
	m.AddEmailSent()

	stats := m.GetStats()
	checks := map[string]int64{
		"sources_fetched":     2,
		"sources_failed":      1,
		"candidates_seen":     12,
		"rejected_irrelevant": 1,
		"rejected_stale":      1,
		"duplicates_filtered": 1,
		"articles_curated":    7,
		"emails_sent":         1,
	}
	for key, want := range checks {
		if got := stats[key].(int64); got != want {
			t.Errorf("%s = %d, want %d", key, got, want)
		}
	}
}

func TestMetricsHealthTransitions(t *testing.T) {
	m := &Metrics{IsHealthy: true}

	m.SetError("brevo API error")
	if m.GetStats()["is_healthy"].(bool) {
		t.Fatal("SetError must mark unhealthy")
	}
	if m.GetStats()["last_error"].(string) != "brevo API error" {
		t.Fatal("last error not recorded")
	}

	m.RecordRun(3 * time.Second)
	stats := m.GetStats()
	if !stats["is_healthy"].(bool) {
		t.Fatal("RecordRun must mark healthy again")
	}
	if stats["last_run_duration_ms"].(int64) != 3000 {
		t.Fatalf("last_run_duration_ms = %v", stats["last_run_duration_ms"])
	}
}
