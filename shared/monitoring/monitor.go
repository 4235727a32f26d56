package monitoring

import (
	"fmt"
	"log"
	"time"
)

// Monitor tracks the outcome of every analysis in one session.
type Monitor struct {
	successes   int
	failures    int
	lastSuccess bool
	lastRunTime time.Time
	lastFile    string
	total       time.Duration
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(fileName string, duration time.Duration) {
	m.successes++
	m.lastSuccess = true
	m.lastRunTime = time.Now()
	m.lastFile = fileName
	m.total += duration

	log.Printf("✅ Analysis completed - %s (took %v)", fileName, duration.Round(time.Millisecond))
}

func (m *Monitor) RecordFailure(err error, duration time.Duration) {
	m.failures++
	m.lastSuccess = false
	m.lastRunTime = time.Now()
	m.total += duration

	log.Printf("🚨 Analysis failed: %v (took %v)", err, duration.Round(time.Millisecond))
}

// IsHealthy reports whether the most recent analysis succeeded.
func (m *Monitor) IsHealthy() bool {
	if m.lastRunTime.IsZero() {
		return true // No runs yet
	}
	return m.lastSuccess
}

func (m *Monitor) GetStatusSummary() string {
	if m.lastRunTime.IsZero() {
		return "No videos analyzed"
	}

	summary := fmt.Sprintf("%d analyzed, %d failed in %v", m.successes, m.failures, m.total.Round(time.Second))
	if m.lastSuccess {
		return fmt.Sprintf("✅ %s (last report: %s)", summary, m.lastFile)
	}
	return fmt.Sprintf("❌ %s (last run failed: %s)", summary, m.lastRunTime.Format("Jan 2 15:04"))
}
