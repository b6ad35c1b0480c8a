package game

import (
	"log"
	"time"

	"raystein/internal/render"
)

// ReportLogger logs contained render errors at most once per interval and
// counts the frames it stayed quiet for.
type ReportLogger struct {
	Interval   time.Duration
	Logf       func(format string, args ...any)
	last       time.Time
	suppressed int
}

// NewReportLogger logs through the standard logger once per second.
func NewReportLogger() *ReportLogger {
	return &ReportLogger{Interval: time.Second, Logf: log.Printf}
}

// Observe records a frame report. It returns true when it logged.
func (l *ReportLogger) Observe(now time.Time, report render.FrameReport) bool {
	err := report.Err()
	if err == nil {
		return false
	}
	if !l.last.IsZero() && now.Sub(l.last) < l.Interval {
		l.suppressed++
		return false
	}
	if l.suppressed > 0 {
		l.Logf("Render errors (%d frames suppressed): %v", l.suppressed, err)
	} else {
		l.Logf("Render errors: %v", err)
	}
	l.last = now
	l.suppressed = 0
	return true
}
