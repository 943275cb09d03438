package diagnostics

import "time"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes emitted by the daemon.
const (
	ProgramStarted  = "PROGRAM.STARTED"
	ProgramCleared  = "PROGRAM.CLEARED"
	ScheduleOnDuty  = "SCHEDULE.ON_DUTY"
	ScheduleOffDuty = "SCHEDULE.OFF_DUTY"
	SchedulePinned  = "SCHEDULE.PINNED"
	DriverWrite     = "DRIVER.WRITE"
	DriverFallback  = "DRIVER.FALLBACK"
)

type Diagnostic struct {
	Time           time.Time      `json:"t"`
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Sink receives diagnostics. Implementations must not block.
type Sink interface {
	Push(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Push(d Diagnostic) { f(d) }

// Discard drops everything.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// New stamps a diagnostic with the current time.
func New(sev Severity, code, summary string) Diagnostic {
	return Diagnostic{Time: time.Now(), Severity: sev, Code: code, Summary: summary}
}

// With adds one piece of evidence.
func (d Diagnostic) With(key string, v any) Diagnostic {
	ev := make(map[string]any, len(d.Evidence)+1)
	for k, x := range d.Evidence {
		ev[k] = x
	}
	ev[key] = v
	d.Evidence = ev
	return d
}
