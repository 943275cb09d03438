package diagnostics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDoesNotShareEvidence(t *testing.T) {
	base := New(Info, ProgramStarted, "program started").With("program", "xmas")
	other := base.With("pinned", true)
	assert.Len(t, base.Evidence, 1)
	assert.Equal(t, map[string]any{"program": "xmas", "pinned": true}, other.Evidence)
}

func TestJSONShape(t *testing.T) {
	b, err := json.Marshal(New(Warn, DriverWrite, "write failed"))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "warning", m["severity"])
	assert.Equal(t, DriverWrite, m["code"])
	assert.NotContains(t, m, "evidence")
}

func TestSinkFunc(t *testing.T) {
	var got []string
	s := SinkFunc(func(d Diagnostic) { got = append(got, d.Code) })
	s.Push(New(Info, ScheduleOnDuty, ""))
	Discard.Push(New(Info, ScheduleOffDuty, ""))
	assert.Equal(t, []string{ScheduleOnDuty}, got)
}
