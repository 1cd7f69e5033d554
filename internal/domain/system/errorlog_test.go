package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

func TestErrorSeverity(t *testing.T) {
	prev := 0
	for _, s := range AllSeverities() {
		assert.True(t, s.IsValid())
		assert.NotEqual(t, shared.ToneNeutral, s.Tone())
		assert.Greater(t, s.Rank(), prev)
		prev = s.Rank()
	}
	assert.Zero(t, ErrorSeverity("Fatal").Rank())
	assert.Equal(t, "Fatal", ErrorSeverity("Fatal").Label())
}

func TestErrorLogFilter_Params(t *testing.T) {
	resolved := false
	to := time.Date(2026, 2, 1, 10, 0, 0, 0, time.FixedZone("AMM", 3*3600))
	p := ErrorLogFilter{Severity: SeverityCritical, IsResolved: &resolved, To: &to}.Params()

	v, ok := p.Get("toDate")
	assert.True(t, ok)
	assert.Equal(t, "2026-02-01T07:00:00Z", v)
	assert.Equal(t, []string{"isResolved", "severity", "toDate"}, p.Keys())
}
