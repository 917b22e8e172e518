package progress

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterPaintsPositionAndTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf, time.Nanosecond)
	sink := r.Sink()

	sink(Update{Name: "snapshot", Position: 512, Total: 1024})

	out := buf.String()
	assert.Contains(t, out, "snapshot")
	assert.Contains(t, out, "512 B")
	assert.Contains(t, out, "1.0 KiB")
	assert.Contains(t, out, "50.0%")
}

func TestReporterUnknownTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf, time.Nanosecond)

	r.Sink()(Update{Name: "addrbook", Position: 2048})

	out := buf.String()
	assert.Contains(t, out, "addrbook: 2.0 KiB")
	assert.NotContains(t, out, "%")
}

func TestReporterThrottles(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf, time.Hour)
	sink := r.Sink()

	sink(Update{Name: "binary", Position: 1, Total: 100})
	first := buf.Len()
	require.Positive(t, first)

	// Within the interval nothing more is painted.
	sink(Update{Name: "binary", Position: 2, Total: 100})
	assert.Equal(t, first, buf.Len())
}

func TestReporterDone(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf, time.Hour)
	sink := r.Sink()

	sink(Update{Name: "part 1", Position: 10, Total: 100})
	r.Done("part 1", 100)

	out := buf.String()
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "in ")
	assert.Contains(t, out, "\n")
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard(Update{Name: "x", Position: 1, Total: 2})
}
