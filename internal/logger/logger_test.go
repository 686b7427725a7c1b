package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestVerboseOutput(t *testing.T) {
	buf := capture(t, true)

	Debug("scan %d", 7)
	Info("read %d scans", 3)
	Section("Detect")

	assert.Equal(t, "[DEBUG] scan 7\n[INFO] read 3 scans\n\n=== Detect ===\n", buf.String())
}

func TestQuietOutput(t *testing.T) {
	buf := capture(t, false)

	Debug("scan %d", 7)
	Info("hidden")
	Section("Detect")

	assert.Empty(t, buf.String())
}

func TestWarnAlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Warn("scan %d skipped", 4)

	assert.Equal(t, "Warning: scan 4 skipped\n", buf.String())
}
