package dsp

import (
	"bufio"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpenTraceSinkWriteLine exercises OpenTraceSink/WriteLine against
// a real pty pair rather than a mock, the way this codebase's own
// serial code (kisspt_open_pt's pty.Open() loopback) is tested against
// a pseudo-terminal instead of real hardware.
func TestOpenTraceSinkWriteLine(t *testing.T) {
	ptmx, pts, err := pty.Open()
	require.NoError(t, err)
	defer ptmx.Close()
	defer pts.Close()

	sink, err := OpenTraceSink(pts.Name(), nil)
	require.NoError(t, err)
	defer func() {
		if closer, ok := sink.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}()

	const line = "YT[0] = 1, 2, 3, 4\r\n"
	require.NoError(t, sink.WriteLine(line))

	reader := bufio.NewReader(ptmx)
	got, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, line, got)
}

func TestOpenTraceSinkRejectsBadDevice(t *testing.T) {
	_, err := OpenTraceSink("/nonexistent/trace/device", nil)
	assert.Error(t, err)
}
