package dsp

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// netOutputWriteTimeout bounds how long a single fan-out write may
// block on a slow client before it is dropped, keeping a stalled
// ControlBroker from stalling the DSP loop.
const netOutputWriteTimeout = 200 * time.Millisecond

// fanoutWriter broadcasts every Write to stdout and to all currently
// connected TCP clients. A client whose write does not complete within
// netOutputWriteTimeout is closed and dropped, so a slow or
// disconnected ControlBroker stalls the DSP loop for at most that long
// per client per write.
type fanoutWriter struct {
	stdout io.Writer
	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	logger *log.Logger
}

// NewNetOutput starts a TCP listener on addr and returns an
// io.Writer that fans every WriteFrame call out to stdout plus every
// connected client, along with a stop function.
func NewNetOutput(addr string, stdout io.Writer, logger *log.Logger) (io.Writer, func() error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	fw := &fanoutWriter{stdout: stdout, conns: make(map[net.Conn]struct{}), logger: logger}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			fw.mu.Lock()
			fw.conns[conn] = struct{}{}
			fw.mu.Unlock()
			if logger != nil {
				logger.Info("net-output client connected", "remote", conn.RemoteAddr())
			}
		}
	}()

	return fw, ln.Close, nil
}

func (fw *fanoutWriter) Write(p []byte) (int, error) {
	n, err := fw.stdout.Write(p)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	for conn := range fw.conns {
		if writeErr := conn.SetWriteDeadline(time.Now().Add(netOutputWriteTimeout)); writeErr == nil {
			if _, wErr := conn.Write(p); wErr != nil {
				_ = conn.Close()
				delete(fw.conns, conn)
			}
		}
	}

	return n, err
}
