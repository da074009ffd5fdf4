package dsp

import (
	"github.com/charmbracelet/log"
	"github.com/pkg/term"
)

// openTraceSink is the Present variant of TraceSink: a real serial
// port opened 115200 baud, 8N1, line-oriented, CR+LF terminated, per
// spec.md §6. Grounded on this codebase's own serial_port_open /
// serial_port_write pair.
type openTraceSink struct {
	port   *term.Term
	logger *log.Logger
}

// OpenTraceSink opens devicename at 115200 baud for the trace output.
// Open and write failures are never fatal to the worker (spec.md §7);
// callers should fall back to AbsentTraceSink on error and may log it
// at debug level via logger.
func OpenTraceSink(devicename string, logger *log.Logger) (TraceSink, error) {
	port, err := term.Open(devicename, term.RawMode)
	if err != nil {
		return nil, err
	}

	if err := port.SetSpeed(115200); err != nil {
		_ = port.Close()
		return nil, err
	}

	return &openTraceSink{port: port, logger: logger}, nil
}

func (s *openTraceSink) WriteLine(line string) error {
	_, err := s.port.Write([]byte(line))
	if err != nil && s.logger != nil {
		s.logger.Debug("serial trace write failed, suppressing", "err", err)
	}
	return err
}

// Close releases the underlying serial port.
func (s *openTraceSink) Close() error {
	return s.port.Close()
}
