package dsp

import "github.com/warthog618/go-gpiocdev"

// HeartbeatSink is the capability interface for the optional
// once-per-block GPIO liveness indicator: Present on boards that
// expose PL-side GPIO (the reference hardware is a Zedboard-class
// Zynq-7000 ADC front end), Absent otherwise. Same pattern as
// TraceSink.
type HeartbeatSink interface {
	Toggle() error
}

type absentHeartbeatSink struct{}

func (absentHeartbeatSink) Toggle() error { return nil }

// AbsentHeartbeatSink is the shared Absent HeartbeatSink value.
var AbsentHeartbeatSink HeartbeatSink = absentHeartbeatSink{}

type gpioHeartbeatSink struct {
	line  *gpiocdev.Line
	value int
}

// OpenHeartbeatSink requests chip/line as a GPIO output, initially
// low. Acquisition failure is never fatal to the worker; callers
// should fall back to AbsentHeartbeatSink.
func OpenHeartbeatSink(chip string, line int) (HeartbeatSink, error) {
	l, err := gpiocdev.RequestLine(chip, line, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, err
	}
	return &gpioHeartbeatSink{line: l}, nil
}

// Toggle flips the line's output value, called once after every block
// for which n_out > 0.
func (h *gpioHeartbeatSink) Toggle() error {
	h.value ^= 1
	return h.line.SetValue(h.value)
}

// Close releases the GPIO line.
func (h *gpioHeartbeatSink) Close() error {
	return h.line.Close()
}
