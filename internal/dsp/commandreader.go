package dsp

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// CommandReader performs a non-blocking, single-line-per-block read
// on a text command channel and mutates Params between blocks. It
// never blocks the caller: a background goroutine scans complete
// lines off the underlying reader into a small buffered channel, and
// PollAndApply drains at most one with select/default, the same
// non-blocking fan-in idiom used for multi-client polling loops in
// this codebase's lineage.
//
// Accepted commands are a single key followed by a comma-separated
// list of decimals. Unknown keys, malformed numbers, truncated
// lines, and NaN/Inf tokens are silently dropped so the channel
// remains best-effort and non-blocking.
type CommandReader struct {
	lines chan string
}

// NewCommandReader starts the background line scanner over r (e.g.
// os.Stdin) and returns a ready-to-poll CommandReader. The scanner
// goroutine exits when r returns EOF or an error.
func NewCommandReader(r io.Reader) *CommandReader {
	cr := &CommandReader{lines: make(chan string, 16)}

	go func() {
		defer close(cr.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			cr.lines <- scanner.Text()
		}
	}()

	return cr
}

// PollAndApply drains at most one pending command line, if any, and
// applies it to p. Called once per block, before processing begins.
func (cr *CommandReader) PollAndApply(p *Params) {
	select {
	case line, ok := <-cr.lines:
		if !ok {
			return
		}
		applyCommandLine(line, p)
	default:
	}
}

func applyCommandLine(line string, p *Params) {
	key, tail, found := strings.Cut(strings.TrimSpace(line), " ")
	if !found {
		return
	}

	values, ok := parseDecimalList(tail)
	if !ok {
		return
	}

	switch key {
	case "y1_den":
		_ = setCoeffs(&p.Y1Den, values)
	case "y2_coeffs":
		_ = setCoeffs(&p.Y2Coeffs, values)
	case "y3_coeffs":
		_ = setCoeffs(&p.Y3Coeffs, values)
	case "yt_coeffs":
		if len(values) == 2 {
			p.E = values[0]
			p.F = values[1]
		}
	default:
		// Unrecognized key: silently ignored.
	}
}

// parseDecimalList splits a comma-separated list of decimal tokens,
// rejecting the whole command if any token fails to parse, is NaN,
// or is infinite, or if there are more than MaxCoeffs tokens.
func parseDecimalList(tail string) ([]float64, bool) {
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return nil, false
	}

	tokens := strings.Split(tail, ",")
	if len(tokens) > MaxCoeffs {
		return nil, false
	}

	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		values = append(values, v)
	}

	return values, true
}
