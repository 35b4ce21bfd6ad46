// Package streams provides output adapters for the configfile locator. It
// offers ready-to-use implementations that write to stdout/stderr, discard
// output, capture output in memory buffers, or forward messages to an
// slog.Logger.
package streams

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
)

// Streams is the contract for user-facing messages emitted by the locator:
// Out carries notifications such as "created config", ErrOut carries
// non-fatal warnings. Interfaces are satisfied implicitly, so callers can
// pass their own implementations to configfile.WithStreams.
type Streams interface {
	Out() io.Writer
	ErrOut() io.Writer
}

type basic struct {
	out    io.Writer
	errOut io.Writer
}

func (s basic) Out() io.Writer    { return s.out }
func (s basic) ErrOut() io.Writer { return s.errOut }

// Default returns Streams backed by os.Stdout and os.Stderr.
func Default() Streams {
	return basic{out: os.Stdout, errOut: os.Stderr}
}

// Writers returns Streams that forward Out to out and ErrOut to errOut.
func Writers(out, errOut io.Writer) Streams {
	return basic{out: out, errOut: errOut}
}

// Discard returns Streams that drop all output.
func Discard() Streams {
	return Writers(io.Discard, io.Discard)
}

// Buffers captures output into in-memory buffers for later inspection, which
// is mostly useful in tests. It is not safe for concurrent writers.
type Buffers struct {
	OutBuf *bytes.Buffer
	ErrBuf *bytes.Buffer
}

// NewBuffers creates a Buffers with fresh Out and ErrOut buffers.
func NewBuffers() *Buffers {
	return &Buffers{OutBuf: &bytes.Buffer{}, ErrBuf: &bytes.Buffer{}}
}

func (b *Buffers) Out() io.Writer    { return b.OutBuf }
func (b *Buffers) ErrOut() io.Writer { return b.ErrBuf }

// Strings returns the current contents of the Out and ErrOut buffers.
func (b *Buffers) Strings() (out, errOut string) {
	return b.OutBuf.String(), b.ErrBuf.String()
}

// Reset clears both buffers.
func (b *Buffers) Reset() {
	b.OutBuf.Reset()
	b.ErrBuf.Reset()
}

// slogWriter adapts an slog.Logger to io.Writer, logging each Write as one
// record with the trailing newline trimmed.
type slogWriter struct {
	l     *slog.Logger
	level slog.Level
}

func (w slogWriter) Write(p []byte) (int, error) {
	n := len(p)
	msg := p
	if n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.l.Log(context.Background(), w.level, string(msg))
	return n, nil
}

// Slog returns Streams that write locator messages to an slog.Logger:
// notifications at the info level, warnings at the err level.
func Slog(l *slog.Logger, info, err slog.Level) Streams {
	return basic{
		out:    slogWriter{l: l, level: info},
		errOut: slogWriter{l: l, level: err},
	}
}
