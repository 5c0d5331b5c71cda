// Package stream delivers command output to the UI one line at a time.
package stream

import (
	"bytes"
	"io"
	"sync"
)

const defaultCapacity = 256

// LineWriter is an io.Writer that emits each complete line on a channel.
// Partial lines are held until their newline arrives or the writer closes.
// Sends never block: when the reader falls behind, lines are counted as
// dropped instead. Safe for concurrent writes.
type LineWriter struct {
	mu      sync.Mutex
	ch      chan string
	pending []byte
	dropped int
	closed  bool
}

// NewLineWriter returns a writer and the channel its lines arrive on.
// The channel is closed by Close.
func NewLineWriter(capacity int) (*LineWriter, <-chan string) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	ch := make(chan string, capacity)
	return &LineWriter{ch: ch}, ch
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}

	w.pending = append(w.pending, p...)
	for {
		idx := bytes.IndexByte(w.pending, '\n')
		if idx < 0 {
			break
		}
		w.emit(w.pending[:idx])
		w.pending = w.pending[idx+1:]
	}

	return len(p), nil
}

func (w *LineWriter) emit(line []byte) {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	select {
	case w.ch <- string(line):
	default:
		w.dropped++
	}
}

// Close flushes a trailing partial line and closes the channel.
// Closing twice is a no-op.
func (w *LineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if len(w.pending) > 0 {
		w.emit(w.pending)
		w.pending = nil
	}

	close(w.ch)
	return nil
}

// Dropped returns how many lines were discarded because the channel was full.
func (w *LineWriter) Dropped() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped
}

// Tee duplicates writes to a live stream and a capture buffer.
// Either side may be nil.
func Tee(live, capture io.Writer) io.Writer {
	switch {
	case live == nil:
		return capture
	case capture == nil:
		return live
	default:
		return io.MultiWriter(live, capture)
	}
}
