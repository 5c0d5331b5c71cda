package source

import (
	"context"
	"io"
	"sync"
)

// MockRunner is a test double for Runner.
type MockRunner struct {
	// RunFunc is called when Run is invoked. A nil RunFunc writes Output.
	RunFunc func(ctx context.Context, out io.Writer, command string) error

	// Output is written verbatim when RunFunc is nil.
	Output string

	mu    sync.Mutex
	calls []string
}

// Run delegates to RunFunc and records the call.
func (m *MockRunner) Run(ctx context.Context, out io.Writer, command string) error {
	m.mu.Lock()
	m.calls = append(m.calls, command)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, out, command)
	}
	_, err := io.WriteString(out, m.Output)
	return err
}

// Calls returns the commands run so far.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
