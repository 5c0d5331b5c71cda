package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"pullrefresh/internal/config"
	"pullrefresh/internal/source"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func numbered(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "line %02d\n", i)
	}
	return b.String()
}

// newTestModel returns a 40x14 model (38x10 body) that refreshes from runner.
func newTestModel(t *testing.T, runner *source.MockRunner, mutate ...func(*config.Config)) Model {
	t.Helper()
	cfg := config.Default("list")
	cfg.Refresh.OnStart = false
	for _, fn := range mutate {
		fn(cfg)
	}

	m, err := New(cfg, WithRunner(runner), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	m, _ = send(m, tea.WindowSizeMsg{Width: 40, Height: 14})
	t.Cleanup(m.Close)
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pump runs cmd and feeds the refresh and paging messages it produces back
// into the model. Frame, spinner and wheel ticks are dropped so the loop ends.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command loop did not finish")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case refreshRequestMsg, startRefreshMsg, lineMsg, streamDoneMsg, runDoneMsg, loadMoreMsg:
			var follow tea.Cmd
			m, follow = send(m, msg)
			queue = append(queue, follow)
		}
	}
	return m
}

// settle runs the spring to rest and processes anything it triggered.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; m.pane.Advance(); i++ {
		require.Less(t, i, 1000, "spring did not settle")
	}
	m.framing = false
	return pump(t, m, tea.Batch(m.queue.drain()...))
}

// refreshed returns a model that has completed one refresh.
func refreshed(t *testing.T, runner *source.MockRunner, mutate ...func(*config.Config)) Model {
	t.Helper()
	m := newTestModel(t, runner, mutate...)
	m, cmd := send(m, key("r"))
	m = pump(t, m, cmd)
	require.False(t, m.header.Loading(), "refresh should have finished")
	return settle(t, m)
}
