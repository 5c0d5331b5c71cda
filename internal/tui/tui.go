package tui

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"pullrefresh/internal/config"
	"pullrefresh/internal/feed"
	"pullrefresh/internal/refresh"
	"pullrefresh/internal/scroll"
	"pullrefresh/internal/source"
	"pullrefresh/internal/stream"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"
)

const (
	frameInterval = 16 * time.Millisecond
	wheelSettle   = 150 * time.Millisecond
	loadMoreDelay = 250 * time.Millisecond

	wheelStep  = 1.0
	headerRows = 2
	footerRows = 1
	lineBuffer = 256

	defaultWidth  = 80
	defaultHeight = 24

	paneZone = "pane"
)

// Option configures a Model.
type Option func(*Model)

// WithRunner replaces the shell runner.
func WithRunner(r source.Runner) Option {
	return func(m *Model) {
		m.runner = r
	}
}

// WithClock replaces time.Now for status and animator timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

type Model struct {
	cfg    *config.Config
	runner source.Runner
	now    func() time.Time

	pane          *scroll.Container
	header        *refresh.Component
	headerTrigger *refresh.Header
	footer        *refresh.Component
	footerTrigger *refresh.Footer

	cycle *feed.Cycle
	pager *source.Pager
	queue *cmdQueue

	layout  Layout
	content viewport.Model
	zones   *zone.Manager

	lineCh <-chan string
	cancel context.CancelFunc
	notice string

	framing  bool
	wheelSeq int
	pressed  bool
	pressY   int

	debugFile *os.File
}

// New builds the pane, mounts the header and footer controls and wires
// their handlers to the command runner.
func New(cfg *config.Config, opts ...Option) (Model, error) {
	trigger, err := cfg.TriggerRule()
	if err != nil {
		return Model{}, fmt.Errorf("compile trigger: %w", err)
	}

	m := Model{
		cfg:    cfg,
		runner: source.DefaultRunner(),
		now:    time.Now,
		cycle:  feed.New(),
		pager:  source.NewPager(cfg.Source.PageSize),
		queue:  &cmdQueue{},
		layout: NewLayout(defaultWidth, defaultHeight),
		zones:  zone.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.pane = scroll.New(m.layout.BodyWidth, m.layout.BodyHeight)
	m.content = viewport.New(m.layout.BodyWidth, m.layout.BodyHeight)

	q := m.queue

	m.headerTrigger = refresh.NewHeader(cfg.Refresh.Threshold,
		refresh.WithRule(trigger),
		refresh.WithHeaderClock(m.now),
	)
	var header *refresh.Component
	header = refresh.New(func() {
		q.push(func() tea.Msg { return startRefreshMsg{} }, header.Tick())
	}, m.headerTrigger,
		refresh.WithAnimator(headerAnimator(cfg.Animator, m.now)),
		refresh.WithHeight(headerRows),
		refresh.WithWidth(m.layout.BodyWidth),
	)
	m.header = header

	m.footerTrigger = refresh.NewFooter(cfg.Footer.Distance).PauseWhile(header)
	var footer *refresh.Component
	footer = refresh.New(func() {
		q.push(tea.Tick(loadMoreDelay, func(time.Time) tea.Msg { return loadMoreMsg{} }), footer.Tick())
	}, m.footerTrigger,
		refresh.WithAnimator(footerAnimator(cfg.Animator, m.now)),
		refresh.WithHeight(footerRows),
		refresh.WithWidth(m.layout.BodyWidth),
	)
	m.footer = footer

	m.pane.Mount(m.header)
	if cfg.Footer.Enabled {
		m.pane.Mount(m.footer)
	}

	if debugPath := os.Getenv("PULLREFRESH_DEBUG"); debugPath != "" {
		if f, err := os.OpenFile(debugPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644); err == nil {
			m.debugFile = f
		}
	}

	return m, nil
}

func (m Model) debugLog(format string, args ...any) {
	if m.debugFile != nil {
		fmt.Fprintf(m.debugFile, format+"\n", args...)
	}
}

// Close stops any running command, detaches the controls and closes the
// debug log.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.pane.Close()
	m.zones.Close()
	if m.debugFile != nil {
		m.debugFile.Close()
		m.debugFile = nil
	}
}

func (m Model) Init() tea.Cmd {
	if !m.cfg.Refresh.OnStart {
		return nil
	}

	return func() tea.Msg {
		return refreshRequestMsg{}
	}
}

type refreshRequestMsg struct{}

type startRefreshMsg struct{}

type lineMsg struct {
	gen  int
	line string
}

type streamDoneMsg struct {
	gen int
}

type runDoneMsg struct {
	gen    int
	result source.Result
}

type loadMoreMsg struct{}

type frameMsg struct{}

type wheelSettleMsg struct {
	seq int
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.debugLog("msg: %T offset=%.2f", msg, m.pane.Offset().Y)

	next, cmd := m.update(msg)

	cmds := append([]tea.Cmd{cmd}, next.queue.drain()...)
	cmds = append(cmds, next.startFrames())
	return next, tea.Batch(cmds...)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case refreshRequestMsg:
		m.header.SetLoading(true)
		return m, nil

	case startRefreshMsg:
		return m.startRefresh()

	case lineMsg:
		m.cycle.AddLine(msg.gen, msg.line)
		if msg.gen != m.cycle.Generation() {
			return m, nil
		}
		return m, listenForLines(m.lineCh, msg.gen)

	case streamDoneMsg:
		if done := m.cycle.StreamDone(msg.gen); done != nil {
			return m.finishRefresh(*done), nil
		}
		return m, nil

	case runDoneMsg:
		if done := m.cycle.RunDone(msg.gen, msg.result); done != nil {
			return m.finishRefresh(*done), nil
		}
		return m, nil

	case loadMoreMsg:
		m.loadMore()
		return m, nil

	case frameMsg:
		m.framing = false
		m.pane.Advance()
		return m, nil

	case wheelSettleMsg:
		if msg.seq == m.wheelSeq && !m.pressed {
			m.pane.EndDrag()
		}
		return m, nil

	case spinner.TickMsg:
		return m, tea.Batch(m.header.Update(msg), m.footer.Update(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	page := max(float64(m.layout.BodyHeight-1), 1)

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.pane.ScrollBy(1)
	case "k", "up":
		m.pane.ScrollBy(-1)
	case "pgdown", " ":
		m.pane.ScrollBy(page)
	case "pgup":
		m.pane.ScrollBy(-page)
	case "g", "home":
		m.pane.ScrollTo(m.pane.MinOffset(), false)
	case "G", "end":
		m.pane.ScrollTo(m.pane.MaxOffset(), false)
	case "r":
		m.header.SetLoading(true)
	case "esc":
		m.cancelRefresh()
	case "d":
		enabled := !m.header.Enabled()
		m.header.SetEnabled(enabled)
		m.footer.SetEnabled(enabled)
	}
	return m, nil
}

// handleMouse turns wheel bursts and left-button drags into drag gestures.
// A wheel burst has no release event, so it ends after a quiet period.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if m.pressed {
			return m
		}
		delta := wheelStep
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -wheelStep
		}
		if !m.pane.Dragging() {
			m.pane.BeginDrag()
		}
		m.pane.Drag(delta)
		m.wheelSeq++
		seq := m.wheelSeq
		m.queue.push(tea.Tick(wheelSettle, func(time.Time) tea.Msg {
			return wheelSettleMsg{seq: seq}
		}))

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !m.inPane(msg) {
			return m
		}
		m.pressed = true
		m.pressY = msg.Y
		m.pane.BeginDrag()

	case msg.Action == tea.MouseActionMotion && m.pressed:
		m.pane.Drag(float64(m.pressY - msg.Y))
		m.pressY = msg.Y

	case msg.Action == tea.MouseActionRelease && m.pressed:
		m.pressed = false
		m.pane.EndDrag()
	}
	return m
}

// inPane reports whether msg falls inside the pane. Before the first
// render there are no bounds yet and every position counts.
func (m Model) inPane(msg tea.MouseMsg) bool {
	z := m.zones.Get(paneZone)
	return z.IsZero() || z.InBounds(msg)
}

func (m *Model) resize(width, height int) {
	m.layout = NewLayout(width, height)
	m.pane.SetViewport(m.layout.BodyWidth, m.layout.BodyHeight)
	m.header.SetWidth(m.layout.BodyWidth)
	m.footer.SetWidth(m.layout.BodyWidth)
	m.content.Width = m.layout.BodyWidth
}

// startFrames arms the frame loop while the pane is springing.
func (m *Model) startFrames() tea.Cmd {
	if m.framing || !m.pane.Animating() {
		return nil
	}
	m.framing = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m Model) startRefresh() (Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}

	gen := m.cycle.Start()
	ctx, cancel := context.WithCancel(context.Background())
	w, ch := stream.NewLineWriter(lineBuffer)

	m.cancel = cancel
	m.lineCh = ch
	m.notice = ""

	m.debugLog("refresh %d: %s", gen, m.cfg.Source.Command)

	return m, tea.Batch(
		runRefresh(ctx, m.runner, m.cfg.Source.Command, gen, w),
		listenForLines(ch, gen),
	)
}

func (m Model) finishRefresh(done feed.CompleteMsg) Model {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	res := done.Result
	m.debugLog("refresh %d done: %d lines, err=%v, %s", done.Generation, len(res.Lines), res.Err, res.Duration)

	// A failed run with no output keeps the previous content on screen.
	if res.Err == nil || len(res.Lines) > 0 {
		m.pane.SetContent(m.pager.Reset(res.Lines))
		if m.pager.HasMore() {
			m.footerTrigger.ResetNoMoreData(m.footer)
		} else {
			m.footerTrigger.NoticeNoMoreData(m.footer)
		}
	}

	m.header.SetLoading(false)
	return m
}

func (m *Model) cancelRefresh() {
	if !m.header.Loading() {
		return
	}
	m.cycle.Cancel()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.notice = "refresh cancelled"
	m.header.SetLoading(false)
}

func (m *Model) loadMore() {
	if !m.footer.Loading() {
		return
	}
	if visible, added := m.pager.Next(); added {
		m.pane.SetContent(visible)
	}
	m.footer.SetLoading(false)
	if !m.pager.HasMore() {
		m.footerTrigger.NoticeNoMoreData(m.footer)
	}
}

func runRefresh(ctx context.Context, r source.Runner, command string, gen int, w *stream.LineWriter) tea.Cmd {
	return func() tea.Msg {
		res := source.Fetch(ctx, r, command, w)
		w.Close()
		return runDoneMsg{gen: gen, result: res}
	}
}

func listenForLines(ch <-chan string, gen int) tea.Cmd {
	if ch == nil {
		return nil
	}

	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return streamDoneMsg{gen: gen}
		}
		return lineMsg{gen: gen, line: line}
	}
}

func (m Model) View() string {
	border := BorderColor
	switch {
	case !m.header.Enabled():
		border = DisabledBorderColor
	case m.header.Loading() || m.footer.Loading():
		border = RefreshBorderColor
	}

	panel := m.zones.Mark(paneZone, RenderPanel(Panel{
		Title:       m.title(),
		Content:     m.renderBody(),
		Width:       m.layout.PanelWidth(),
		Height:      m.layout.PanelHeight(),
		BorderColor: border,
	}))

	return m.zones.Scan(panel + "\n" + m.renderStatus() + "\n" + m.renderHelp())
}

func (m Model) title() string {
	title := m.cfg.Source.Command
	total := len(m.pane.Lines())
	if total > m.layout.BodyHeight {
		end := max(m.pane.MaxOffset()-m.pane.Insets().Bottom, 1)
		pct := int(math.Round(100 * min(max(m.pane.Offset().Y, 0), end) / end))
		title = fmt.Sprintf("%s (%d%%)", title, pct)
	}
	return title
}

// renderBody stacks the exposed header rows, the visible content and the
// exposed footer rows into exactly BodyHeight rows.
func (m Model) renderBody() string {
	height := m.layout.BodyHeight
	width := m.layout.BodyWidth

	top, bottom := m.pane.Overscroll()
	top = min(top, height)
	bottom = min(bottom, height-top)
	rows := height - top - bottom

	var parts []string
	if top > 0 {
		parts = append(parts, edgeRows(m.header.View(), top, true))
	}

	if rows > 0 {
		lines := m.pane.Lines()
		if len(lines) == 0 {
			parts = append(parts, lipgloss.Place(width, rows, lipgloss.Center, lipgloss.Center, m.emptyMessage()))
		} else {
			vp := m.content
			vp.Width = width
			vp.Height = rows
			vp.SetContent(strings.Join(truncateLines(lines, width), "\n"))
			vp.SetYOffset(m.pane.FirstLine())
			parts = append(parts, vp.View())
		}
	}

	if bottom > 0 {
		parts = append(parts, edgeRows(m.footer.View(), bottom, false))
	}

	return strings.Join(parts, "\n")
}

func (m Model) emptyMessage() string {
	if m.header.Loading() {
		return emptyStyle.Render("waiting for output...")
	}
	if m.cycle.Last() != nil {
		return emptyStyle.Render("no output")
	}
	return emptyStyle.Render("pull down or press r to refresh")
}

// edgeRows fits a control's view into n rows. Header rows hug the content
// from above, so they keep the view's last lines; footer rows keep the first.
func edgeRows(view string, n int, fromBottom bool) string {
	lines := strings.Split(view, "\n")
	if view == "" {
		lines = nil
	}

	if len(lines) >= n {
		if fromBottom {
			lines = lines[len(lines)-n:]
		} else {
			lines = lines[:n]
		}
		return strings.Join(lines, "\n")
	}

	pad := make([]string, n-len(lines))
	if fromBottom {
		lines = append(pad, lines...)
	} else {
		lines = append(lines, pad...)
	}
	return strings.Join(lines, "\n")
}

func truncateLines(lines []string, width int) []string {
	out := make([]string, len(lines))
	truncate := lipgloss.NewStyle().MaxWidth(width)
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			line = truncate.Render(line)
		}
		out[i] = line
	}
	return out
}

func (m Model) renderStatus() string {
	if m.header.Loading() {
		return statusStyle.Render(fmt.Sprintf("refreshing • %d lines received", len(m.cycle.Streamed())))
	}
	if m.notice != "" {
		return noticeStyle.Render(m.notice)
	}

	last := m.cycle.Last()
	if last == nil {
		return statusStyle.Render("not refreshed yet")
	}

	ago := humanize.RelTime(m.headerTrigger.LastRefresh(), m.now(), "ago", "from now")
	res := last.Result
	if res.Err != nil {
		return failedStyle.Render("✗ "+res.Err.Error()) + statusStyle.Render(" • updated "+ago)
	}

	shown := len(m.pager.Visible())
	detail := fmt.Sprintf(" %d lines", shown)
	if total := m.pager.Total(); total > shown {
		detail = fmt.Sprintf(" %d of %d lines", shown, total)
	}
	return okStyle.Render("✓") + statusStyle.Render(fmt.Sprintf("%s • took %s • updated %s",
		detail, res.Duration.Round(time.Millisecond), ago))
}

func (m Model) renderHelp() string {
	toggle := "d disable"
	if !m.header.Enabled() {
		toggle = "d enable"
	}
	if m.header.Loading() {
		return helpStyle.Render("q quit • esc cancel • ↑↓/j/k scroll")
	}
	return helpStyle.Render("q quit • r refresh • pull down to refresh • ↑↓/j/k scroll • g/G top/bottom • " + toggle)
}

// cmdQueue collects commands raised by control handlers, which run inside
// Update but cannot return commands themselves.
type cmdQueue struct {
	cmds []tea.Cmd
}

func (q *cmdQueue) push(cmds ...tea.Cmd) {
	q.cmds = append(q.cmds, cmds...)
}

func (q *cmdQueue) drain() []tea.Cmd {
	cmds := q.cmds
	q.cmds = nil
	return cmds
}
