// Package feed joins a running command with its streamed output so the UI
// sees exactly one completion per refresh.
package feed

import (
	"pullrefresh/internal/source"
)

// CompleteMsg is emitted once both the command result and the end of its
// stream have arrived.
type CompleteMsg struct {
	Generation int
	Result     source.Result
	Streamed   []string
}

// Cycle tracks one in-flight run at a time. Starting a new run bumps the
// generation so messages from an abandoned run are ignored.
type Cycle struct {
	generation int
	active     bool
	streamed   []string

	pendingResult *source.Result
	streamDone    bool

	last *CompleteMsg
	runs int
}

func New() *Cycle {
	return &Cycle{}
}

// Start begins a new run and returns its generation.
func (c *Cycle) Start() int {
	c.generation++
	c.active = true
	c.streamed = nil
	c.pendingResult = nil
	c.streamDone = false
	return c.generation
}

func (c *Cycle) Active() bool       { return c.active }
func (c *Cycle) Generation() int    { return c.generation }
func (c *Cycle) Streamed() []string { return c.streamed }
func (c *Cycle) Last() *CompleteMsg { return c.last }
func (c *Cycle) Runs() int          { return c.runs }

func (c *Cycle) current(gen int) bool {
	return c.active && gen == c.generation
}

// AddLine records a streamed line for run gen.
func (c *Cycle) AddLine(gen int, line string) {
	if !c.current(gen) {
		return
	}
	c.streamed = append(c.streamed, line)
}

// StreamDone marks the stream of run gen as drained.
func (c *Cycle) StreamDone(gen int) *CompleteMsg {
	if !c.current(gen) {
		return nil
	}
	c.streamDone = true

	if c.pendingResult != nil {
		return c.complete(*c.pendingResult)
	}
	return nil
}

// RunDone records the command result of run gen.
func (c *Cycle) RunDone(gen int, result source.Result) *CompleteMsg {
	if !c.current(gen) {
		return nil
	}

	if !c.streamDone {
		c.pendingResult = &result
		return nil
	}

	return c.complete(result)
}

// Cancel abandons the current run. Late messages for it are dropped.
func (c *Cycle) Cancel() {
	c.active = false
	c.streamed = nil
	c.pendingResult = nil
	c.streamDone = false
}

func (c *Cycle) complete(result source.Result) *CompleteMsg {
	msg := &CompleteMsg{
		Generation: c.generation,
		Result:     result,
		Streamed:   c.streamed,
	}

	c.last = msg
	c.runs++
	c.Cancel()

	return msg
}
