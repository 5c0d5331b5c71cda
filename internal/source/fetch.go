package source

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"pullrefresh/internal/stream"
)

// Result is the outcome of one command run.
type Result struct {
	Lines    []string
	Err      error
	Duration time.Duration
}

// Fetch runs command once. Output is mirrored to live as it arrives and
// captured into the result. live may be nil.
func Fetch(ctx context.Context, r Runner, command string, live io.Writer) Result {
	var captured bytes.Buffer
	start := time.Now()

	err := r.Run(ctx, stream.Tee(live, &captured), command)

	return Result{
		Lines:    SplitLines(captured.String()),
		Err:      err,
		Duration: time.Since(start),
	}
}

// SplitLines splits output into lines, dropping the trailing newline and
// carriage returns. Empty output yields no lines.
func SplitLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
