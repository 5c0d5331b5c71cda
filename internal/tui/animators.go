package tui

import (
	"time"

	"pullrefresh/internal/config"
	"pullrefresh/internal/refresh"

	"github.com/charmbracelet/bubbles/spinner"
)

var spinners = map[string]spinner.Spinner{
	"dot":      spinner.Dot,
	"line":     spinner.Line,
	"minidot":  spinner.MiniDot,
	"jump":     spinner.Jump,
	"pulse":    spinner.Pulse,
	"points":   spinner.Points,
	"globe":    spinner.Globe,
	"moon":     spinner.Moon,
	"meter":    spinner.Meter,
	"ellipsis": spinner.Ellipsis,
}

func spinnerFor(name string) spinner.Spinner {
	if s, ok := spinners[name]; ok {
		return s
	}
	return spinner.Dot
}

func headerAnimator(cfg config.Animator, now func() time.Time) *refresh.TextAnimator {
	return refresh.NewTextAnimator(
		refresh.WithSpinner(spinnerFor(cfg.Spinner)),
		refresh.WithTitles(refresh.Titles(cfg.Titles)),
		refresh.WithLastUpdated(),
		refresh.WithClock(now),
	)
}

func footerAnimator(cfg config.Animator, now func() time.Time) *refresh.TextAnimator {
	return refresh.NewTextAnimator(
		refresh.WithSpinner(spinnerFor(cfg.Spinner)),
		refresh.WithTitles(refresh.Titles{
			Pulling: "Scroll for more",
			Loading: "Loading more...",
			NoMore:  cfg.Titles.NoMore,
		}),
		refresh.WithClock(now),
	)
}
