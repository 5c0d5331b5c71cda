package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"pullrefresh/internal/config"
	"pullrefresh/internal/pathutil"
	"pullrefresh/internal/tui"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var stdout io.Writer = os.Stdout

type CLI struct {
	Config  string     `help:"Path to config file" default:"~/.config/pullrefresh/config.yaml" type:"path"`
	Run     RunCmd     `cmd:"" default:"withargs" help:"Show a command's output in a pull-to-refresh pane (default)"`
	Init    InitCmd    `cmd:"" help:"Create a config file interactively"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type RunCmd struct {
	Threshold float64  `help:"Rows to pull before release refreshes (overrides config)"`
	Trigger   string   `help:"Expression over pull, threshold, progress, dragging, viewport and content that arms a refresh"`
	PageSize  int      `help:"Lines shown per page before load-more (overrides config)"`
	NoFooter  bool     `help:"Disable load-more at the bottom of the pane"`
	Check     bool     `help:"Validate settings and print them without starting the TUI"`
	Command   []string `arg:"" optional:"" passthrough:"" help:"Command to run (overrides config)"`
}

func (c *RunCmd) Run(cli *CLI) error {
	cfg, err := c.buildConfig(cli.Config)
	if err != nil {
		return err
	}

	if c.Check {
		fmt.Fprintf(stdout, "command:   %s\n", cfg.Source.Command)
		fmt.Fprintf(stdout, "threshold: %g rows\n", cfg.Refresh.Threshold)
		if cfg.Refresh.Trigger != "" {
			fmt.Fprintf(stdout, "trigger:   %s\n", cfg.Refresh.Trigger)
		}
		fmt.Fprintf(stdout, "page size: %d\n", cfg.Source.PageSize)
		fmt.Fprintf(stdout, "footer:    %t\n", cfg.Footer.Enabled)
		return nil
	}

	model, err := tui.New(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// buildConfig loads the config file and applies flag overrides. A missing
// file is fine when the command comes from the arguments.
func (c *RunCmd) buildConfig(path string) (*config.Config, error) {
	command := strings.Join(c.Command, " ")

	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && command != "":
		cfg = config.Default("")
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("no config at %s: run 'pullrefresh init' or pass a command", path)
	default:
		return nil, fmt.Errorf("load config: %w", err)
	}

	if command != "" {
		cfg.Source.Command = command
	}
	if c.Threshold != 0 {
		cfg.Refresh.Threshold = c.Threshold
	}
	if c.Trigger != "" {
		cfg.Refresh.Trigger = c.Trigger
	}
	if c.PageSize != 0 {
		cfg.Source.PageSize = c.PageSize
	}
	if c.NoFooter {
		cfg.Footer.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return cfg, nil
}

type InitCmd struct {
	Force   bool   `help:"Overwrite an existing config file"`
	Command string `help:"Default command offered by the form"`

	Input io.Reader `kong:"-"`
}

func (c *InitCmd) Run(cli *CLI) error {
	if _, err := os.Stat(pathutil.Expand(cli.Config)); err == nil && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", cli.Config)
	}

	cfg := config.Default(c.Command)

	form := tui.NewConfigForm()
	if c.Input != nil {
		form = form.WithInput(c.Input)
	}
	if err := form.Collect(cfg); err != nil {
		return err
	}

	if err := cfg.Save(cli.Config); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s\n", cli.Config)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(cli *CLI) error {
	fmt.Fprintf(stdout, "pullrefresh %s (commit: %s, built: %s)\n", Version, Commit, Date)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("pullrefresh"),
		kong.Description("Watch a command's output and pull down to refresh it"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
