package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/fwojciec/pathfinder"
	"github.com/fwojciec/pathfinder/fs"
	"github.com/fwojciec/pathfinder/toml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	m.Color = isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
	m.Progress = isTerminal(os.Stderr)

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if pathfinder.ErrorCode(err) != pathfinder.EINVALID {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// Color enables colored output.
	Color bool

	// Progress enables the live progress line on stderr.
	Progress bool

	// Root resolution, replaceable for testing.
	DefaultRoots func() ([]string, error)
	DriveRoots   func() []string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath:   defaultConfigPath(),
		DefaultRoots: fs.DefaultRoots,
		DriveRoots:   fs.DriveRoots,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := toml.LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", pathfinder.ErrorMessage(err))
		fmt.Fprintf(stderr, "Hint: Set %s to use a different config file\n", toml.EnvConfigPath)
		return err
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pathfinder"),
		kong.Description(description),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		configVars(cfg),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no search term provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:          ctx,
		Stdout:       stdout,
		Stderr:       stderr,
		Config:       cfg,
		Logger:       newLogger(stderr, cli.Verbose),
		Color:        m.Color && !cli.NoColor,
		Progress:     m.Progress && !cli.JSON,
		DefaultRoots: m.DefaultRoots,
		DriveRoots:   m.DriveRoots,
	}
	return cli.Run(deps)
}

// configVars exposes config values as kong defaults so flags override
// the config file.
func configVars(cfg pathfinder.Config) kong.Vars {
	return kong.Vars{
		"limit":           strconv.Itoa(cfg.Limit),
		"max_depth":       strconv.Itoa(cfg.MaxDepth),
		"max_size_mb":     strconv.FormatInt(cfg.MaxContentSize>>20, 10),
		"workers":         strconv.Itoa(cfg.Concurrency),
		"follow_symlinks": strconv.FormatBool(cfg.FollowSymlinks),
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultConfigPath() string {
	path, err := toml.DefaultConfigPath()
	if err != nil {
		return "pathfinder.toml"
	}
	return path
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const description = `Search files by name and content across common folders such as
Desktop, Documents, Downloads, and Pictures.

Search terms:
  report        substring of the file name, or text inside the file
  "report"      exact file stem (report.pdf, report.txt)
  "report.pdf"  exact file name
  ".pdf"        exact extension
  ext:.jpg      extension filter
  type:image    extension group (image, video, audio, doc, code, archive,
                data, sheet, notebook, pdf)

Matching is case-insensitive.`
