package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
	"github.com/LuggaPugga/autoclicker/internal/tui"
)

var version = "dev"

type options struct {
	backend      string
	settingsPath string
	logLevelRaw  string
	logLevel     slog.Level
	ui           bool
	cli          bool
	start        bool
	pollInterval time.Duration
}

type lineSinkWriter struct {
	sink  func(line string)
	mu    sync.Mutex
	lines bytes.Buffer
}

func (w *lineSinkWriter) Write(p []byte) (int, error) {
	if w.sink == nil {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	total := len(p)
	for len(p) > 0 {
		idx := bytes.IndexByte(p, '\n')
		if idx == -1 {
			_, _ = w.lines.Write(p)
			break
		}
		_, _ = w.lines.Write(p[:idx])
		line := strings.TrimSpace(w.lines.String())
		w.lines.Reset()
		if line != "" {
			w.sink(line)
		}
		p = p[idx+1:]
	}
	return total, nil
}

// newSlogLogger writes text records to out and, when set, forwards each line
// to sink. A nil out with a nil sink discards everything.
func newSlogLogger(level slog.Level, out io.Writer, sink func(line string)) *slog.Logger {
	writers := make([]io.Writer, 0, 2)
	if out != nil {
		writers = append(writers, out)
	}
	if sink != nil {
		writers = append(writers, &lineSinkWriter{sink: sink})
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func debugLogsEnabled() bool {
	return strings.TrimSpace(os.Getenv("DEBUG")) == "1"
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid --log-level %q (expected debug|info|warning|error)", value)
	}
}

func (o *options) validate() error {
	level, err := parseLogLevel(o.logLevelRaw)
	if err != nil {
		return err
	}
	o.logLevel = level

	backend, err := parseBackendChoice(o.backend)
	if err != nil {
		return err
	}
	o.backend = backend

	if o.pollInterval < 0 {
		return fmt.Errorf("--poll-interval must be >= 0")
	}
	if o.cli {
		o.ui = false
	}
	return nil
}

func (o options) config(snap autoclicker.SettingsSnapshot) autoclicker.Config {
	return autoclicker.Config{
		Settings:     snap,
		Timing:       autoclicker.Timing{ListenerPoll: o.pollInterval},
		StartRunning: o.start,
	}
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "clicker",
		Short: "Global hotkey autoclicker",
		Long: `An autoclicker driven by two global hotkeys, one for the left mouse button and
one for the right. Hotkeys are either toggles or held, and clicks repeat at a
configurable interval while the clicker is running.

Examples:
  clicker                        # desktop window
  clicker --cli                  # terminal UI
  clicker --cli --start          # start clicking as soon as a hotkey fires
  clicker check "Ctrl+Shift+A"   # validate a hotkey string`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ui {
				return runUI(*opts)
			}
			return runTerminal(*opts, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.backend, "backend", "auto", "Input backend. "+backendHelp())
	flags.StringVar(&opts.settingsPath, "settings", "", "Settings file (default: user config dir/autoclicker/settings.yaml)")
	flags.StringVar(&opts.logLevelRaw, "log-level", "info", "Log verbosity: debug, info, warning, error")

	root.Flags().BoolVar(&opts.ui, "ui", true, "Start the desktop window. Use --ui=false or --cli for terminal mode")
	root.Flags().BoolVar(&opts.cli, "cli", false, "Force terminal mode")
	root.Flags().BoolVar(&opts.start, "start", false, "Start in the running state")
	root.Flags().DurationVar(&opts.pollInterval, "poll-interval", 0, "Hotkey poll interval while running (default 5ms)")

	root.AddCommand(
		newDevicesCmd(opts, stdout),
		newCheckCmd(stdout),
		newRecordCmd(opts, stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}

// runTerminal drives the clicker from the terminal UI when stdout is a
// terminal, and headless until SIGINT otherwise.
func runTerminal(opts options, stderr io.Writer) error {
	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	out := stderr
	if interactive {
		out = nil
		if debugLogsEnabled() {
			f, err := os.OpenFile("clicker-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("open debug log: %w", err)
			}
			defer f.Close()
			out = f
		}
	}
	logger := newSlogLogger(opts.logLevel, out, nil)

	sess, err := openSession(opts, logger)
	if err != nil {
		if isPermissionError(err) {
			return fmt.Errorf("%w\n%s", err, permissionDeniedHint())
		}
		return err
	}
	defer sess.Close()

	if interactive {
		return tui.Run(sess.service, sess.advisory)
	}

	if !sess.advisory.Empty() {
		fmt.Fprintf(stderr, "%s\n%s\n", sess.advisory.Title, sess.advisory.DetailText())
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
