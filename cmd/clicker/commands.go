package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

const maxSuggestions = 3

func newDevicesCmd(opts *options, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the input devices the backend can read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := listInputDevices(opts.backend, stdout); err != nil {
				if isPermissionError(err) {
					return fmt.Errorf("%w\n%s", err, permissionDeniedHint())
				}
				return err
			}
			return nil
		},
	}
}

func printDevice(w io.Writer, path, name string, virtual, pointer bool) {
	virtualTag := "physical"
	if virtual {
		virtualTag = "virtual"
	}
	pointerTag := "non-pointer"
	if pointer {
		pointerTag = "pointer"
	}
	fmt.Fprintf(w, "%s: %s [%s, %s]\n", path, name, virtualTag, pointerTag)
}

func newCheckCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check <hotkey>",
		Short: "Show how a hotkey string is resolved",
		Long: `Resolve a hotkey string the same way the listener does and print its
canonical form. Unknown tokens are listed with the closest known names.

Examples:
  clicker check F6
  clicker check "ctrl+shift+a"
  clicker check MouseButton4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkHotkey(stdout, args[0])
		},
	}
}

func checkHotkey(w io.Writer, raw string) error {
	spec, ok := hotkey.Parse(raw)
	for _, token := range hotkey.UnknownTokens(raw) {
		line := fmt.Sprintf("unknown token %q (ignored)", token)
		if suggestions := hotkey.Suggest(token, maxSuggestions); len(suggestions) > 0 {
			line += "; did you mean " + strings.Join(suggestions, ", ") + "?"
		}
		fmt.Fprintln(w, line)
	}
	if !ok {
		return fmt.Errorf("%q does not resolve to a key or button", raw)
	}
	fmt.Fprintln(w, hotkey.Format(spec))
	return nil
}

func newRecordCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	var side string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a hotkey by pressing it",
		Long: `Wait for a key combination, print it and optionally save it as the
hotkey for one side. Press Escape alone to cancel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, save, err := parseSide(side)
			if err != nil {
				return err
			}
			return recordHotkey(*opts, target, save, timeout, stdout, stderr)
		},
	}
	cmd.Flags().StringVar(&side, "side", "", "Save the result as the left or right hotkey")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Give up after this long")
	return cmd
}

func parseSide(value string) (autoclicker.Side, bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return autoclicker.SideLeft, false, nil
	case "left":
		return autoclicker.SideLeft, true, nil
	case "right":
		return autoclicker.SideRight, true, nil
	default:
		return autoclicker.SideLeft, false, fmt.Errorf("invalid --side %q (expected left|right)", value)
	}
}

func recordHotkey(opts options, side autoclicker.Side, save bool, timeout time.Duration, stdout, stderr io.Writer) error {
	logger := newSlogLogger(opts.logLevel, stderr, nil)
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	snap, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load settings; using defaults", "err", err)
	}

	b, err := openBackend(opts.backend, logger)
	if err != nil {
		return err
	}
	service, err := autoclicker.NewService(opts.config(snap), b.source, b.injector, store, logger)
	if err != nil {
		closeBackend(b, logger)
		return err
	}
	defer service.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	fmt.Fprintln(stderr, recordPrompt)
	value, err := service.RecordHotkey(ctx)
	switch {
	case errors.Is(err, autoclicker.ErrHotkeysUnavailable):
		if !b.advisory.Empty() {
			return fmt.Errorf("%w\n%s", err, b.advisory.DetailText())
		}
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("no hotkey pressed within %s", timeout)
	case err != nil:
		return err
	}

	fmt.Fprintln(stdout, value)
	if save {
		service.SetHotkey(side, value)
		fmt.Fprintf(stderr, "Saved as %s hotkey in %s\n", side, store.Path())
	}
	return nil
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, "clicker", version)
			return nil
		},
	}
}
