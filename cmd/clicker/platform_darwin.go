//go:build darwin

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/LuggaPugga/autoclicker/internal/adapters/macinput"
	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
)

func backendHelp() string {
	return "macOS: auto|darwin"
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "darwin":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (macOS supports auto|darwin)", value)
	}
}

func listInputDevices(_ string, w io.Writer) error {
	printDevice(w, "darwin-session", "Combined Session Keyboard and Pointer", false, true)
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied sending input. Allow the clicker under System Settings > Privacy & Security > Accessibility."
}

func openBackend(_ string, logger *slog.Logger) (*backend, error) {
	b := &backend{name: "darwin", injector: macinput.NewInjector()}
	source, err := macinput.NewSource()
	if err != nil {
		logger.Warn("Global hotkeys unavailable", "err", err)
		b.unavailable(err, autoclicker.HotkeysUnavailable(
			"The clicker cannot read the keyboard.",
			"",
			"Allow it under System Settings > Privacy & Security > Input Monitoring,",
			"then restart the clicker.",
		))
		return b, nil
	}
	b.source = source
	return b, nil
}
