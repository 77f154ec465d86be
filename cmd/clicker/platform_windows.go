//go:build windows

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/LuggaPugga/autoclicker/internal/adapters/wininput"
	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
)

func backendHelp() string {
	return "Windows: auto|windows"
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "windows":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (windows supports auto|windows)", value)
	}
}

func listInputDevices(_ string, w io.Writer) error {
	devices, err := wininput.ListInputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		printDevice(w, dev.Path, dev.Name, dev.IsVirtual, dev.IsPointer)
	}
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied sending input. Clicks into elevated windows need the clicker to run as Administrator."
}

func openBackend(_ string, logger *slog.Logger) (*backend, error) {
	injector, err := wininput.NewInjector()
	if err != nil {
		return nil, backendError("windows", err)
	}
	source, err := wininput.NewSource()
	if err != nil {
		logger.Warn("Global hotkeys unavailable", "err", err)
		b := &backend{name: "windows", injector: injector}
		b.unavailable(err, autoclicker.HotkeysUnavailable(
			"GetAsyncKeyState is not available in this session.",
			"Run the clicker from an interactive desktop session.",
		))
		return b, nil
	}
	return &backend{name: "windows", source: source, injector: injector}, nil
}
