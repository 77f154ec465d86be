//go:build linux

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/LuggaPugga/autoclicker/internal/adapters/linuxinput"
	"github.com/LuggaPugga/autoclicker/internal/adapters/x11input"
	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
)

func backendHelp() string {
	return "Linux: auto|wayland|evdev|x11"
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "wayland", "x11", "evdev":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (linux supports auto|wayland|evdev|x11)", value)
	}
}

func listInputDevices(backend string, w io.Writer) error {
	switch resolveLinuxBackend(backend) {
	case "x11":
		devices, err := x11input.ListInputDevices()
		if err != nil {
			return err
		}
		for _, dev := range devices {
			printDevice(w, dev.Path, dev.Name, dev.IsVirtual, dev.IsPointer)
		}
		return nil
	default:
		devices, err := linuxinput.ListInputDevices()
		if err != nil {
			return err
		}
		for _, dev := range devices {
			printDevice(w, dev.Path, dev.Name, dev.IsVirtual, dev.IsPointer)
		}
		return nil
	}
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend. On Wayland the clicker needs read access to /dev/input and write access to /dev/uinput. On X11 ensure an active X11 session and DISPLAY is set."
}

func linuxHotkeysAdvisory() autoclicker.Advisory {
	return autoclicker.HotkeysUnavailable(
		"Cannot access input devices. Run one of these commands:",
		"",
		"Option 1:",
		"  sudo setfacl -m u:$USER:r /dev/input/event*",
		"",
		"Option 2 (requires logout):",
		"  sudo usermod -aG input $USER",
		"",
		"Note: Option 2 grants access to ALL apps you run.",
	)
}

func openBackend(choice string, logger *slog.Logger) (*backend, error) {
	switch resolveLinuxBackend(choice) {
	case "x11":
		return openX11Backend(logger)
	default:
		return openWaylandBackend(logger)
	}
}

// openWaylandBackend clicks through uinput and reads hotkeys from evdev.
// Unreadable devices leave the clicker usable without hotkeys.
func openWaylandBackend(logger *slog.Logger) (*backend, error) {
	injector, err := linuxinput.NewInjector()
	if err != nil {
		return nil, backendError("wayland", err)
	}
	b := &backend{name: "wayland", injector: injector}

	source, err := linuxinput.NewSource(logger)
	if err != nil {
		logger.Warn("Global hotkeys unavailable", "err", err)
		b.unavailable(err, linuxHotkeysAdvisory())
		return b, nil
	}
	b.source = source
	return b, nil
}

func openX11Backend(logger *slog.Logger) (*backend, error) {
	session, err := x11input.NewSession(logger)
	if err != nil {
		return nil, backendError("x11", err)
	}
	return &backend{
		name:     "x11",
		source:   session.Source(),
		injector: session.Injector(),
	}, nil
}

func resolveLinuxBackend(configured string) string {
	choice := strings.ToLower(strings.TrimSpace(configured))
	if choice == "" {
		choice = "auto"
	}
	if choice == "evdev" {
		choice = "wayland"
	}
	if choice != "auto" {
		return choice
	}

	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	switch sessionType {
	case "wayland":
		return "wayland"
	case "x11":
		return "x11"
	}

	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return "wayland"
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return "x11"
	}
	return "wayland"
}
