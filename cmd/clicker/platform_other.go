//go:build !linux && !windows && !darwin

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

func backendHelp() string {
	return "unsupported platform"
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" || backend == "auto" {
		return "auto", nil
	}
	return "", fmt.Errorf("invalid --backend %q (unsupported platform)", value)
}

func listInputDevices(_ string, _ io.Writer) error {
	return fmt.Errorf("input device listing is not supported on this platform")
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend."
}

func openBackend(_ string, _ *slog.Logger) (*backend, error) {
	return nil, fmt.Errorf("clicking is not supported on this platform")
}
