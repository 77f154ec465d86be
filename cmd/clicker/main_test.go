package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: " INFO ", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseLogLevel("loud")
	assert.Error(t, err)
}

func TestLineSinkWriterSplitsLines(t *testing.T) {
	var lines []string
	w := &lineSinkWriter{sink: func(line string) { lines = append(lines, line) }}

	n, err := w.Write([]byte("first\nsec"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	_, _ = w.Write([]byte("ond\n\n  \nthird"))

	assert.Equal(t, []string{"first", "second"}, lines)
}

func TestNewSlogLoggerWritesToOutput(t *testing.T) {
	var out bytes.Buffer
	var sunk []string
	logger := newSlogLogger(slog.LevelInfo, &out, func(line string) { sunk = append(sunk, line) })

	logger.Debug("hidden")
	logger.Info("Backend", "name", "x11")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "name=x11")
	require.Len(t, sunk, 1)
	assert.Contains(t, sunk[0], "msg=Backend")
}

func TestOptionsValidate(t *testing.T) {
	opts := options{backend: "auto", logLevelRaw: "debug", ui: true, cli: true, pollInterval: 2 * time.Millisecond}
	require.NoError(t, opts.validate())
	assert.False(t, opts.ui)
	assert.Equal(t, slog.LevelDebug, opts.logLevel)

	cfg := opts.config(autoclicker.DefaultSettings())
	assert.Equal(t, 2*time.Millisecond, cfg.Timing.ListenerPoll)

	bad := options{backend: "auto", logLevelRaw: "info", pollInterval: -time.Millisecond}
	assert.Error(t, bad.validate())

	bad = options{backend: "carrier-pigeon", logLevelRaw: "info"}
	assert.Error(t, bad.validate())
}

func TestCheckCommandPrintsCanonicalForm(t *testing.T) {
	code, stdout, _ := runCLI(t, "check", "ctrl+shift+a")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Ctrl+Shift+A\n", stdout)

	code, stdout, _ = runCLI(t, "check", "mouse5")
	assert.Equal(t, 0, code)
	assert.NotEmpty(t, stdout)
}

func TestCheckCommandReportsUnknownTokens(t *testing.T) {
	code, stdout, _ := runCLI(t, "check", "Ctrl+Bogus+A")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `unknown token "BOGUS" (ignored)`)
	assert.Contains(t, stdout, "Ctrl+A")

	code, stdout, stderr := runCLI(t, "check", "Ctrl+Bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, `unknown token "BOGUS"`)
	assert.Contains(t, stderr, "does not resolve")
}

func TestCheckCommandRequiresOneArgument(t *testing.T) {
	code, _, _ := runCLI(t, "check")
	assert.Equal(t, 1, code)
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, fmt.Sprintf("clicker %s\n", version), stdout)
}

func TestInvalidLogLevelFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "--log-level", "loud", "version")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid --log-level")
}

func TestParseSide(t *testing.T) {
	side, save, err := parseSide("")
	require.NoError(t, err)
	assert.False(t, save)
	assert.Equal(t, autoclicker.SideLeft, side)

	side, save, err = parseSide("Right")
	require.NoError(t, err)
	assert.True(t, save)
	assert.Equal(t, autoclicker.SideRight, side)

	_, _, err = parseSide("middle")
	assert.Error(t, err)
}

func TestPrintDevice(t *testing.T) {
	var out bytes.Buffer
	printDevice(&out, "/dev/input/event3", "Gaming Mouse", false, true)
	printDevice(&out, "/dev/input/event9", "autoclicker-virtual-mouse", true, true)
	assert.Equal(t,
		"/dev/input/event3: Gaming Mouse [physical, pointer]\n"+
			"/dev/input/event9: autoclicker-virtual-mouse [virtual, pointer]\n",
		out.String())
}

func TestHotkeyButtonText(t *testing.T) {
	assert.Equal(t, "Not set", hotkeyButtonText("  "))
	assert.Equal(t, "Ctrl+A", hotkeyButtonText("control+a"))
	assert.Equal(t, "Bogus (invalid)", hotkeyButtonText("Bogus"))
}

func TestUIHelpers(t *testing.T) {
	assert.Equal(t, "Start", runButtonText(false))
	assert.Equal(t, "Stop", runButtonText(true))
	assert.Equal(t, "● active", activityText(true))
	assert.Equal(t, autoclicker.UnitMS, unitFromLabel(unitLabel(autoclicker.UnitMS)))
	assert.Equal(t, autoclicker.UnitCPS, unitFromLabel(unitLabel(autoclicker.UnitCPS)))
}

func TestDescribeStartError(t *testing.T) {
	perm := fmt.Errorf("open /dev/uinput: %w", os.ErrPermission)
	assert.Equal(t, permissionDeniedHint(), describeStartError(perm))
	assert.Equal(t, "boom", describeStartError(fmt.Errorf("boom")))
}
