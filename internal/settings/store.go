package settings

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
)

const (
	appDirName   = "autoclicker"
	fileName     = "settings.yaml"
	maxFileBytes = 64 * 1024

	maxRenameRetry   = 3
	renameRetryDelay = 20 * time.Millisecond
)

var ErrPathRequired = errors.New("settings path is required")

// file is the on-disk layout. Missing keys keep their defaults.
type file struct {
	HotkeyLeft   string   `yaml:"hotkey_left"`
	HotkeyRight  string   `yaml:"hotkey_right"`
	ClickSpeedMS *float64 `yaml:"click_speed_ms,omitempty"`
	HoldMode     bool     `yaml:"hold_mode"`
	Randomize    bool     `yaml:"randomize"`
	Theme        string   `yaml:"theme,omitempty"`
}

func fromSnapshot(s autoclicker.SettingsSnapshot) file {
	speed := s.ClickSpeedMS
	return file{
		HotkeyLeft:   s.HotkeyLeft,
		HotkeyRight:  s.HotkeyRight,
		ClickSpeedMS: &speed,
		HoldMode:     s.HoldMode,
		Randomize:    s.Randomize,
		Theme:        string(s.Theme),
	}
}

func (f file) snapshot() autoclicker.SettingsSnapshot {
	out := autoclicker.DefaultSettings()
	out.HotkeyLeft = strings.TrimSpace(f.HotkeyLeft)
	out.HotkeyRight = strings.TrimSpace(f.HotkeyRight)
	out.HoldMode = f.HoldMode
	out.Randomize = f.Randomize
	if f.ClickSpeedMS != nil {
		out.ClickSpeedMS = *f.ClickSpeedMS
	}
	out.Theme = autoclicker.Theme(strings.ToLower(strings.TrimSpace(f.Theme)))
	if out.Theme != "" && autoclicker.ParseTheme(string(out.Theme)) != out.Theme {
		slog.Warn("[WARN-SETTINGS] unknown theme, using system", "theme", f.Theme)
	}
	if f.ClickSpeedMS != nil && out.Normalize().ClickSpeedMS != out.ClickSpeedMS {
		slog.Warn("[WARN-SETTINGS] invalid click_speed_ms, using default", "value", *f.ClickSpeedMS)
	}
	return out.Normalize()
}

// DefaultPath resolves <user config dir>/autoclicker/settings.yaml, falling
// back to the temp dir when no config dir is known.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		slog.Warn("[WARN-SETTINGS] using temp dir as settings path fallback", "error", err)
		base = os.TempDir()
	}
	return filepath.Join(base, appDirName, fileName)
}

// Store reads and writes the settings file. Saves are serialized.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrPathRequired
	}
	return &Store{path: filepath.Clean(path)}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load returns defaults when the file does not exist or cannot be parsed.
// Only unexpected read failures are returned as errors.
func (s *Store) Load() (autoclicker.SettingsSnapshot, error) {
	raw, err := readLimitedFile(s.path, maxFileBytes)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return autoclicker.DefaultSettings(), nil
		}
		return autoclicker.DefaultSettings(), fmt.Errorf("load settings: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		slog.Warn("[WARN-SETTINGS] failed to parse settings, using defaults", "path", s.path, "error", err)
		return autoclicker.DefaultSettings(), nil
	}
	return f.snapshot(), nil
}

func (s *Store) Save(snap autoclicker.SettingsSnapshot) error {
	raw, err := yaml.Marshal(fromSnapshot(snap.Normalize()))
	if err != nil {
		return fmt.Errorf("save settings: marshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := atomicWrite(s.path, raw); err != nil {
		return err
	}
	slog.Debug("[DEBUG-SETTINGS] settings saved", "path", s.path)
	return nil
}

func atomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("save settings: mkdir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".settings.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("save settings: create temp: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			if closeErr := tmpFile.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
				slog.Warn("[WARN-SETTINGS] failed to close temp file", "path", tmpPath, "error", closeErr)
			}
		}
		if err != nil {
			if removeErr := os.Remove(tmpPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
				slog.Warn("[WARN-SETTINGS] failed to remove temp file", "path", tmpPath, "error", removeErr)
			}
		}
	}()

	if err = tmpFile.Chmod(0o600); err != nil {
		return fmt.Errorf("save settings: chmod temp: %w", err)
	}
	if _, err = tmpFile.Write(data); err != nil {
		return fmt.Errorf("save settings: write: %w", err)
	}
	if err = tmpFile.Sync(); err != nil {
		return fmt.Errorf("save settings: sync: %w", err)
	}
	err = tmpFile.Close()
	tmpFile = nil
	if err != nil {
		return fmt.Errorf("save settings: close: %w", err)
	}

	if err = renameWithRetry(tmpPath, path); err != nil {
		return fmt.Errorf("save settings: rename: %w", err)
	}
	return nil
}

func readLimitedFile(path string, maxBytes int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > maxBytes {
		return nil, fmt.Errorf("settings file exceeds %d bytes", maxBytes)
	}
	return raw, nil
}

// renameWithRetry tolerates transient locks held by scanners on Windows.
func renameWithRetry(from, to string) error {
	var lastErr error
	for attempt := 0; attempt < maxRenameRetry; attempt++ {
		err := os.Rename(from, to)
		if err == nil {
			return nil
		}
		lastErr = err
		if runtime.GOOS != "windows" {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * renameRetryDelay)
	}
	return lastErr
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("settings dir: %w", err)
	}
	return nil
}
