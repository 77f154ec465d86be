package main

import (
	"fmt"
	"log/slog"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
	"github.com/LuggaPugga/autoclicker/internal/settings"
)

// backend is what a platform provides to the service. A nil source means
// hotkeys are unavailable and advisory explains why.
type backend struct {
	name     string
	source   autoclicker.InputSource
	injector autoclicker.Injector
	advisory autoclicker.Advisory
}

type session struct {
	service  *autoclicker.Service
	store    *settings.Store
	watcher  *settings.Watcher
	advisory autoclicker.Advisory
	logger   *slog.Logger
}

func openStore(opts options) (*settings.Store, error) {
	path := opts.settingsPath
	if path == "" {
		path = settings.DefaultPath()
	}
	return settings.NewStore(path)
}

// openSession loads settings, opens the platform backend and starts the
// service. The settings file is watched for external edits.
func openSession(opts options, logger *slog.Logger) (*session, error) {
	store, err := openStore(opts)
	if err != nil {
		return nil, err
	}
	snap, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load settings; using defaults", "path", store.Path(), "err", err)
	}

	b, err := openBackend(opts.backend, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Backend", "name", b.name)

	service, err := autoclicker.NewService(opts.config(snap), b.source, b.injector, store, logger)
	if err != nil {
		closeBackend(b, logger)
		return nil, err
	}
	service.Start()

	sess := &session{
		service:  service,
		store:    store,
		advisory: b.advisory,
		logger:   logger,
	}
	watcher, err := settings.Watch(store, 0, func(next autoclicker.SettingsSnapshot) {
		service.ApplySettings(next)
	})
	if err != nil {
		logger.Warn("Settings hot reload disabled", "err", err)
	} else {
		sess.watcher = watcher
	}

	logger.Info("Settings", "path", store.Path(), "hotkey_left", snap.HotkeyLeft, "hotkey_right", snap.HotkeyRight, "click_speed_ms", snap.ClickSpeedMS, "mode", snap.Mode())
	return sess, nil
}

func (s *session) Close() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.logger.Warn("Failed to stop settings watcher", "err", err)
		}
	}
	s.service.Stop()
}

func closeBackend(b *backend, logger *slog.Logger) {
	if b.source != nil {
		if err := b.source.Close(); err != nil {
			logger.Warn("Failed to close input source", "err", err)
		}
	}
	if err := b.injector.Close(); err != nil {
		logger.Warn("Failed to close injector", "err", err)
	}
}

// unavailable marks hotkeys as unavailable on b, keeping the reason for
// the service's poll errors.
func (b *backend) unavailable(reason error, advisory autoclicker.Advisory) {
	b.source = autoclicker.UnavailableSource{Reason: reason}
	b.advisory = advisory
}

func backendError(name string, err error) error {
	return fmt.Errorf("%s backend: %w", name, err)
}
