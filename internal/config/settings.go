package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const (
	languageKey     = "language"
	DefaultLanguage = "en"
)

// Settings is the user preference file: a flat JSON object rewritten on
// every change. A missing or unreadable file gives empty settings.
type Settings struct {
	path   string
	mu     sync.RWMutex
	values map[string]any
}

// LoadSettings reads path. It never fails.
func LoadSettings(path string) *Settings {
	s := &Settings{path: path}
	s.values = readSettings(path)
	return s
}

func readSettings(path string) map[string]any {
	values := map[string]any{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read settings, using defaults", "path", path, "error", err)
		}
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		slog.Warn("Settings file is not a JSON object, using defaults", "path", path, "error", err)
		return map[string]any{}
	}
	return values
}

func (s *Settings) Path() string {
	return s.path
}

func (s *Settings) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and rewrites the file.
func (s *Settings) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]any, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value

	if err := writeSettings(s.path, next); err != nil {
		return err
	}
	s.values = next
	return nil
}

func writeSettings(path string, values map[string]any) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// Language returns the configured UI language, "en" when unset.
func (s *Settings) Language() string {
	v, ok := s.Get(languageKey)
	if !ok {
		return DefaultLanguage
	}
	lang, ok := v.(string)
	if !ok || strings.TrimSpace(lang) == "" {
		return DefaultLanguage
	}
	return strings.ToLower(strings.TrimSpace(lang))
}

func (s *Settings) SetLanguage(lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return fmt.Errorf("language cannot be empty")
	}
	return s.Set(languageKey, lang)
}

// Reload re-reads the file, replacing the in-memory values.
func (s *Settings) Reload() {
	values := readSettings(s.path)
	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
}

// Watch reloads the settings whenever the file is written by another
// process. It blocks until ctx is done.
func (s *Settings) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so replacements by rename are seen.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	name := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				s.Reload()
				slog.InfoContext(ctx, "Settings reloaded", "path", s.path, "language", s.Language())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "Settings watcher error", "error", err)
		}
	}
}
