package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	domainprefs "github.com/CristhianAlv-ing/HotelFind/internal/domain/prefs"
)

// PrefsStore persists the language and theme selection to a local JSON file.
// OpenPrefs is the only way to obtain a handle, so preferences can never be
// read before the stored values were loaded.
type PrefsStore struct {
	mu       sync.RWMutex
	path     string
	language domainprefs.Language
	theme    domainprefs.Theme
	logger   *slog.Logger
}

type prefsDocument struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// OpenPrefs loads persisted preferences. A missing or unreadable file is not
// an error: the store starts from defaults and overwrites the file on the
// next change.
func OpenPrefs(path string, logger *slog.Logger) (*PrefsStore, error) {
	if path == "" {
		return nil, errors.New("prefs: path is required")
	}
	store := &PrefsStore{
		path:     path,
		language: domainprefs.DefaultLanguage,
		theme:    domainprefs.DefaultTheme,
		logger:   logger,
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) && logger != nil {
			logger.Warn("preferences read failed, using defaults", "path", path, "error", err)
		}
		return store, nil
	}
	var doc prefsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		if logger != nil {
			logger.Warn("preferences file corrupt, using defaults", "path", path, "error", err)
		}
		return store, nil
	}
	if lang, ok := domainprefs.ParseLanguage(doc.Language); ok {
		store.language = lang
	}
	if theme, ok := domainprefs.ParseTheme(doc.Theme); ok {
		store.theme = theme
	}
	return store, nil
}

func (s *PrefsStore) Language() domainprefs.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *PrefsStore) Theme() domainprefs.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetLanguage updates the in-memory value first and then writes through.
// A write failure is logged, never rolled back.
func (s *PrefsStore) SetLanguage(lang domainprefs.Language) {
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	s.persist()
}

func (s *PrefsStore) SetTheme(theme domainprefs.Theme) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	s.persist()
}

func (s *PrefsStore) persist() {
	s.mu.RLock()
	doc := prefsDocument{Language: string(s.language), Theme: string(s.theme)}
	s.mu.RUnlock()
	if err := writeJSONFile(s.path, doc); err != nil && s.logger != nil {
		s.logger.Warn("preferences write failed", "path", s.path, "error", err)
	}
}

// writeJSONFile writes atomically via a temp file rename so a crash cannot
// leave a half-written document behind.
func writeJSONFile(path string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
