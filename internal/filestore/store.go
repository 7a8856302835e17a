// Package filestore keeps the journal in three JSON documents under a data
// directory: data.json for entries, streak.json for the milestone and
// prompts.json for saved prompts. Every save rewrites its document atomically.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shubh-37/journal-companion/internal/models"
)

const (
	EntriesFile  = "data.json"
	SettingsFile = "streak.json"
	PromptsFile  = "prompts.json"
)

// Store implements the entry, settings and prompt repositories on disk.
type Store struct {
	root string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("empty data dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &Store{root: dir}, nil
}

// Root returns the data directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) LoadEntries(_ context.Context) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	if err := s.read(EntriesFile, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Themes == nil {
			entries[i].Themes = []string{}
		}
	}
	return entries, nil
}

func (s *Store) SaveEntries(_ context.Context, entries []models.JournalEntry) error {
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	return s.write(EntriesFile, entries)
}

func (s *Store) LoadSettings(_ context.Context) (models.StreakSettings, error) {
	var settings models.StreakSettings
	if err := s.read(SettingsFile, &settings); err != nil {
		return models.StreakSettings{}, err
	}
	return settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings models.StreakSettings) error {
	return s.write(SettingsFile, settings)
}

func (s *Store) LoadPrompts(_ context.Context) (models.PromptSets, error) {
	prompts := models.PromptSets{}
	if err := s.read(PromptsFile, &prompts); err != nil {
		return nil, err
	}
	if prompts == nil {
		prompts = models.PromptSets{}
	}
	return prompts, nil
}

func (s *Store) SavePrompts(_ context.Context, prompts models.PromptSets) error {
	if prompts == nil {
		prompts = models.PromptSets{}
	}
	return s.write(PromptsFile, prompts)
}

// read decodes name into v. A missing or empty file leaves v untouched; a
// file that does not decode is an error.
func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// write encodes v to a temp file next to name and renames it into place.
func (s *Store) write(name string, v any) error {
	tmp, err := os.CreateTemp(s.root, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, filepath.Join(s.root, name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
