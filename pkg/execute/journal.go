package execute

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Demoen/organizer-application/pkg/config"
	"github.com/Demoen/organizer-application/pkg/models"
)

// Journal persists the undo history between processes
type Journal interface {
	Load() ([]models.Batch, error)
	Save(batches []models.Batch) error
}

const (
	journalVersion  = 1
	journalFileName = "history.json"
)

// journalFile is the on-disk format
type journalFile struct {
	// Version for journal format compatibility
	Version   int            `json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
	Batches   []models.Batch `json:"batches"`
}

// FileJournal stores the history as a JSON document
type FileJournal struct {
	path string
}

// NewFileJournal creates a journal at path
func NewFileJournal(path string) *FileJournal {
	return &FileJournal{path: path}
}

// DefaultJournalPath returns the history file in the application config dir
func DefaultJournalPath() (string, error) {
	dir, err := config.AppConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, journalFileName), nil
}

// Path returns the journal file location
func (j *FileJournal) Path() string {
	return j.path
}

// Load reads the history. A missing file is an empty history.
func (j *FileJournal) Load() ([]models.Batch, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var f journalFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}

	if f.Version > journalVersion {
		return nil, fmt.Errorf("history file version %d is newer than supported version %d", f.Version, journalVersion)
	}

	return f.Batches, nil
}

// Save replaces the history atomically
func (j *FileJournal) Save(batches []models.Batch) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	if batches == nil {
		batches = []models.Batch{}
	}
	data, err := json.MarshalIndent(journalFile{
		Version:   journalVersion,
		UpdatedAt: time.Now(),
		Batches:   batches,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	// Write atomically using temp file
	tmpPath := j.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	if err := os.Rename(tmpPath, j.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize history file: %w", err)
	}

	return nil
}
