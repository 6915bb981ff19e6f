package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/logger"
)

// File persists one JSON value to one path. Reads are lenient: a missing
// file reads as the empty value and malformed content degrades to the
// empty value with a logged error, so callers never see a read failure.
// Reads do not create the file.
type File struct {
	path   string
	logger *logger.Logger
}

// NewFile creates a file codec for the given path.
func NewFile(path string, log *logger.Logger) *File {
	return &File{
		path:   path,
		logger: log.WithComponent("storage"),
	}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// ReadArray returns the stored records, or an empty slice when the file
// is absent, empty or unparseable.
func (f *File) ReadArray() []entities.Record {
	data, ok := f.read()
	if !ok {
		return []entities.Record{}
	}

	var records []entities.Record
	if err := json.Unmarshal(data, &records); err != nil {
		f.logger.LogFileOperation("parse", f.path, err)
		return []entities.Record{}
	}
	if records == nil {
		records = []entities.Record{}
	}
	return records
}

// ReadObject returns the stored singleton object, or an empty record when
// the file is absent, empty or unparseable.
func (f *File) ReadObject() entities.Record {
	data, ok := f.read()
	if !ok {
		return entities.Record{}
	}

	var record entities.Record
	if err := json.Unmarshal(data, &record); err != nil {
		f.logger.LogFileOperation("parse", f.path, err)
		return entities.Record{}
	}
	if record == nil {
		record = entities.Record{}
	}
	return record
}

// WriteArray replaces the file contents with the full record slice.
func (f *File) WriteArray(records []entities.Record) error {
	if records == nil {
		records = []entities.Record{}
	}
	return f.write(records)
}

// WriteObject replaces the file contents with the singleton object.
func (f *File) WriteObject(record entities.Record) error {
	if record == nil {
		record = entities.Record{}
	}
	return f.write(record)
}

func (f *File) read() ([]byte, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.logger.LogFileOperation("read", f.path, err)
		}
		return nil, false
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, false
	}
	return data, true
}

// write serializes with a stable two-space indent and replaces the file
// through a temp file and rename, so a crash mid-write never leaves a
// truncated data file behind.
func (f *File) write(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		f.logger.LogFileOperation("marshal", f.path, err)
		return fmt.Errorf("marshal %s: %w", f.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		f.logger.LogFileOperation("mkdir", f.path, err)
		return fmt.Errorf("create data dir for %s: %w", f.path, err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		f.logger.LogFileOperation("write", f.path, err)
		return fmt.Errorf("write temp file for %s: %w", f.path, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		f.logger.LogFileOperation("rename", f.path, err)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}

	f.logger.LogFileOperation("write", f.path, nil)
	return nil
}
