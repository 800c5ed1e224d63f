// Package storage provides persistence for generated reports
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bobmcallan/verdex/internal/common"
	"github.com/bobmcallan/verdex/internal/interfaces"
	"github.com/bobmcallan/verdex/internal/models"
)

// ReportStore persists PDF reports as files under a base directory.
type ReportStore struct {
	basePath string
	logger   *common.Logger
}

// NewReportStore creates a report store rooted at basePath.
func NewReportStore(basePath string, logger *common.Logger) (*ReportStore, error) {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	return &ReportStore{
		basePath: basePath,
		logger:   logger,
	}, nil
}

// validateFilename rejects names that could escape the base directory.
func validateFilename(filename string) error {
	if filename == "" ||
		strings.Contains(filename, "/") ||
		strings.Contains(filename, "\\") ||
		strings.Contains(filename, "..") ||
		filename != filepath.Base(filename) {
		return fmt.Errorf("%w: unsafe filename %q", models.ErrInvalidInput, filename)
	}
	if !strings.HasSuffix(filename, ".pdf") {
		return fmt.Errorf("%w: report filename must end in .pdf", models.ErrInvalidInput)
	}
	return nil
}

// Save writes a report atomically via a temp file and rename.
func (s *ReportStore) Save(ctx context.Context, filename string, data []byte) error {
	if err := validateFilename(filename); err != nil {
		return err
	}

	finalPath := filepath.Join(s.basePath, filename)
	tempPath := finalPath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize report: %w", err)
	}

	s.logger.Debug().Str("filename", filename).Int("bytes", len(data)).Msg("Saved report")

	return nil
}

// Load reads a stored report.
func (s *ReportStore) Load(ctx context.Context, filename string) ([]byte, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.basePath, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: report %s", models.ErrNotFound, filename)
		}
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	return data, nil
}

// List returns stored report filenames, newest first.
func (s *ReportStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	type fileInfo struct {
		name    string
		modTime int64
	}

	files := make([]fileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{name: entry.Name(), modTime: info.ModTime().UnixNano()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime > files[j].modTime
	})

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	return names, nil
}

// Ensure ReportStore implements interfaces.ReportStore
var _ interfaces.ReportStore = (*ReportStore)(nil)
