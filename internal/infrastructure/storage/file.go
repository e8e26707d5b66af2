package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ArticleSummarizer/internal/domain"
	"ArticleSummarizer/internal/ports"
)

const (
	fileNamePrefix = "article_summary_"
	fileNameLayout = "20060102_150405"
)

// FileWriter stores each summary as a plain UTF-8 text file named after its creation time.
type FileWriter struct {
	dir string
	now func() time.Time
}

var _ ports.SummaryWriter = (*FileWriter)(nil)

// NewFileWriter writes into dir; an empty dir means the working directory.
func NewFileWriter(dir string) *FileWriter {
	if dir == "" {
		dir = "."
	}
	return &FileWriter{dir: dir, now: time.Now}
}

// FileName renders article_summary_<YYYYMMDD_HHMMSS>.txt for the given instant.
func FileName(at time.Time) string {
	return fileNamePrefix + at.Format(fileNameLayout) + ".txt"
}

// Write stores summary.Text verbatim and returns the absolute path of the file.
// A second run within the same second overwrites the previous file.
func (w *FileWriter) Write(_ context.Context, summary domain.Summary) (string, error) {
	at := summary.CreatedAt
	if at.IsZero() {
		at = w.now()
	}

	path := filepath.Join(w.dir, FileName(at))
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if err := os.WriteFile(path, []byte(summary.Text), 0o644); err != nil {
		return "", fmt.Errorf("write summary file: %w", err)
	}
	return path, nil
}
