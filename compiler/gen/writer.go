package gen

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/syssam/sqlmodel/internal/logger"
)

// WriterMetrics tracks what a WriteAll call did.
type WriterMetrics struct {
	FilesWritten   int
	FilesUnchanged int
	TotalBytes     int64
}

// WriteAll writes every output. Files whose content is unchanged are left
// untouched, so that file watchers do not see spurious events.
func WriteAll(log logger.Logger, outputs []*Output) (*WriterMetrics, error) {
	if log == nil {
		log = logger.Nop()
	}
	m := &WriterMetrics{}
	for _, out := range outputs {
		changed, err := writeFile(out.Path, out.Content)
		if err != nil {
			return m, NewGenerationError("write", out.Path, "", err)
		}
		if !changed {
			m.FilesUnchanged++
			log.Debug("unchanged", "file", out.Path)
			continue
		}
		m.FilesWritten++
		m.TotalBytes += int64(len(out.Content))
		log.Info("generated", "file", out.Path, "models", len(out.Tables))
	}
	log.Info("write done", "written", m.FilesWritten, "unchanged", m.FilesUnchanged, "bytes", m.TotalBytes)
	return m, nil
}

// writeFile writes content to path unless the file already holds it.
func writeFile(path string, content []byte) (bool, error) {
	prev, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(prev, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
