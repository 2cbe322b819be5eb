package snapshots

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coursescope/coursescope/internal/pkg/logger"
)

// Writer persists raw upstream payloads to the local filesystem so that
// every fetch is independently replayable and auditable. File names are
// derived from the fetch parameters, so re-fetching the same partition
// overwrites the previous snapshot.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir, creating the directory
// tree if it does not exist yet.
func NewWriter(baseDir string) (*Writer, error) {
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", baseDir).Msg("Failed to create snapshot directory")
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", baseDir, err)
	}
	logger.Info().Str("path", baseDir).Msg("Snapshot directory ensured")

	return &Writer{baseDir: baseDir}, nil
}

// Write stores one partition's verbatim payload and returns the path it
// was written to.
func (w *Writer) Write(srcdb, career, camp string, payload []byte) (string, error) {
	path := filepath.Join(w.baseDir, FileName(srcdb, career, camp))

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to write snapshot")
		return "", fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("bytes", len(payload)).Msg("Snapshot written")
	return path, nil
}

// FileName builds the deterministic snapshot file name for a fetch.
func FileName(srcdb, career, camp string) string {
	return fmt.Sprintf("classes_srcdb-%s_career-%s_camp-%s.json", srcdb, career, SlugifyCamp(camp))
}

// SlugifyCamp turns a partition selector into a filesystem-safe slug:
// "@" becomes "-", "," becomes "_", "*" becomes "STAR", spaces are stripped.
func SlugifyCamp(camp string) string {
	replacer := strings.NewReplacer(
		"@", "-",
		",", "_",
		"*", "STAR",
		" ", "",
	)
	return replacer.Replace(camp)
}
