// Package workdir manages per-job scratch files. Every intermediate artifact
// a job creates lives directly under one root directory and carries the job
// identifier as a name prefix, so reclaiming a job is a prefix sweep that
// cannot touch another job's files.
package workdir

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"revoice/internal/logging"
	"revoice/internal/services"
)

// Manager hands out scratch paths and reclaims them when a job finishes.
type Manager struct {
	root   string
	logger *slog.Logger
}

// NewManager returns a manager rooted at dir.
func NewManager(dir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{root: dir, logger: logger}
}

// Root returns the scratch directory.
func (m *Manager) Root() string {
	return m.root
}

// Ensure creates the scratch directory if it does not exist.
func (m *Manager) Ensure() error {
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return services.Wrap(services.ErrResource, "workdir", "ensure", "create scratch directory", err)
	}
	return nil
}

// Path returns the scratch path for one labeled artifact of a job, for
// example Path(id, "extracted.wav") -> <root>/<id>_extracted.wav.
func (m *Manager) Path(jobID, label string) string {
	return filepath.Join(m.root, jobID+"_"+label)
}

// Reclaim removes every scratch file belonging to jobID. It is idempotent:
// reclaiming a job with no remaining files succeeds, and files of other jobs
// are never touched.
func (m *Manager) Reclaim(jobID string) error {
	if jobID == "" {
		return services.Wrap(services.ErrResource, "workdir", "reclaim", "empty job id", nil)
	}
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return services.Wrap(services.ErrResource, "workdir", "reclaim", "read scratch directory", err)
	}
	prefix := jobID + "_"
	var removed int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		path := filepath.Join(m.root, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return services.Wrap(services.ErrResource, "workdir", "reclaim", fmt.Sprintf("remove %s", entry.Name()), err)
		}
		removed++
	}
	if removed > 0 {
		m.logger.Debug("reclaimed scratch files",
			logging.String(logging.FieldJobID, jobID),
			logging.Int("files", removed))
	}
	return nil
}

// ReclaimAll removes every scratch file regardless of owner. Used on startup
// to sweep leftovers from jobs that can no longer run.
func (m *Manager) ReclaimAll() error {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return services.Wrap(services.ErrResource, "workdir", "reclaim", "read scratch directory", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(m.root, entry.Name())); err != nil && !os.IsNotExist(err) {
			return services.Wrap(services.ErrResource, "workdir", "reclaim", fmt.Sprintf("remove %s", entry.Name()), err)
		}
	}
	return nil
}
