package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JaimeStill/doc-convert/pkg/lifecycle"
)

type filesystem struct {
	basePath      string
	sweepInterval time.Duration
	staleAfter    time.Duration
	logger        *slog.Logger
}

// New creates a filesystem storage system.
// The base path is resolved to an absolute path during construction.
// Directory creation is deferred to Start() for lifecycle integration.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	return &filesystem{
		basePath:      absPath,
		sweepInterval: cfg.SweepIntervalDuration(),
		staleAfter:    cfg.StaleAfterDuration(),
		logger:        logger.With("system", "storage"),
	}, nil
}

func (f *filesystem) BasePath() string {
	return f.basePath
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting storage system", "base_path", f.basePath)

	if err := os.MkdirAll(f.basePath, 0755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	lc.OnStartup(func() {
		removed, err := f.Sweep(f.staleAfter)
		if err != nil {
			f.logger.Error("startup sweep failed", "error", err)
			return
		}
		f.logger.Info("storage directory initialized", "removed", removed)
	})

	if f.sweepInterval <= 0 {
		return nil
	}

	lc.OnShutdown(func() {
		ticker := time.NewTicker(f.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-lc.Context().Done():
				f.logger.Info("storage sweeper stopped")
				return
			case <-ticker.C:
				removed, err := f.Sweep(f.staleAfter)
				if err != nil {
					f.logger.Warn("sweep failed", "error", err)
					continue
				}
				if removed > 0 {
					f.logger.Info("swept stale files", "removed", removed)
				}
			}
		}
	})

	return nil
}

func (f *filesystem) Scope() *Scope {
	return newScope(f)
}

func (f *filesystem) Sweep(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(f.basePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		if errors.Is(err, fs.ErrPermission) {
			return 0, ErrPermissionDenied
		}
		return 0, fmt.Errorf("read storage directory: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(f.basePath, entry.Name())); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				f.logger.Warn("failed to remove stale file", "name", entry.Name(), "error", err)
			}
			continue
		}
		removed++
	}

	return removed, nil
}

func (f *filesystem) fullPath(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", ErrInvalidKey
	}

	fullPath := filepath.Join(f.basePath, cleaned)

	if !strings.HasPrefix(fullPath, f.basePath+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}

	return fullPath, nil
}

func (f *filesystem) remove(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if errors.Is(err, fs.ErrPermission) {
			return ErrPermissionDenied
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
