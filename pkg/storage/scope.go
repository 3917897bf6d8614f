package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Scope owns the files created for a single request.
// Every file is registered at creation, and Release removes exactly
// the registered files. Release is idempotent.
type Scope struct {
	id string
	fs *filesystem

	mu       sync.Mutex
	seq      int
	files    []string
	released bool
}

func newScope(fs *filesystem) *Scope {
	return &Scope{
		id: uuid.NewString(),
		fs: fs,
	}
}

// ID returns the unique scope identifier embedded in every file name.
func (s *Scope) ID() string {
	return s.id
}

// Create opens a new empty file named after name for writing.
// The name is sanitized and prefixed with the scope id and a sequence
// number, so repeated names within and across scopes never collide.
func (s *Scope) Create(name string) (*os.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, ErrScopeReleased
	}

	s.seq++
	key := fmt.Sprintf("%s_%d_%s", s.id, s.seq, SanitizeFilename(name))

	path, err := s.fs.fullPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	s.files = append(s.files, path)
	return file, nil
}

// Save copies r into a new scope file and returns its path and size.
func (s *Scope) Save(name string, r io.Reader) (string, int64, error) {
	file, err := s.Create(name)
	if err != nil {
		return "", 0, err
	}

	n, err := io.Copy(file, r)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", 0, fmt.Errorf("write file: %w", err)
	}

	return file.Name(), n, nil
}

// Open opens a file previously created by this scope for reading.
func (s *Scope) Open(path string) (*os.File, error) {
	s.mu.Lock()
	owned := !s.released && slices.Contains(s.files, path)
	s.mu.Unlock()

	if !owned {
		return nil, ErrNotFound
	}

	return os.Open(path)
}

// Files returns the paths currently owned by the scope.
func (s *Scope) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.files)
}

// Release removes every file the scope created. Subsequent calls are no-ops.
// Removal is attempted for every file even when some fail; the failures are joined.
func (s *Scope) Release() error {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return nil
	}
	s.released = true
	files := s.files
	s.files = nil
	s.mu.Unlock()

	var errs []error
	for _, path := range files {
		if err := s.fs.remove(path); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.fs.logger.Warn("scope release incomplete", "scope", s.id, "error", err)
		return err
	}

	return nil
}
