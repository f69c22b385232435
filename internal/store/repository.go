package store

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	RepositoryBackendFile  = "file"
	RepositoryBackendBbolt = "bbolt"
)

// Repository owns the note storage of one daemon process.
type Repository interface {
	io.Closer
	Notes() NoteStore
	Backend() string
}

// RepositoryPaths locates the files of each backend. Only the path of the
// selected backend is used.
type RepositoryPaths struct {
	NotesPath string
	DBPath    string
}

// OpenRepository opens the note repository for backend. An empty backend
// selects bbolt.
func OpenRepository(backend string, paths RepositoryPaths) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", RepositoryBackendBbolt:
		return NewBboltRepository(paths.DBPath)
	case RepositoryBackendFile:
		if strings.TrimSpace(paths.NotesPath) == "" {
			return nil, errors.New("notes file path is required")
		}
		return NewFileRepository(paths), nil
	}
	return nil, fmt.Errorf("unknown repository backend %q", backend)
}

// fileRepository keeps every note in one JSON document.
type fileRepository struct {
	notes *FileNoteStore
}

func NewFileRepository(paths RepositoryPaths) Repository {
	return fileRepository{notes: NewFileNoteStore(paths.NotesPath)}
}

func (r fileRepository) Notes() NoteStore { return r.notes }
func (fileRepository) Backend() string    { return RepositoryBackendFile }
func (fileRepository) Close() error       { return nil }
