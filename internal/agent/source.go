package agent

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSuffix is appended to an agent id to form its file name.
const FileSuffix = ".agent.yaml"

// Source reads raw agent documents. Read returns an error wrapping
// ErrNotFound when no document exists for id.
type Source interface {
	Read(id string) ([]byte, error)
}

// DirSource reads <Dir>/<id>.agent.yaml.
type DirSource struct {
	Dir string
}

// Path returns the file an agent id is read from.
func (s DirSource) Path(id string) string {
	return filepath.Join(s.Dir, id+FileSuffix)
}

func (s DirSource) Read(id string) ([]byte, error) {
	path := s.Path(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (expected at %s)", ErrNotFound, id, path)
		}
		return nil, fmt.Errorf("reading agent %s: %w", id, err)
	}
	return data, nil
}
