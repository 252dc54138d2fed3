package queue

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Dir returns the absolute directory backing a location.
func (s *Store) Dir(location Location) string {
	return filepath.Join(s.root, string(location))
}

// Root returns the data directory containing the three queue directories.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) itemPath(location Location, id string) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir(location), id), nil
}

// validateID rejects ids that would escape the queue directory. Item ids
// are bare filenames, never paths.
func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("item id is empty")
	}
	if id == "." || id == ".." {
		return fmt.Errorf("invalid item id %q", id)
	}
	if strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0) {
		return fmt.Errorf("invalid item id %q", id)
	}
	return nil
}

// suffixedID disambiguates a colliding filename by inserting a timestamp
// before the extension, preserving the original extension.
func suffixedID(id string, now time.Time) string {
	ext := filepath.Ext(id)
	base := strings.TrimSuffix(id, ext)
	return fmt.Sprintf("%s_%d%s", base, now.Unix(), ext)
}
