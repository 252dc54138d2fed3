package queue

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"murmur/internal/config"
	"murmur/internal/fileutil"
)

// Store manages queue persistence backed by the filesystem.
type Store struct {
	root string
}

// createAttempts bounds the collision-retry loop in Create and Import.
// The disambiguating suffix carries second-level precision, so exhaustion
// is practically unreachable.
const createAttempts = 5

// Open ensures the queue directories exist under the configured data root.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	store := &Store{root: cfg.Paths.DataDir}
	for _, location := range allLocations {
		if err := os.MkdirAll(store.Dir(location), 0o755); err != nil {
			return nil, fmt.Errorf("ensure %s directory: %w", location, err)
		}
	}
	return store, nil
}

// NewAt returns a store rooted at an existing data directory without
// creating anything. Callers outside tests should prefer Open.
func NewAt(root string) *Store {
	return &Store{root: root}
}

// List enumerates the items at a location. Todo and working are ordered
// alphabetically by id; done is ordered newest-first by modification time
// because its primary use is a most-recent-first audit view.
func (s *Store) List(location Location) ([]Item, error) {
	entries, err := os.ReadDir(s.Dir(location))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", location, err)
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Entry moved away between the listing and the stat.
			continue
		}
		items = append(items, Item{
			ID:         entry.Name(),
			Location:   location,
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	if location == LocationDone {
		sort.SliceStable(items, func(i, j int) bool {
			if !items[i].ModifiedAt.Equal(items[j].ModifiedAt) {
				return items[i].ModifiedAt.After(items[j].ModifiedAt)
			}
			return items[i].ID < items[j].ID
		})
	} else {
		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	}
	return items, nil
}

// Count returns the number of items at a location.
func (s *Store) Count(location Location) (int, error) {
	items, err := s.List(location)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Read returns the content bytes of an item at a location.
func (s *Store) Read(location Location, id string) ([]byte, error) {
	path, err := s.itemPath(location, id)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s/%s: %w", location, id, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s/%s: %w", location, id, err)
	}
	return content, nil
}

// Stat returns item metadata without reading content.
func (s *Store) Stat(location Location, id string) (*Item, error) {
	path, err := s.itemPath(location, id)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s/%s: %w", location, id, ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s/%s: %w", location, id, err)
	}
	return &Item{ID: id, Location: location, Size: info.Size(), ModifiedAt: info.ModTime()}, nil
}

// Move relocates an item between locations with a single rename. The
// operation is failure-atomic: the item ends up fully at the destination
// or remains fully at the source.
func (s *Store) Move(id string, from, to Location) error {
	src, err := s.itemPath(from, id)
	if err != nil {
		return err
	}
	dst, err := s.itemPath(to, id)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("move %s/%s to %s: %w", from, id, to, ErrConflict)
	}
	if err := os.Rename(src, dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("move %s/%s to %s: %w", from, id, to, ErrNotFound)
		}
		return fmt.Errorf("move %s/%s to %s: %w", from, id, to, err)
	}
	return nil
}

// Create writes a new item at a location and returns the id actually used.
// A name collision is resolved by suffixing the requested id with the
// current time and retrying; the loop is bounded by createAttempts.
func (s *Store) Create(location Location, id string, content []byte) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	candidate := id
	for attempt := 0; attempt < createAttempts; attempt++ {
		path, err := s.itemPath(location, candidate)
		if err != nil {
			return "", err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				candidate = suffixedID(id, time.Now())
				continue
			}
			return "", fmt.Errorf("create %s/%s: %w", location, candidate, err)
		}
		if _, err := file.Write(content); err != nil {
			_ = file.Close()
			_ = os.Remove(path)
			return "", fmt.Errorf("create %s/%s: %w", location, candidate, err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("create %s/%s: %w", location, candidate, err)
		}
		return candidate, nil
	}
	return "", fmt.Errorf("create %s/%s: no free filename after %d attempts: %w", location, id, createAttempts, ErrWriteError)
}

// Import copies an external file into a location using the same bounded
// collision-retry loop as Create.
func (s *Store) Import(location Location, id, sourcePath string) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	candidate := id
	for attempt := 0; attempt < createAttempts; attempt++ {
		path, err := s.itemPath(location, candidate)
		if err != nil {
			return "", err
		}
		err = fileutil.CopyFileNew(sourcePath, path)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, fs.ErrExist) {
			candidate = suffixedID(id, time.Now())
			continue
		}
		return "", fmt.Errorf("import %s/%s: %w", location, candidate, err)
	}
	return "", fmt.Errorf("import %s/%s: no free filename after %d attempts: %w", location, id, createAttempts, ErrWriteError)
}
