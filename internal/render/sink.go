// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink receives encoded chart images by name.
type Sink interface {
	// Put stores data under name and returns where it went.
	Put(name string, data []byte) (string, error)
}

// DirSink writes images into a directory, replacing existing files. Each
// file is written to a temporary name first and renamed into place.
type DirSink struct {
	Dir string
}

// Put implements Sink.
func (s DirSink) Put(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", s.Dir, err)
	}
	path := filepath.Join(s.Dir, name)

	tmp, err := os.CreateTemp(s.Dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("replacing %s: %w", path, err)
	}
	return path, nil
}

// MemorySink keeps images in memory. The dashboard uses it to embed charts
// in a page.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// Put implements Sink.
func (s *MemorySink) Put(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[name] = append([]byte(nil), data...)
	return name, nil
}

// Get returns the image stored under name.
func (s *MemorySink) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[name]
	return b, ok
}
