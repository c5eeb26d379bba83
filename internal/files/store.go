// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

// Package files reads classified files from the data directory.
//
// Files are plain text (`*.txt`) or zstd-compressed text (`*.txt.zst`).
// Content is returned line-normalized: every line, including the last one,
// ends with a single "\n".
package files // import "github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/files"

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/logging"
	"github.com/klauspost/compress/zstd"
)

// DefaultDataDir is used when no data directory is configured.
const DefaultDataDir = "data"

const (
	textExt       = ".txt"
	compressedExt = ".txt.zst"
)

// ErrFileNotFound is returned when a requested file does not exist or is
// not a regular file.
var ErrFileNotFound = errors.New("file not found")

// Store provides access to the files of one data directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. An empty dir means DefaultDataDir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDataDir
	}
	return &Store{dir: dir}
}

// List returns the sorted names of the readable files in the data directory.
// A missing data directory is treated as empty.
func (s *Store) List() ([]string, error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debugf("data directory %s does not exist", s.dir)
			return []string{}, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		logging.Debugf("data path %s is not a directory", s.dir)
		return []string{}, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !isDataFile(e.Name()) || !s.isRegular(e) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// isRegular reports whether e is a regular file, following symlinks so the
// listing agrees with Read.
func (s *Store) isRegular(e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(s.dir, e.Name()))
	if err != nil {
		logging.Debugf("skipping %s: %v", e.Name(), err)
		return false
	}
	return info.Mode().IsRegular()
}

// Read returns the normalized content of the named file in the data directory.
func (s *Store) Read(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || !isDataFile(name) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return readNormalized(filepath.Join(s.dir, name))
}

// ReadKeyFile returns the normalized content of the file at path.
func ReadKeyFile(path string) (string, error) {
	return readNormalized(path)
}

func isDataFile(name string) bool {
	return strings.HasSuffix(name, textExt) || strings.HasSuffix(name, compressedExt)
}

func readNormalized(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, compressedExt) {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("open zstd stream %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	return normalizeLines(r)
}

// normalizeLines rewrites r so that every line ends in "\n". CRLF endings are
// folded to LF.
func normalizeLines(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	var b strings.Builder
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			b.WriteString(line)
			b.WriteByte('\n')
		}
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}
