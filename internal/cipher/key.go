// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cipher implements the monoalphabetic substitution key used to
// decipher classified files.
//
// A key file holds two lines of equal length: the plain alphabet on the
// first line and the cipher alphabet on the second. The rune at position i
// of the cipher line deciphers to the rune at position i of the plain line.
package cipher // import "github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/cipher"

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/files"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/logging"
	"golang.org/x/crypto/blake2b"
)

var (
	// ErrInvalidKey is returned when key content is malformed.
	ErrInvalidKey = errors.New("invalid cipher key")
	// ErrKeyNotFound is returned when the key file cannot be read.
	ErrKeyNotFound = errors.New("cipher key not found")
)

// Key maps cipher runes to plain runes. A Key is immutable once parsed.
type Key struct {
	plain   string
	cipher  string
	mapping map[rune]rune
}

// ParseKey builds a Key from the textual content of a key file.
func ParseKey(content string) (*Key, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrInvalidKey)
	}

	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: expected two lines, got %d", ErrInvalidKey, len(lines))
	}
	plainLine := strings.TrimSuffix(lines[0], "\r")
	cipherLine := strings.TrimSuffix(lines[1], "\r")

	if plainLine == "" || cipherLine == "" {
		return nil, fmt.Errorf("%w: alphabet lines must not be empty", ErrInvalidKey)
	}
	plainRunes := []rune(plainLine)
	cipherRunes := []rune(cipherLine)
	if len(plainRunes) != len(cipherRunes) {
		return nil, fmt.Errorf("%w: plain alphabet has %d characters, cipher alphabet has %d",
			ErrInvalidKey, len(plainRunes), len(cipherRunes))
	}

	// A repeated cipher character keeps its last mapping.
	mapping := make(map[rune]rune, len(cipherRunes))
	for i, c := range cipherRunes {
		if prev, dup := mapping[c]; dup {
			logging.Warnf("cipher character %q appears more than once; %q replaces %q", c, plainRunes[i], prev)
		}
		mapping[c] = plainRunes[i]
	}

	return &Key{plain: plainLine, cipher: cipherLine, mapping: mapping}, nil
}

// LoadKey reads and parses the key file at path.
func LoadKey(path string) (*Key, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrKeyNotFound)
	}
	content, err := files.ReadKeyFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyNotFound, err)
	}
	return ParseKey(content)
}

// Decipher replaces every rune of s that appears in the cipher alphabet
// with its plain counterpart. Other runes are copied unchanged.
func (k *Key) Decipher(s string) string {
	if k == nil || len(k.mapping) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if p, ok := k.mapping[r]; ok {
			b.WriteRune(p)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Len returns the number of mapped runes.
func (k *Key) Len() int {
	if k == nil {
		return 0
	}
	return len(k.mapping)
}

// Fingerprint identifies the key by a BLAKE2b-256 digest of its two
// alphabets, ignoring line endings.
func (k *Key) Fingerprint() string {
	if k == nil {
		return ""
	}
	sum := blake2b.Sum256([]byte(k.plain + "\n" + k.cipher + "\n"))
	return hex.EncodeToString(sum[:])
}
