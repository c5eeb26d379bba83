// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

// Package control connects the file store, the cipher key and the audit log.
// The user interface talks only to a Controller.
package control // import "github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/control"

import (
	"context"
	"errors"
	"fmt"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/audit"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/cipher"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/logging"
)

var (
	// ErrListUnavailable wraps failures to enumerate the data directory.
	ErrListUnavailable = errors.New("unable to access file list")
	// ErrNoFiles is returned when a file is requested from an empty data directory.
	ErrNoFiles = errors.New("no files available in data directory")
	// ErrFileNumber is returned when a file number is outside the listing.
	ErrFileNumber = errors.New("file number not found")
	// ErrFileRead is returned when a listed file cannot be read.
	ErrFileRead = errors.New("file not found")
	// ErrKeyLoad is returned when the cipher key cannot be loaded.
	ErrKeyLoad = errors.New("failed to load key file")
)

// FileSource lists and reads classified files. files.Store satisfies it.
type FileSource interface {
	List() ([]string, error)
	Read(name string) (string, error)
}

// KeyLoader loads a cipher key from a path.
type KeyLoader func(path string) (*cipher.Key, error)

// Document is a deciphered file.
type Document struct {
	Number  int
	Name    string
	Content string
	Key     *cipher.Key
}

// NumberError reports a requested file number outside the listing.
type NumberError struct {
	Number int
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("file number %02d not found", e.Number)
}

func (e *NumberError) Unwrap() error { return ErrFileNumber }

// ReadError reports a listed file that could not be read.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string { return "file not found: " + e.Name }

func (e *ReadError) Unwrap() []error { return []error{ErrFileRead, e.Err} }

// KeyError reports a key file that could not be loaded.
type KeyError struct {
	Path string
	Err  error
}

func (e *KeyError) Error() string { return "failed to load key file: " + e.Path }

func (e *KeyError) Unwrap() []error { return []error{ErrKeyLoad, e.Err} }

// Controller serves file listings and deciphered content.
type Controller struct {
	files   FileSource
	loadKey KeyLoader
	audit   audit.Store
}

// Option configures a Controller.
type Option func(*Controller)

// WithKeyLoader replaces cipher.LoadKey.
func WithKeyLoader(l KeyLoader) Option {
	return func(c *Controller) { c.loadKey = l }
}

// WithAudit records every Reveal in s.
func WithAudit(s audit.Store) Option {
	return func(c *Controller) { c.audit = s }
}

// New returns a Controller reading from files.
func New(files FileSource, opts ...Option) *Controller {
	c := &Controller{
		files:   files,
		loadKey: cipher.LoadKey,
		audit:   audit.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileList returns the names of the available files in listing order.
func (c *Controller) FileList(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names, err := c.files.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListUnavailable, err)
	}
	if names == nil {
		return nil, ErrListUnavailable
	}
	return names, nil
}

// FileContent returns the still enciphered content and name of file number
// (1-based). keyPath is accepted for symmetry with Reveal and is not read.
func (c *Controller) FileContent(ctx context.Context, number int, keyPath string) (string, error) {
	name, content, err := c.fetch(ctx, number)
	if err != nil {
		return "", err
	}
	logging.Debugf("read %s (file %02d, key %s)", name, number, keyPath)
	return content, nil
}

func (c *Controller) fetch(ctx context.Context, number int) (string, string, error) {
	names, err := c.FileList(ctx)
	if err != nil {
		return "", "", err
	}
	if len(names) == 0 {
		return "", "", ErrNoFiles
	}
	if number < 1 || number > len(names) {
		return "", "", &NumberError{Number: number}
	}

	name := names[number-1]
	content, err := c.files.Read(name)
	if err != nil {
		return name, "", &ReadError{Name: name, Err: err}
	}
	return name, content, nil
}

// Reveal fetches file number and deciphers it with the key at keyPath.
// The outcome is written to the audit store.
func (c *Controller) Reveal(ctx context.Context, number int, keyPath string) (Document, error) {
	name, content, err := c.fetch(ctx, number)
	if err != nil {
		c.record(ctx, audit.ActionRevealFail, name, "", err)
		return Document{}, err
	}

	key, err := c.loadKey(keyPath)
	if err != nil {
		kerr := &KeyError{Path: keyPath, Err: err}
		c.record(ctx, audit.ActionRevealFail, name, "", kerr)
		return Document{}, kerr
	}

	doc := Document{
		Number:  number,
		Name:    name,
		Content: key.Decipher(content),
		Key:     key,
	}
	c.record(ctx, audit.ActionRevealOK, name, key.Fingerprint(), nil)
	return doc, nil
}

// History returns the most recent audit entries.
func (c *Controller) History(ctx context.Context, limit int) ([]audit.Entry, error) {
	return c.audit.Recent(ctx, limit)
}

func (c *Controller) record(ctx context.Context, action, file, fingerprint string, cause error) {
	e := audit.Entry{Action: action, File: file, KeyFingerprint: fingerprint}
	if cause != nil {
		e.Details = cause.Error()
	}
	if err := c.audit.Record(ctx, e); err != nil {
		logging.Warnf("could not record %s for %q: %v", action, file, err)
	}
}
