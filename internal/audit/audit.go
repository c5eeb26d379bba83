// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

// Package audit records which classified files were revealed, with which
// key, and by whom. Recording is optional and disabled by default.
package audit // import "github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/audit"

import (
	"context"
	"os/user"
	"strings"
	"time"
)

// Action names stored in the audit log.
const (
	ActionRevealOK   = "REVEAL_OK"
	ActionRevealFail = "REVEAL_FAIL"
)

// Entry is one audit log record.
type Entry struct {
	ID             int64
	Timestamp      time.Time
	Username       string
	Action         string
	File           string
	KeyFingerprint string
	Details        string
}

// Store persists audit entries.
type Store interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Nop is a Store that discards everything. It is used when auditing is off.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error          { return nil }
func (Nop) Recent(context.Context, int) ([]Entry, error) { return nil, nil }
func (Nop) Close() error                                 { return nil }

// CurrentUsername returns the OS user name without any Windows domain prefix.
func CurrentUsername() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	if parts := strings.Split(u.Username, `\`); len(parts) > 1 {
		return parts[1]
	}
	return u.Username
}
