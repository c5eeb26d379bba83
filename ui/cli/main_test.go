// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/audit"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/config"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/testutil"
)

// workspace creates a working directory with data/ and ciphers/key.txt and
// isolates config discovery from the developer's machine. A nil dataFiles
// leaves out the data directory entirely.
func workspace(t *testing.T, dataFiles map[string]string) string {
	t.Helper()
	tmp := t.TempDir()
	testutil.IsolateConfig(t, tmp)

	tree := map[string]string{"ciphers/key.txt": "ABC\nBCD\n"}
	for name, content := range dataFiles {
		tree["data/"+name] = content
	}
	if dataFiles != nil && len(dataFiles) == 0 {
		if err := os.MkdirAll(filepath.Join(tmp, "data"), 0o755); err != nil {
			t.Fatalf("mkdir data: %v", err)
		}
	}
	testutil.WriteTree(t, tmp, tree)
	testutil.Chdir(t, tmp)
	return tmp
}

// run executes the CLI with args and returns exit code, stdout and stderr.
func run(t *testing.T, a *app, args ...string) (int, string, string) {
	t.Helper()
	out, errOut := a.stdout.(*bytes.Buffer), a.stderr.(*bytes.Buffer)
	code := execute(context.Background(), a, args)
	return code, out.String(), errOut.String()
}

func testApp() *app {
	return newApp(&bytes.Buffer{}, &bytes.Buffer{})
}

func TestRoot_NoArgsListsFiles(t *testing.T) {
	workspace(t, map[string]string{"fileb.txt": "x", "filea.txt": "y", "skip.md": "z"})

	code, out, _ := run(t, testApp())
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if out != "01 filea.txt\n02 fileb.txt\n" {
		t.Fatalf("unexpected listing %q", out)
	}
}

func TestRoot_NoFiles(t *testing.T) {
	workspace(t, nil)

	code, out, _ := run(t, testApp())
	if code != 0 || out != "No files available.\n" {
		t.Fatalf("expected empty listing message, got %d %q", code, out)
	}
}

func TestRoot_SingleArgUsesDefaultKey(t *testing.T) {
	workspace(t, map[string]string{"filea.txt": "B C D!\nBBB"})

	code, out, errOut := run(t, testApp(), "01")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, errOut)
	}
	if out != "A B C!\nAAA\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRoot_ExplicitKeyPath(t *testing.T) {
	tmp := workspace(t, map[string]string{"filea.txt": "xyz\n"})
	alt := filepath.Join(tmp, "alt.txt")
	if err := os.WriteFile(alt, []byte("abc\nxyz\n"), 0o600); err != nil {
		t.Fatalf("write alt key: %v", err)
	}

	code, out, _ := run(t, testApp(), "01", alt)
	if code != 0 || out != "abc\n" {
		t.Fatalf("expected deciphered output, got %d %q", code, out)
	}
}

func TestRoot_KeyFlagChangesDefault(t *testing.T) {
	tmp := workspace(t, map[string]string{"filea.txt": "xyz\n"})
	alt := filepath.Join(tmp, "alt.txt")
	if err := os.WriteFile(alt, []byte("abc\nxyz\n"), 0o600); err != nil {
		t.Fatalf("write alt key: %v", err)
	}

	code, out, _ := run(t, testApp(), "--key", alt, "01")
	if code != 0 || out != "abc\n" {
		t.Fatalf("expected deciphered output, got %d %q", code, out)
	}
}

func TestRoot_InvalidFileNumber(t *testing.T) {
	workspace(t, map[string]string{"filea.txt": "x"})

	for _, arg := range []string{"999", "1", "ab", "٠١", "-1", "-05"} {
		code, out, errOut := run(t, testApp(), arg)
		if code == 0 {
			t.Fatalf("%q: expected failure", arg)
		}
		if !strings.Contains(errOut, "Error: Invalid file number. Must be two digits like 01.") {
			t.Fatalf("%q: unexpected stderr %q", arg, errOut)
		}
		if !strings.Contains(out, "Usage:") {
			t.Fatalf("%q: expected usage on stdout, got %q", arg, out)
		}
	}
}

func TestRoot_UnknownFlagPrintsUsage(t *testing.T) {
	workspace(t, nil)
	code, out, errOut := run(t, testApp(), "--bogus")
	if code == 0 || !strings.Contains(errOut, "Error: unknown flag: --bogus") {
		t.Fatalf("expected unknown flag error, got %d %q", code, errOut)
	}
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("expected usage on stdout, got %q", out)
	}
}

func TestRoot_UnknownLanguageWarns(t *testing.T) {
	workspace(t, map[string]string{"filea.txt": "BCD"})
	code, out, errOut := run(t, testApp(), "--lang", "xx", "01")
	if code != 0 || out != "ABC\n" {
		t.Fatalf("expected English output, got %d %q", code, out)
	}
	if !strings.Contains(errOut, `Unknown language "xx"`) {
		t.Fatalf("expected unknown language warning, got %q", errOut)
	}
}

func TestRoot_TooManyArguments(t *testing.T) {
	workspace(t, nil)
	code, _, errOut := run(t, testApp(), "01", "k.txt", "extra")
	if code == 0 || !strings.Contains(errOut, "Error: Too many arguments") {
		t.Fatalf("expected too many arguments error, got %d %q", code, errOut)
	}
}

func TestRoot_BlankKeyPath(t *testing.T) {
	workspace(t, map[string]string{"filea.txt": "x"})
	code, _, errOut := run(t, testApp(), "01", "   ")
	if code == 0 || !strings.Contains(errOut, "Key path cannot be empty.") {
		t.Fatalf("expected blank key error, got %d %q", code, errOut)
	}
}

func TestRoot_FileNumberNotFound(t *testing.T) {
	workspace(t, map[string]string{"filea.txt": "x"})
	code, _, errOut := run(t, testApp(), "05")
	if code == 0 || !strings.Contains(errOut, "File number 05 not found") {
		t.Fatalf("expected not found error, got %d %q", code, errOut)
	}
}

func TestRoot_NoFilesForNumber(t *testing.T) {
	workspace(t, nil)
	code, _, errOut := run(t, testApp(), "01")
	if code == 0 || !strings.Contains(errOut, "No files available in data directory") {
		t.Fatalf("expected no files error, got %d %q", code, errOut)
	}
}

func TestRoot_MissingKey(t *testing.T) {
	workspace(t, map[string]string{"filea.txt": "x"})
	code, out, errOut := run(t, testApp(), "01", "ghost.txt")
	if code == 0 || !strings.Contains(errOut, "Failed to load key file: ghost.txt") {
		t.Fatalf("expected key load error, got %d %q", code, errOut)
	}
	if strings.Contains(out, "x\n") {
		t.Fatalf("content must not be printed without a key, got %q", out)
	}
}

func TestRoot_Help(t *testing.T) {
	workspace(t, nil)
	for _, flag := range []string{"-h", "--help"} {
		code, out, _ := run(t, testApp(), flag)
		if code != 0 {
			t.Fatalf("%s: expected exit 0, got %d", flag, code)
		}
		if !strings.Contains(out, "Usage:") || !strings.Contains(out, "topsecret <NN> <KEY_PATH>") {
			t.Fatalf("%s: expected usage, got %q", flag, out)
		}
	}
}

func TestRoot_CopyFlag(t *testing.T) {
	workspace(t, map[string]string{"filea.txt": "BCD"})
	a := testApp()
	var copied string
	a.copyFunc = func(s string) error { copied = s; return nil }

	code, _, errOut := run(t, a, "--copy", "01")
	if code != 0 || copied != "ABC\n" {
		t.Fatalf("expected copied content, got %d %q", code, copied)
	}
	if !strings.Contains(errOut, "copied to the clipboard") {
		t.Fatalf("expected copy notice on stderr, got %q", errOut)
	}

	a = testApp()
	a.copyFunc = func(string) error { return errors.New("no clipboard") }
	code, out, errOut := run(t, a, "--copy", "01")
	if code != 0 || out != "ABC\n" || !strings.Contains(errOut, "no clipboard") {
		t.Fatalf("clipboard failure should only warn, got %d %q %q", code, out, errOut)
	}
}

func TestRoot_BadConfigFile(t *testing.T) {
	tmp := workspace(t, nil)
	code, _, errOut := run(t, testApp(), "--config", filepath.Join(tmp, "absent.yaml"))
	if code == 0 || !strings.Contains(errOut, "Could not load config") {
		t.Fatalf("expected config error, got %d %q", code, errOut)
	}
}

func TestRoot_GermanOutput(t *testing.T) {
	workspace(t, nil)
	code, out, _ := run(t, testApp(), "--lang", "de")
	if code != 0 || out != "Keine Dateien verfügbar.\n" {
		t.Fatalf("expected German output, got %d %q", code, out)
	}
}

func TestHistory_Disabled(t *testing.T) {
	workspace(t, nil)
	code, out, _ := run(t, testApp(), "history")
	if code != 0 || !strings.Contains(out, "Access history is disabled") {
		t.Fatalf("expected disabled notice, got %d %q", code, out)
	}
}

func TestHistory_RecordsReveals(t *testing.T) {
	tmp := workspace(t, map[string]string{"filea.txt": "BCD"})
	t.Setenv("TOPSECRET_AUDIT_ENABLED", "true")
	t.Setenv("TOPSECRET_AUDIT_DSN", filepath.Join(tmp, "audit.db"))

	if code, _, errOut := run(t, testApp(), "01"); code != 0 {
		t.Fatalf("reveal failed: %q", errOut)
	}
	if code, _, _ := run(t, testApp(), "01", "ghost.txt"); code == 0 {
		t.Fatalf("expected key failure")
	}

	code, out, errOut := run(t, testApp(), "history")
	if code != 0 {
		t.Fatalf("history failed: %q", errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 history lines, got %q", out)
	}
	if !strings.Contains(lines[0], "REVEAL_FAIL") || !strings.Contains(lines[1], "REVEAL_OK") {
		t.Fatalf("expected newest first, got %q", out)
	}
	if !strings.Contains(lines[1], "filea.txt") {
		t.Fatalf("expected file name in history, got %q", lines[1])
	}
}

func TestRoot_AuditOpenFailureStillReveals(t *testing.T) {
	workspace(t, map[string]string{"filea.txt": "BCD"})
	t.Setenv("TOPSECRET_AUDIT_ENABLED", "true")

	a := testApp()
	a.openAudit = func(context.Context, string, string) (audit.Store, error) {
		return nil, errors.New("database is locked")
	}
	code, out, errOut := run(t, a, "01")
	if code != 0 || out != "ABC\n" {
		t.Fatalf("expected reveal to succeed, got %d %q (stderr %q)", code, out, errOut)
	}
	if !strings.Contains(errOut, "database is locked") {
		t.Fatalf("expected audit warning on stderr, got %q", errOut)
	}
}

func TestRoot_AuditOpenLoggedAtInfo(t *testing.T) {
	workspace(t, map[string]string{})
	t.Setenv("TOPSECRET_AUDIT_ENABLED", "true")

	a := testApp()
	a.openAudit = func(context.Context, string, string) (audit.Store, error) {
		return audit.Nop{}, nil
	}
	code, _, errOut := run(t, a, "--log-level", "info")
	if code != 0 || !strings.Contains(errOut, "sqlite store opened") {
		t.Fatalf("expected info log for opened store, got %d %q", code, errOut)
	}
}

func TestBrowse_RequiresTerminal(t *testing.T) {
	workspace(t, nil)
	prev := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = prev }()

	code, _, errOut := run(t, testApp(), "browse")
	if code == 0 || !strings.Contains(errOut, "interactive terminal") {
		t.Fatalf("expected tty error, got %d %q", code, errOut)
	}
}

func TestIsTwoDigitCode(t *testing.T) {
	for s, want := range map[string]bool{"01": true, "99": true, "1": false, "001": false, "a1": false, "": false} {
		if got := IsTwoDigitCode(s); got != want {
			t.Fatalf("IsTwoDigitCode(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestConfigInit_WritesResolvedConfig(t *testing.T) {
	tmp := workspace(t, nil)
	path := filepath.Join(tmp, "conf", "topsecret.yaml")

	code, out, errOut := run(t, testApp(), "config", "init", "-o", path, "--data-dir", "vault")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, errOut)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected written path in output, got %q", out)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "data_dir: vault") {
		t.Fatalf("expected resolved data_dir in config, got %q", data)
	}

	code, _, errOut = run(t, testApp(), "config", "init", "-o", path)
	if code == 0 || !strings.Contains(errOut, "already exists") {
		t.Fatalf("expected refusal to overwrite, got %d %q", code, errOut)
	}
	if code, _, errOut = run(t, testApp(), "config", "init", "-o", path, "--force"); code != 0 {
		t.Fatalf("expected --force to overwrite, got %d %q", code, errOut)
	}
}

func TestConfigInit_DefaultPathIsLoaded(t *testing.T) {
	workspace(t, map[string]string{})
	path, err := config.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath: %v", err)
	}

	if code, _, errOut := run(t, testApp(), "config", "init", "--lang", "de"); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, errOut)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config at %s: %v", path, err)
	}

	code, out, _ := run(t, testApp())
	if code != 0 || out != "Keine Dateien verfügbar.\n" {
		t.Fatalf("expected language from written config, got %d %q", code, out)
	}
}
