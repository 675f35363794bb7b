package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

type session struct {
	t   *testing.T
	dir string
}

func newSession(t *testing.T) *session {
	return &session{t: t, dir: t.TempDir()}
}

// run invokes the CLI with stdin and returns exit code, stdout and stderr.
func (s *session) run(stdin string, args ...string) (int, string, string) {
	s.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--dir", s.dir, "--theme", "mono"}, args...)
	code := Run(full, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestAddListToggleRemove(t *testing.T) {
	s := newSession(t)

	code, out, _ := s.run("", "add", "Buy", "milk")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "added #1")

	_, err := os.Stat(filepath.Join(s.dir, sqlitestore.FileName))
	require.NoError(t, err)

	code, out, _ = s.run("", "ls")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "#1   [ ] Buy milk")

	code, _, _ = s.run("", "done", "1")
	require.Equal(t, exitOK, code)

	code, out, _ = s.run("", "ls", "--filter", "completed")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "#1   [x] Buy milk")

	code, out, _ = s.run("", "ls", "-f", "incomplete")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "no todos")

	code, out, _ = s.run("", "rm", "1", "--yes")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "removed")

	_, out, _ = s.run("", "ls")
	assert.Contains(t, out, "no todos")
}

func TestRemoveAsksForConfirmation(t *testing.T) {
	s := newSession(t)
	s.run("", "add", "keep")

	code, out, _ := s.run("n\n", "rm", "1")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Are you sure you want to delete this todo?")
	assert.Contains(t, out, "cancelled")

	_, out, _ = s.run("", "ls")
	assert.Contains(t, out, "keep")

	code, out, _ = s.run("y\n", "rm", "1")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "removed")
}

func TestEditRules(t *testing.T) {
	s := newSession(t)
	s.run("", "add", "Buy milk")

	code, _, _ := s.run("", "edit", "1", "Buy", "oat", "milk")
	require.Equal(t, exitOK, code)
	_, out, _ := s.run("", "ls")
	assert.Contains(t, out, "#1   [ ] Buy oat milk")

	s.run("", "done", "1")
	code, _, errOut := s.run("", "edit", "1", "again")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "you cannot edit a completed todo")
}

func TestUsageErrors(t *testing.T) {
	s := newSession(t)

	tests := []struct {
		name string
		args []string
	}{
		{"add without name", []string{"add"}},
		{"blank name", []string{"add", "   "}},
		{"bad id", []string{"done", "abc"}},
		{"missing id", []string{"done", "7"}},
		{"bad filter", []string{"ls", "--filter", "someday"}},
		{"unknown flag", []string{"ls", "--nope"}},
		{"unknown command", []string{"frobnicate"}},
		{"bad theme", []string{"--theme", "solarized", "ls"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := s.run("", tt.args...)
			assert.Equal(t, exitUsage, code, errOut)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestExportImport(t *testing.T) {
	src := newSession(t)
	src.run("", "add", "one")
	src.run("", "add", "two")
	src.run("", "done", "2")

	file := filepath.Join(t.TempDir(), "backup.json")
	code, _, _ := src.run("", "export", file)
	require.Equal(t, exitOK, code)

	code, out, _ := src.run("", "export")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `"name": "two"`)

	dst := newSession(t)
	code, out, _ = dst.run("", "import", file)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "imported 2 todos")

	_, out, _ = dst.run("", "ls")
	assert.Contains(t, out, "[ ] one")
	assert.Contains(t, out, "[x] two")
}

func TestImportRejectsBlankNames(t *testing.T) {
	s := newSession(t)
	file := filepath.Join(t.TempDir(), "blank.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"id":1,"name":"ok"},{"id":2,"name":"   "}]`), 0o644))

	code, _, errOut := s.run("", "import", file)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "empty name")

	_, out, _ := s.run("", "ls")
	assert.Contains(t, out, "no todos")
}

func TestExitCodeIgnoresMessageText(t *testing.T) {
	assert.Equal(t, exitError, exitCode(errors.New("unknown failure")))
	assert.Equal(t, exitUsage, exitCode(usage("unknown thing")))
}

func TestConfigInitAndPrint(t *testing.T) {
	s := newSession(t)

	code, _, _ := s.run("", "config", "init")
	require.Equal(t, exitOK, code)

	code, out, _ := s.run("", "config")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "theme: mono")
	assert.Contains(t, out, "confirm_delete: true")
}

func TestStoreFailuresAreLogged(t *testing.T) {
	// a directory where the database file should be makes every open fail
	other := newSession(t)
	require.NoError(t, os.Mkdir(filepath.Join(other.dir, sqlitestore.FileName), 0o700))
	code, _, errOut := other.run("", "ls")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "store open")

	b, err := os.ReadFile(filepath.Join(other.dir, logging.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(b), "failed to open database")
}
