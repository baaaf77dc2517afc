package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyunomas/dupr/internal/entities"
	"github.com/soyunomas/dupr/internal/logger"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { logger.Init(logger.Options{}) })

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func fixture(t *testing.T) (root, a, b string) {
	t.Helper()
	root = t.TempDir()
	a = filepath.Join(root, "a.txt")
	b = filepath.Join(root, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.txt"), []byte("world"), 0o644))
	return root, a, b
}

func TestRoot_DefaultOutput(t *testing.T) {
	root, a, b := fixture(t)

	stdout, stderr, err := execute(t, "-q", root)
	require.NoError(t, err)
	assert.Equal(t, a+"\n"+b+"\n", stdout)
	assert.Empty(t, stderr)
}

func TestRoot_SizeSameLineSummary(t *testing.T) {
	root, a, b := fixture(t)

	stdout, _, err := execute(t, "-q", "-S", "-1", "-s", root)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"5 bytes each:",
		a + "-" + b,
		"",
		"Processed 3 files with a total size of 15 bytes. 2 duplicates found.",
		"",
	}, "\n"), stdout)
}

func TestRoot_NoEmptySummary(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "e1"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "e2"), nil, 0o644))

	stdout, _, err := execute(t, "--noempty", "--summary", root)
	require.NoError(t, err)
	assert.Equal(t, "Processed 0 files with a total size of 0 bytes. 0 duplicates found.\n", stdout)
}

func TestRoot_JSON(t *testing.T) {
	root, a, b := fixture(t)

	stdout, _, err := execute(t, "--json", root)
	require.NoError(t, err)

	var rep struct {
		Summary struct {
			TotalFilesScanned uint64 `json:"total_files_scanned"`
			TotalDuplicates   uint64 `json:"total_duplicates"`
		} `json:"summary"`
		Groups []struct {
			Paths []string `json:"paths"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, uint64(3), rep.Summary.TotalFilesScanned)
	assert.Equal(t, uint64(2), rep.Summary.TotalDuplicates)
	require.Len(t, rep.Groups, 1)
	assert.Equal(t, []string{a, b}, rep.Groups[0].Paths)
}

func TestRoot_ConfigFile(t *testing.T) {
	root, _, _ := fixture(t)
	cfgPath := filepath.Join(t.TempDir(), "dupr.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("summary: true\nquiet: true\n"), 0o644))

	stdout, _, err := execute(t, "-c", cfgPath, root)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stdout, "2 duplicates found.\n"))
}

func TestRoot_MissingRootFails(t *testing.T) {
	_, _, err := execute(t, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrRootUnreadable)
}

func TestRoot_RequiresExactlyOneDir(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)

	_, _, err = execute(t, "a", "b")
	require.Error(t, err)
}

func TestRoot_UnreadableFileStillExitsCleanly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}

	root, a, b := fixture(t)
	locked := filepath.Join(root, "locked.txt")
	require.NoError(t, os.WriteFile(locked, []byte("hello"), 0o644))
	require.NoError(t, os.Chmod(locked, 0o000))

	stdout, stderr, err := execute(t, "-q", root)
	require.NoError(t, err)
	assert.Equal(t, a+"\n"+b+"\n", stdout)
	assert.Contains(t, stderr, "dupr: skipping file: hash read failed")
	assert.Contains(t, stderr, "locked.txt")
}
