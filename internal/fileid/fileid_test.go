//go:build !windows

package fileid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyunomas/dupr/internal/entities"
)

func TestResolve_HardLinkSharesIdentity(t *testing.T) {
	dir := t.TempDir()
	x := filepath.Join(dir, "x")
	y := filepath.Join(dir, "y")
	z := filepath.Join(dir, "z")
	require.NoError(t, os.WriteFile(x, []byte("data"), 0o644))
	require.NoError(t, os.Link(x, y))
	require.NoError(t, os.WriteFile(z, []byte("data"), 0o644))

	idX, err := Resolve(x)
	require.NoError(t, err)
	idY, err := Resolve(y)
	require.NoError(t, err)
	idZ, err := Resolve(z)
	require.NoError(t, err)

	assert.Equal(t, idX, idY)
	assert.NotEqual(t, idX, idZ)
}

func TestResolve_MissingPath(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrMetadata)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
