//go:build !windows

package fileid

import (
	"os"
	"syscall"

	"github.com/soyunomas/dupr/internal/entities"
)

// getFileID usa syscall.Stat directo en lugar de os.Stat (más rápido).
func getFileID(path string) (entities.FileIdentity, error) {
	var stat syscall.Stat_t
	if err := syscall.Stat(path, &stat); err != nil {
		return entities.FileIdentity{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}

	return entities.FileIdentity{
		Device: uint64(stat.Dev), //nolint:unconvert // Dev es int32 en darwin
		Inode:  uint64(stat.Ino),
	}, nil
}
