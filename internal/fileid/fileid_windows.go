//go:build windows

package fileid

import (
	"os"
	"syscall"

	"github.com/pkg/errors"

	"github.com/soyunomas/dupr/internal/entities"
)

// getFileID combina el número de serie del volumen con el índice del archivo.
// Device = VolumeSerialNumber, Inode = (FileIndexHigh << 32) | FileIndexLow
func getFileID(path string) (entities.FileIdentity, error) {
	pathp, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return entities.FileIdentity{}, errors.Wrap(err, "convert path to UTF16")
	}

	h, err := syscall.CreateFile(pathp, 0, 0, nil, syscall.OPEN_EXISTING, syscall.FILE_FLAG_BACKUP_SEMANTICS, 0)
	if err != nil {
		return entities.FileIdentity{}, &os.PathError{Op: "open", Path: path, Err: err}
	}
	defer syscall.CloseHandle(h)

	var info syscall.ByHandleFileInformation
	if err := syscall.GetFileInformationByHandle(h, &info); err != nil {
		return entities.FileIdentity{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}

	return entities.FileIdentity{
		Device: uint64(info.VolumeSerialNumber),
		Inode:  (uint64(info.FileIndexHigh) << 32) | uint64(info.FileIndexLow),
	}, nil
}
