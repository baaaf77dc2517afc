// Package fileid resuelve la identidad física (device + inode) de una ruta
// para detectar hard links.
package fileid

import (
	"github.com/soyunomas/dupr/internal/entities"
)

// Resolver devuelve la identidad de una ruta.
type Resolver func(path string) (entities.FileIdentity, error)

// Resolve obtiene la identidad de path. Los fallos se devuelven como ErrMetadata
// para que el llamador salte la ruta sin abortar la ejecución.
func Resolve(path string) (entities.FileIdentity, error) {
	id, err := getFileID(path)
	if err != nil {
		return entities.FileIdentity{}, entities.NewPathError(entities.ErrMetadata, path, err)
	}
	return id, nil
}
