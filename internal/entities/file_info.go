package entities

import (
	"fmt"
	"time"
)

// FileEntry representa un archivo regular encontrado por el walker.
// Es inmutable una vez creado.
type FileEntry struct {
	Path string `json:"path"`
	Size uint64 `json:"size_bytes"`
}

// FileIdentity identifica el objeto físico en disco (device + inode).
// Dos rutas con la misma identidad son hard links del mismo contenido.
type FileIdentity struct {
	Device uint64 `json:"device_id"`
	Inode  uint64 `json:"inode"`
}

func (id FileIdentity) String() string {
	return fmt.Sprintf("%d:%d", id.Device, id.Inode)
}

// DuplicateKey agrupa archivos por tamaño + hash de contenido.
type DuplicateKey struct {
	Size uint64 `json:"size_bytes"`
	Hash uint64 `json:"hash"`
}

// Less ordena primero por tamaño y luego por hash.
func (k DuplicateKey) Less(o DuplicateKey) bool {
	if k.Size != o.Size {
		return k.Size < o.Size
	}
	return k.Hash < o.Hash
}

// DuplicateGroup representa un conjunto de rutas con el mismo contenido.
// Paths solo contiene representantes (nunca dos rutas con la misma identidad).
// HardLinks guarda los alias descartados por el collapser, solo a título informativo.
type DuplicateGroup struct {
	Key       DuplicateKey `json:"key"`
	Paths     []string     `json:"paths"`
	HardLinks []string     `json:"hardlinks,omitempty"`
}

// Add agrega una ruta al grupo
func (g *DuplicateGroup) Add(path string) {
	g.Paths = append(g.Paths, path)
}

// Count devuelve el número de miembros del grupo.
func (g *DuplicateGroup) Count() int {
	return len(g.Paths)
}

// RunStats acumula los totales de una ejecución.
// DuplicateCount cuenta archivos duplicados (suma de miembros de todos los grupos),
// no grupos; DuplicateGroups lleva la cuenta de grupos.
type RunStats struct {
	FileCount       uint64        `json:"file_count"`
	TotalSize       uint64        `json:"total_size"`
	DuplicateCount  uint64        `json:"duplicate_count"`
	DuplicateGroups uint64        `json:"duplicate_groups"`
	HardLinks       uint64        `json:"hard_links"`
	Errors          uint64        `json:"errors"`
	Duration        time.Duration `json:"duration"`
}

// AddFile registra un archivo entregado por el walker.
func (s *RunStats) AddFile(size uint64) {
	s.FileCount++
	s.TotalSize += size
}

// AddGroup registra un grupo de duplicados emitido.
func (s *RunStats) AddGroup(g DuplicateGroup) {
	s.DuplicateGroups++
	s.DuplicateCount += uint64(g.Count())
}

// Merge suma los contadores de otra etapa.
func (s *RunStats) Merge(o RunStats) {
	s.FileCount += o.FileCount
	s.TotalSize += o.TotalSize
	s.DuplicateCount += o.DuplicateCount
	s.DuplicateGroups += o.DuplicateGroups
	s.HardLinks += o.HardLinks
	s.Errors += o.Errors
	s.Duration += o.Duration
}
