package hasher

import (
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/soyunomas/dupr/internal/entities"
)

// BlockSize optimiza la lectura del disco (32KB es un buen estándar)
const BlockSize = 32 * 1024

// PreHashSize define cuánto leemos para la prueba rápida (4KB)
const PreHashSize = 4 * 1024

// DefaultSeed mantiene los hashes reproducibles entre ejecuciones.
const DefaultSeed uint64 = 0

// bufferPool solo para cargas pesadas (HashFile completo)
var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, BlockSize)
		return &b
	},
}

// Hasher calcula xxhash64 con una semilla fija para toda la ejecución.
// Es seguro para uso concurrente.
type Hasher struct {
	seed    uint64
	digests sync.Pool
}

// New crea un Hasher con la semilla indicada.
func New(seed uint64) *Hasher {
	h := &Hasher{seed: seed}
	h.digests.New = func() any {
		return xxhash.NewWithSeed(seed)
	}
	return h
}

// Seed devuelve la semilla usada.
func (h *Hasher) Seed() uint64 {
	return h.seed
}

func (h *Hasher) digest() *xxhash.Digest {
	d := h.digests.Get().(*xxhash.Digest)
	d.ResetWithSeed(h.seed)
	return d
}

// HashFile calcula el hash completo. Aquí SI vale la pena usar Pools.
func (h *Hasher) HashFile(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, entities.NewPathError(entities.ErrHashIO, path, err)
	}
	defer file.Close()

	d := h.digest()
	defer h.digests.Put(d)

	bufPtr := bufferPool.Get().(*[]byte)
	buf := *bufPtr
	defer bufferPool.Put(bufPtr)

	if _, err := io.CopyBuffer(d, file, buf); err != nil {
		return 0, entities.NewPathError(entities.ErrHashIO, path, err)
	}

	return d.Sum64(), nil
}

// HashPrefix optimizado para baja latencia.
// NO usa sync.Pool de buffers para evitar contención en lecturas pequeñas.
func (h *Hasher) HashPrefix(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, entities.NewPathError(entities.ErrHashIO, path, err)
	}
	defer file.Close()

	d := h.digest()
	defer h.digests.Put(d)

	// Usamos ReadFull para asegurar consistencia.
	buf := make([]byte, PreHashSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, entities.NewPathError(entities.ErrHashIO, path, err)
	}

	_, _ = d.Write(buf[:n])

	return d.Sum64(), nil
}

// HashBytes aplica el mismo algoritmo sobre un buffer en memoria.
func (h *Hasher) HashBytes(b []byte) uint64 {
	d := h.digest()
	defer h.digests.Put(d)

	_, _ = d.Write(b)
	return d.Sum64()
}
