package scanner

import (
	"sort"

	"github.com/scylladb/go-set/strset"

	"github.com/soyunomas/dupr/internal/entities"
)

// Bucket agrupa los archivos que comparten tamaño exacto.
type Bucket struct {
	Size    uint64
	Entries []entities.FileEntry
}

// Buckets es el mapa inicial: [Tamaño] -> [Archivos].
// Es un pre-filtro barato: dos duplicados siempre tienen el mismo tamaño.
type Buckets struct {
	bySize map[uint64][]entities.FileEntry
	seen   *strset.Set
}

// NewBuckets crea un agrupador vacío.
func NewBuckets() *Buckets {
	return &Buckets{
		bySize: make(map[uint64][]entities.FileEntry),
		seen:   strset.New(),
	}
}

// Add agrega una entrada a su bucket. Una ruta repetida se ignora.
func (b *Buckets) Add(e entities.FileEntry) {
	if b.seen.Has(e.Path) {
		return
	}
	b.seen.Add(e.Path)
	b.bySize[e.Size] = append(b.bySize[e.Size], e)
}

// Len devuelve el número de tamaños distintos.
func (b *Buckets) Len() int {
	return len(b.bySize)
}

// Files devuelve el número total de entradas.
func (b *Buckets) Files() int {
	return b.seen.Size()
}

// Candidates devuelve los buckets con 2 o más miembros, ordenados por tamaño,
// con las entradas ordenadas por ruta para que la salida sea determinista.
func (b *Buckets) Candidates() []Bucket {
	sizes := make([]uint64, 0, len(b.bySize))
	for size, entries := range b.bySize {
		if len(entries) > 1 {
			sizes = append(sizes, size)
		}
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	out := make([]Bucket, 0, len(sizes))
	for _, size := range sizes {
		entries := append([]entities.FileEntry(nil), b.bySize[size]...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
		out = append(out, Bucket{Size: size, Entries: entries})
	}
	return out
}
