package progress

import (
	"sync/atomic"
	"time"
)

// Tracker lleva contadores vivos actualizados por las etapas del pipeline.
// Todos los métodos aceptan un receptor nil, así el core funciona sin progreso.
type Tracker struct {
	filesScanned atomic.Uint64
	bytesScanned atomic.Uint64
	filesHashed  atomic.Uint64
	errors       atomic.Uint64
	startTime    time.Time
}

// NewTracker crea un tracker con la hora de inicio actual.
func NewTracker() *Tracker {
	return &Tracker{startTime: time.Now()}
}

// Snapshot es una copia consistente de los contadores.
type Snapshot struct {
	FilesScanned uint64
	BytesScanned uint64
	FilesHashed  uint64
	Errors       uint64
	Duration     time.Duration
}

// FileScanned registra un archivo entregado por el walker.
func (t *Tracker) FileScanned(size uint64) {
	if t == nil {
		return
	}
	t.filesScanned.Add(1)
	t.bytesScanned.Add(size)
}

// FileHashed registra un hash completado.
func (t *Tracker) FileHashed() {
	if t == nil {
		return
	}
	t.filesHashed.Add(1)
}

// Error registra un error recuperable.
func (t *Tracker) Error() {
	if t == nil {
		return
	}
	t.errors.Add(1)
}

// Snapshot devuelve el estado actual.
func (t *Tracker) Snapshot() Snapshot {
	if t == nil {
		return Snapshot{}
	}
	return Snapshot{
		FilesScanned: t.filesScanned.Load(),
		BytesScanned: t.bytesScanned.Load(),
		FilesHashed:  t.filesHashed.Load(),
		Errors:       t.errors.Load(),
		Duration:     time.Since(t.startTime),
	}
}
