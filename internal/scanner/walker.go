package scanner

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/soyunomas/dupr/internal/entities"
	"github.com/soyunomas/dupr/internal/logger"
	"github.com/soyunomas/dupr/internal/progress"
)

// Config define las reglas para el escaneo.
type Config struct {
	NoEmpty  bool     // Ignorar archivos de 0 bytes
	MinSize  uint64   // Tamaño mínimo en bytes para considerar
	Excludes []string // Lista de carpetas a ignorar
	Workers  int      // Goroutines de fastwalk (0 = auto)

	Log      *logrus.Entry
	Progress *progress.Tracker
}

// Walker encapsula la lógica de recorrido del sistema de archivos.
type Walker struct {
	cfg        Config
	minSize    uint64
	excludeMap map[string]struct{} // Optimización O(1)
	log        *logrus.Entry
}

// NewWalker crea una nueva instancia del walker con configuración.
func NewWalker(cfg Config) *Walker {
	// Pre-procesamos excludes a un mapa para búsquedas instantáneas
	exMap := make(map[string]struct{}, len(cfg.Excludes))
	for _, e := range cfg.Excludes {
		exMap[e] = struct{}{}
	}

	minSize := cfg.MinSize
	if cfg.NoEmpty && minSize == 0 {
		minSize = 1
	}

	log := cfg.Log
	if log == nil {
		log = logger.GetLogger("walker")
	}

	return &Walker{
		cfg:        cfg,
		minSize:    minSize,
		excludeMap: exMap,
		log:        log,
	}
}

// Walk recorre root y entrega cada archivo regular a fn.
// fn nunca se llama de forma concurrente. Los errores por entrada se reportan y se saltan;
// solo un root ilegible devuelve error (ErrRootUnreadable).
func (w *Walker) Walk(root string, fn func(entities.FileEntry)) (entities.RunStats, error) {
	var stats entities.RunStats

	root, err := openRoot(root)
	if err != nil {
		return stats, err
	}

	numWorkers := w.cfg.Workers
	if numWorkers <= 0 {
		numWorkers = fastwalk.DefaultNumWorkers()
	}
	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: numWorkers,
	}

	// fastwalk llama al callback desde varias goroutines; serializamos la entrega.
	var mu sync.Mutex

	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		// 1. Manejo de errores de acceso (permisos, carreras con borrados)
		if err != nil {
			mu.Lock()
			stats.Errors++
			mu.Unlock()
			w.report(entities.NewPathError(entities.ErrEntryTraversal, path, err))
			return nil
		}

		// 2. Si es directorio, verificamos si debemos ignorarlo
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, ok := w.excludeMap[d.Name()]; ok {
				w.log.Debugf("Skipping excluded directory: %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		// 3. Solo archivos regulares (symlinks, sockets, dispositivos fuera)
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			mu.Lock()
			stats.Errors++
			mu.Unlock()
			w.report(entities.NewPathError(entities.ErrEntryTraversal, path, err))
			return nil
		}
		// El archivo pudo cambiar de tipo entre readdir y lstat.
		if !info.Mode().IsRegular() {
			return nil
		}

		// 4. Filtro de Tamaño
		size := uint64(info.Size())
		if size < w.minSize {
			return nil
		}

		entry := entities.FileEntry{Path: path, Size: size}

		mu.Lock()
		defer mu.Unlock()
		stats.AddFile(size)
		w.cfg.Progress.FileScanned(size)
		fn(entry)
		return nil
	})
	if err != nil {
		return stats, entities.NewPathError(entities.ErrRootUnreadable, root, err)
	}
	return stats, nil
}

func (w *Walker) report(err error) {
	w.cfg.Progress.Error()
	w.log.WithError(err).Warn("skipping entry")
}

// openRoot valida que root sea un directorio legible y resuelve un root que sea symlink.
func openRoot(root string) (string, error) {
	root = filepath.Clean(root)

	info, err := os.Lstat(root)
	if err != nil {
		return root, entities.NewPathError(entities.ErrRootUnreadable, root, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return root, entities.NewPathError(entities.ErrRootUnreadable, root, err)
		}
		root = resolved
		if info, err = os.Stat(root); err != nil {
			return root, entities.NewPathError(entities.ErrRootUnreadable, root, err)
		}
	}
	if !info.IsDir() {
		return root, entities.NewPathError(entities.ErrRootUnreadable, root, errors.Errorf("%s: not a directory", root))
	}

	f, err := os.Open(root)
	if err != nil {
		return root, entities.NewPathError(entities.ErrRootUnreadable, root, err)
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && err != io.EOF {
		return root, entities.NewPathError(entities.ErrRootUnreadable, root, err)
	}
	return root, nil
}
