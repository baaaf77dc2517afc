package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/soyunomas/dupr/internal/entities"
	"github.com/soyunomas/dupr/internal/fileid"
	"github.com/soyunomas/dupr/internal/scanner"
)

// Representative es la única ruta que se hashea por cada identidad física.
// Aliases son las demás rutas (hard links) que comparten esa identidad.
type Representative struct {
	entities.FileEntry
	Identity entities.FileIdentity
	Aliases  []string
}

// CollapseResult resume lo que hizo el collapser sobre un bucket.
type CollapseResult struct {
	Representatives []Representative
	HardLinks       int // rutas descartadas por ser alias de otra
	Errors          int // rutas descartadas por fallo de metadata
}

// Collapse agrupa un bucket por identidad (device, inode) y deja un representante
// por identidad: el primero en el orden del bucket.
// Un bucket con menos de 2 entradas se devuelve tal cual, sin resolver identidades.
func Collapse(bucket scanner.Bucket, resolve fileid.Resolver, log *logrus.Entry) CollapseResult {
	var res CollapseResult

	if len(bucket.Entries) < 2 {
		for _, e := range bucket.Entries {
			res.Representatives = append(res.Representatives, Representative{FileEntry: e})
		}
		return res
	}

	index := make(map[entities.FileIdentity]int, len(bucket.Entries))
	for _, e := range bucket.Entries {
		id, err := resolve(e.Path)
		if err != nil {
			log.WithError(err).Warn("skipping file")
			res.Errors++
			continue
		}

		if i, ok := index[id]; ok {
			rep := &res.Representatives[i]
			rep.Aliases = append(rep.Aliases, e.Path)
			res.HardLinks++
			log.Debugf("Hard link %s -> %s (%s)", e.Path, rep.Path, id)
			continue
		}

		index[id] = len(res.Representatives)
		res.Representatives = append(res.Representatives, Representative{
			FileEntry: e,
			Identity:  id,
		})
	}

	return res
}
