package engine

import (
	"sort"

	"github.com/soyunomas/dupr/internal/entities"
)

// sortGroups deja la salida determinista: el mapa de agrupación no tiene orden,
// así que ordenamos rutas dentro de cada grupo y luego los grupos por
// (tamaño, hash, primera ruta).
func sortGroups(groups []entities.DuplicateGroup) {
	for i := range groups {
		sort.Strings(groups[i].Paths)
		sort.Strings(groups[i].HardLinks)
	}

	sort.Slice(groups, func(i, j int) bool {
		g1 := groups[i]
		g2 := groups[j]

		if g1.Key != g2.Key {
			return g1.Key.Less(g2.Key)
		}

		// Desempate (último recurso): alfabético por la primera ruta
		return g1.Paths[0] < g2.Paths[0]
	})
}
