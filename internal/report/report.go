package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soyunomas/dupr/internal/entities"
)

// DefaultSeparator une las rutas de un grupo con --sameline.
const DefaultSeparator = "-"

// Format controla la salida de texto.
type Format struct {
	ShowSize  bool   // "<n> bytes each:" antes de cada grupo
	SameLine  bool   // todas las rutas del grupo en una línea
	Separator string // separador para SameLine
}

// WriteGroups escribe los grupos en texto plano: una ruta por línea
// y una línea en blanco entre grupos.
func WriteGroups(w io.Writer, groups []entities.DuplicateGroup, f Format) error {
	sep := f.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	bw := bufio.NewWriter(w)
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		if f.ShowSize {
			fmt.Fprintf(bw, "%d bytes each:\n", g.Key.Size)
		}
		if f.SameLine {
			fmt.Fprintln(bw, strings.Join(g.Paths, sep))
			continue
		}
		for _, p := range g.Paths {
			fmt.Fprintln(bw, p)
		}
	}
	return bw.Flush()
}

// SummaryLine formatea los totales de la ejecución.
func SummaryLine(s entities.RunStats) string {
	return fmt.Sprintf("Processed %d files with a total size of %d bytes. %d duplicates found.",
		s.FileCount, s.TotalSize, s.DuplicateCount)
}

// --- ESTRUCTURAS PARA EL REPORTE JSON ---

type Report struct {
	Summary  Summary       `json:"summary"`
	Groups   []GroupResult `json:"groups"`
	Metadata Metadata      `json:"metadata"`
}

type Metadata struct {
	ScannedPath string    `json:"scanned_path"`
	Seed        uint64    `json:"seed"`
	Timestamp   time.Time `json:"timestamp"`
	Duration    string    `json:"duration_human"`
}

type Summary struct {
	TotalFilesScanned uint64 `json:"total_files_scanned"`
	TotalSize         uint64 `json:"total_size"`
	TotalSizeHuman    string `json:"total_size_human"`
	DuplicateGroups   uint64 `json:"duplicate_groups"`
	TotalDuplicates   uint64 `json:"total_duplicates"`
	TotalHardLinks    uint64 `json:"total_hard_links"`
	Errors            uint64 `json:"errors"`
	BytesRecoverable  uint64 `json:"bytes_recoverable"`
	BytesRecoverableH string `json:"bytes_recoverable_human"`
}

type GroupResult struct {
	Hash      string   `json:"hash"`
	Size      uint64   `json:"file_size"`
	Paths     []string `json:"paths"`
	HardLinks []string `json:"hardlinks"`
}

// New arma el reporte JSON. Recuperable = todas las copias salvo una por grupo.
func New(rootDir string, seed uint64, groups []entities.DuplicateGroup, stats entities.RunStats) Report {
	rep := Report{
		Metadata: Metadata{
			ScannedPath: rootDir,
			Seed:        seed,
			Timestamp:   time.Now(),
			Duration:    stats.Duration.String(),
		},
		Summary: Summary{
			TotalFilesScanned: stats.FileCount,
			TotalSize:         stats.TotalSize,
			TotalSizeHuman:    humanize.IBytes(stats.TotalSize),
			DuplicateGroups:   stats.DuplicateGroups,
			TotalDuplicates:   stats.DuplicateCount,
			TotalHardLinks:    stats.HardLinks,
			Errors:            stats.Errors,
		},
		Groups: []GroupResult{},
	}

	for _, g := range groups {
		hardLinks := g.HardLinks
		if hardLinks == nil {
			hardLinks = []string{}
		}
		rep.Groups = append(rep.Groups, GroupResult{
			Hash:      fmt.Sprintf("%016x", g.Key.Hash),
			Size:      g.Key.Size,
			Paths:     g.Paths,
			HardLinks: hardLinks,
		})
		rep.Summary.BytesRecoverable += g.Key.Size * uint64(g.Count()-1)
	}
	rep.Summary.BytesRecoverableH = humanize.IBytes(rep.Summary.BytesRecoverable)

	return rep
}

// WriteJSON escribe el reporte indentado.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
