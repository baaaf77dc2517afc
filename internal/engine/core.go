package engine

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"
	"github.com/sirupsen/logrus"

	"github.com/soyunomas/dupr/internal/entities"
	"github.com/soyunomas/dupr/internal/fileid"
	"github.com/soyunomas/dupr/internal/hasher"
	"github.com/soyunomas/dupr/internal/logger"
	"github.com/soyunomas/dupr/internal/progress"
	"github.com/soyunomas/dupr/internal/scanner"
)

// ContentHasher calcula el hash de contenido de una ruta.
type ContentHasher interface {
	HashFile(path string) (uint64, error)
	HashPrefix(path string) (uint64, error)
}

type Options struct {
	NoEmpty  bool
	MinSize  uint64
	Excludes []string
	Workers  int    // Goroutines de hashing (0 = NumCPU)
	Seed     uint64 // Semilla de xxhash, fija para toda la ejecución

	Hasher   ContentHasher   // nil = hasher.New(Seed)
	Resolve  fileid.Resolver // nil = fileid.Resolve
	Log      *logrus.Entry
	Progress *progress.Tracker
}

// Result es la salida del pipeline.
type Result struct {
	Groups []entities.DuplicateGroup
	Stats  entities.RunStats
}

type Runner struct {
	opts    Options
	hasher  ContentHasher
	resolve fileid.Resolver
	log     *logrus.Entry
}

func New(opts Options) *Runner {
	r := &Runner{
		opts:    opts,
		hasher:  opts.Hasher,
		resolve: opts.Resolve,
		log:     opts.Log,
	}
	if r.hasher == nil {
		r.hasher = hasher.New(opts.Seed)
	}
	if r.resolve == nil {
		r.resolve = fileid.Resolve
	}
	if r.log == nil {
		r.log = logger.GetLogger("engine")
	}
	if r.opts.Workers <= 0 {
		r.opts.Workers = runtime.NumCPU()
	}
	return r
}

// candidateSet son los representantes de un bucket que siguen en carrera.
type candidateSet struct {
	size uint64
	reps []Representative
}

func (r *Runner) Run(rootDir string) (*Result, error) {
	start := time.Now()

	// --- PASO 1: WALK + BUCKETS ---
	r.log.Info("Phase 1: scanning file system")
	walker := scanner.NewWalker(scanner.Config{
		NoEmpty:  r.opts.NoEmpty,
		MinSize:  r.opts.MinSize,
		Excludes: r.opts.Excludes,
		Log:      r.log.WithField("prefix", "walker"),
		Progress: r.opts.Progress,
	})

	buckets := scanner.NewBuckets()
	stats, err := walker.Walk(rootDir, buckets.Add)
	if err != nil {
		return nil, errors.Wrap(err, "scan failed")
	}

	candidates := buckets.Candidates()
	r.log.Infof("%d files found (%s), %d size buckets with candidates",
		stats.FileCount, humanize.IBytes(stats.TotalSize), len(candidates))

	// --- PASO 2: HARD LINKS ---
	sets := make([]candidateSet, 0, len(candidates))
	for _, b := range candidates {
		res := Collapse(b, r.resolve, r.log)
		stats.HardLinks += uint64(res.HardLinks)
		stats.Errors += uint64(res.Errors)
		for i := 0; i < res.Errors; i++ {
			r.opts.Progress.Error()
		}

		// Con un solo representante no hay nada que hashear.
		if len(res.Representatives) < 2 {
			continue
		}
		sets = append(sets, candidateSet{size: b.Size, reps: res.Representatives})
	}

	// --- PASO 3: PRE-HASHING ---
	r.log.Info("Phase 2: pre-hashing (4KB check)")
	sets = r.processPreHash(sets, &stats)

	// --- PASO 4: FULL HASHING ---
	r.log.Info("Phase 3: full hashing")
	groups := r.processFullHash(sets, &stats)

	// --- PASO 5: ORDENAR Y FINALIZAR ---
	sortGroups(groups)
	for _, g := range groups {
		stats.AddGroup(g)
	}
	stats.Duration = time.Since(start)

	r.log.Infof("%d duplicate groups, %d duplicate files, %d hard links collapsed in %s",
		stats.DuplicateGroups, stats.DuplicateCount, stats.HardLinks, stats.Duration)

	return &Result{Groups: groups, Stats: stats}, nil
}

type hashJob struct {
	set, rep int
}

type hashResult struct {
	job  hashJob
	hash uint64
	err  error
}

// hashAll reparte los trabajos entre los workers. Un error de I/O en un archivo
// no cancela a los demás.
func (r *Runner) hashAll(sets []candidateSet, jobs []hashJob, fn func(string) (uint64, error)) []hashResult {
	jobCh := make(chan hashJob, len(jobs))
	resultCh := make(chan hashResult, len(jobs))

	numWorkers := r.opts.Workers
	if numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				h, err := fn(sets[j.set].reps[j.rep].Path)
				resultCh <- hashResult{job: j, hash: h, err: err}
			}
		}()
	}

	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	// Monitor de cierre
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]hashResult, 0, len(jobs))
	for res := range resultCh {
		results = append(results, res)
	}
	return results
}

// processPreHash descarta representantes cuyo primer bloque no coincide con ningún otro
// del mismo bucket. Solo aplica a archivos mayores que PreHashSize: en los demás el
// pre-hash leería el archivo entero.
func (r *Runner) processPreHash(sets []candidateSet, stats *entities.RunStats) []candidateSet {
	var jobs []hashJob
	for si, set := range sets {
		if set.size <= hasher.PreHashSize {
			continue
		}
		for ri := range set.reps {
			jobs = append(jobs, hashJob{set: si, rep: ri})
		}
	}
	if len(jobs) == 0 {
		return sets
	}

	// set -> prefijo -> índices de representantes
	prefixes := make(map[int]map[uint64][]int)
	for _, res := range r.hashAll(sets, jobs, r.hasher.HashPrefix) {
		if res.err != nil {
			r.skip(res.err, stats)
			continue
		}
		if prefixes[res.job.set] == nil {
			prefixes[res.job.set] = make(map[uint64][]int)
		}
		prefixes[res.job.set][res.hash] = append(prefixes[res.job.set][res.hash], res.job.rep)
	}

	out := make([]candidateSet, 0, len(sets))
	for si, set := range sets {
		if set.size <= hasher.PreHashSize {
			out = append(out, set)
			continue
		}

		var keep []int
		for _, idx := range prefixes[si] {
			if len(idx) > 1 {
				keep = append(keep, idx...)
			}
		}
		if len(keep) < 2 {
			continue
		}
		sort.Ints(keep)

		reps := make([]Representative, 0, len(keep))
		for _, i := range keep {
			reps = append(reps, set.reps[i])
		}
		out = append(out, candidateSet{size: set.size, reps: reps})
	}
	return out
}

// processFullHash hashea cada representante y agrupa por (tamaño, hash).
func (r *Runner) processFullHash(sets []candidateSet, stats *entities.RunStats) []entities.DuplicateGroup {
	var jobs []hashJob
	for si, set := range sets {
		for ri := range set.reps {
			jobs = append(jobs, hashJob{set: si, rep: ri})
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	byKey := make(map[entities.DuplicateKey][]Representative)
	for _, res := range r.hashAll(sets, jobs, r.hasher.HashFile) {
		if res.err != nil {
			r.skip(res.err, stats)
			continue
		}
		r.opts.Progress.FileHashed()

		rep := sets[res.job.set].reps[res.job.rep]
		key := entities.DuplicateKey{Size: rep.Size, Hash: res.hash}
		byKey[key] = append(byKey[key], rep)
	}

	seen := strset.New()
	var groups []entities.DuplicateGroup
	for key, reps := range byKey {
		if len(reps) < 2 {
			continue
		}

		g := entities.DuplicateGroup{Key: key}
		for _, rep := range reps {
			if seen.Has(rep.Path) {
				continue
			}
			seen.Add(rep.Path)
			g.Add(rep.Path)
			g.HardLinks = append(g.HardLinks, rep.Aliases...)
		}
		if g.Count() > 1 {
			groups = append(groups, g)
		}
	}
	return groups
}

func (r *Runner) skip(err error, stats *entities.RunStats) {
	stats.Errors++
	r.opts.Progress.Error()
	r.log.WithError(err).Warn("skipping file")
}
