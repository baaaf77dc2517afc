package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"go.uber.org/ratelimit"
	"golang.org/x/term"
)

var frames = []string{"|", "/", "-", "\\"}

// Spinner dibuja el estado de un Tracker en una sola línea de stderr.
type Spinner struct {
	tracker *Tracker
	out     io.Writer
	limiter ratelimit.Limiter

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewSpinner crea un spinner que se refresca como máximo perSecond veces por segundo.
func NewSpinner(t *Tracker, out io.Writer, perSecond int) *Spinner {
	if perSecond <= 0 {
		perSecond = 10
	}
	return &Spinner{
		tracker: t,
		out:     out,
		limiter: ratelimit.New(perSecond, ratelimit.WithoutSlack),
		done:    make(chan struct{}),
	}
}

// Enabled indica si tiene sentido mostrar el spinner en f (debe ser una terminal).
func Enabled(f *os.File, quiet bool) bool {
	if quiet || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Start lanza la goroutine de refresco.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for i := 0; ; i++ {
			s.limiter.Take()
			select {
			case <-s.done:
				return
			default:
			}
			s.render(frames[i%len(frames)])
		}
	}()
}

// Stop detiene el spinner y limpia la línea. Se puede llamar varias veces.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		fmt.Fprint(s.out, "\r\033[K")
	})
}

func (s *Spinner) render(frame string) {
	snap := s.tracker.Snapshot()
	fmt.Fprintf(s.out, "\r\033[K%s %d files (%s) scanned, %d hashed",
		frame, snap.FilesScanned, humanize.IBytes(snap.BytesScanned), snap.FilesHashed)
}
