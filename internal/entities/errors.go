package entities

import (
	"github.com/pkg/errors"
)

// Taxonomía de errores del pipeline.
// Solo ErrRootUnreadable aborta la ejecución; el resto se reporta y se salta la ruta.
var (
	ErrRootUnreadable = errors.New("root unreadable")
	ErrEntryTraversal = errors.New("traversal failed")
	ErrMetadata       = errors.New("metadata lookup failed")
	ErrHashIO         = errors.New("hash read failed")
)

// PathError asocia un error de I/O a la ruta y a su categoría.
type PathError struct {
	Kind error
	Path string
	Err  error
}

// NewPathError envuelve err con su categoría. Devuelve nil si err es nil.
func NewPathError(kind error, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Kind: kind, Path: path, Err: err}
}

func (e *PathError) Error() string {
	return e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap permite errors.Is tanto contra la categoría como contra la causa.
func (e *PathError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
