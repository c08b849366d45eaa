package planarmesh

import (
	"fmt"

	"github.com/pkg/errors"
)

// Threading errors up and down the insertion, walking and repair routines
// would add a ton of noise to code that is mostly topology juggling. Instead
// the algorithms panic with a *MeshError, and the public API recovers it into
// a returned error. Any other panic is a genuine bug and is re-raised.

// Error kinds. Match them with errors.Is.
var (
	ErrInvariant       = errors.New("mesh invariant violation")
	ErrOutsideBoundary = errors.New("point outside mesh boundary")
	ErrStackOverflow   = errors.New("internal marking stack overflow")
	ErrConstrainedEdge = errors.New("constrained edge")
	ErrRetryLimit      = errors.New("insert edge retry limit exceeded")
	ErrDegenerate      = errors.New("degenerate geometry")
)

// MeshError is a fatal condition detected while operating on the mesh. The
// mesh stays structurally valid, but the operation that failed may have been
// partially applied.
type MeshError struct {
	Kind error
	err  error
}

func newError(kind error, format string, args ...interface{}) *MeshError {
	return &MeshError{Kind: kind, err: errors.Errorf(format, args...)}
}

func (e *MeshError) Error() string {
	return e.err.Error()
}

func (e *MeshError) Unwrap() error {
	return e.Kind
}

// Format prints the stack trace of the failure with %+v.
func (e *MeshError) Format(s fmt.State, verb rune) {
	if f, ok := e.err.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprint(s, e.err.Error())
}

// Panic with a MeshError of the given kind.
func fail(kind error, format string, args ...interface{}) {
	panic(newError(kind, format, args...))
}

// Panic with an invariant violation.
func fatalf(format string, args ...interface{}) {
	fail(ErrInvariant, format, args...)
}

// HandlePanicRecover turns a recovered MeshError back into an error. Other
// panics are propagated.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if meshErr, ok := r.(*MeshError); ok {
			return meshErr
		}
		panic(r)
	}
	return nil
}

// catch is deferred by every public entry point.
func catch(err *error) {
	if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
		*err = recoveredErr
	}
}
