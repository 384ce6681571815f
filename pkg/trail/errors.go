package trail

import(
	"errors"
	"fmt"
)

var(
	ErrInvalidInput       = errors.New("invalid input")
	ErrDimensionMismatch  = errors.New("dimension mismatch")
	ErrNoArtifactDetected = errors.New("no artifact detected")
	ErrDecodeFailure      = errors.New("decode failure")
)

// A Skip records an input file that could not be decoded. Loading
// carries on past these.
type Skip struct {
	Filename string
	Err      error
}

func (s Skip)String() string { return fmt.Sprintf("skipped %s: %v", s.Filename, s.Err) }

// A StageError says which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError)Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }
func (e *StageError)Unwrap() error { return e.Err }
