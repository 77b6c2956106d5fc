package baseline

import "fmt"

// GenerationError reports a failure to synthesize a baseline document. Op
// names the stage that failed.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("baseline %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func fail(op string, err error) error {
	return &GenerationError{Op: op, Err: err}
}
