package viewer

import "fmt"

// FatalLoadError reports a model or texture that could not be loaded at
// startup. The viewer cannot run without them.
type FatalLoadError struct {
	What string // "model" or "texture"
	Path string
	Err  error
}

func (e *FatalLoadError) Error() string {
	return fmt.Sprintf("loading %s %s: %v", e.What, e.Path, e.Err)
}

func (e *FatalLoadError) Unwrap() error {
	return e.Err
}
