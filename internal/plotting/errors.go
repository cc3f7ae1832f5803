package plotting

import "fmt"

// RenderError reports a failure of the rendering surface: drawing a figure,
// encoding it, or binding the display the figure is shown on.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
