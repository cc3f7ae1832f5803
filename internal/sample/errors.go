package sample

import "fmt"

// FileAccessError reports a dataset path that does not exist or cannot be read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("sample: cannot read %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports a record that does not decompose into three numeric fields.
// Column is 1-based; it is 0 when the record has the wrong number of fields.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("sample: %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("sample: %s:%d: column %d: %v", e.Path, e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
