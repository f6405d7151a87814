package internal

import "fmt"

// LoadError represents errors reading a dataset from disk
type LoadError struct {
	Path string
	Op   string // "list", "open", "read", "stat"
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DecodeError represents an export file whose JSON does not have the expected shape
type DecodeError struct {
	Source string // file path or "reader"
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error [%s]: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a dataset, conversation or file does not exist
type NotFoundError struct {
	Kind string // "dataset", "conversation", "file"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
