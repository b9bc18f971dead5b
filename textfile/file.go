package textfile

import (
	"fmt"
	"time"
)

// LoadError reports a failed read. First is true only for the first failure
// after a success, so callers can log a failure streak once.
type LoadError struct {
	Path  string
	Err   error
	First bool
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load text file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// File is a text file polled for changes. It remembers the modification time
// of the last successful read and whether the last read failed.
// A File is not safe for concurrent use.
type File struct {
	path string
	tail bool

	modTime time.Time
	failed  bool
}

// NewFile returns a File reading path whole, or only its tail when tail is set.
func NewFile(path string, tail bool) *File {
	return &File{path: path, tail: tail}
}

func (f *File) Path() string { return f.path }

// Tail reports whether only the end of the file is read.
func (f *File) Tail() bool { return f.tail }

// Failed reports whether the most recent Load failed.
func (f *File) Failed() bool { return f.failed }

// ModTime is the modification time recorded by the last successful Load.
func (f *File) ModTime() time.Time { return f.modTime }

// Load reads the file. On success it records the modification time and clears
// the failure flag. On failure it returns a *LoadError.
func (f *File) Load() (string, error) {
	var (
		text string
		err  error
	)
	if f.tail {
		text, err = ReadTail(f.path)
	} else {
		text, err = ReadAll(f.path)
	}
	if err != nil {
		first := !f.failed
		f.failed = true
		f.modTime = time.Time{}
		return "", &LoadError{Path: f.path, Err: err, First: first}
	}
	f.failed = false
	if mt, err := ModTime(f.path); err == nil {
		f.modTime = mt
	}
	return text, nil
}

// Changed reports whether the file's modification time differs from the one
// recorded by the last successful Load. A missing file is never reported as
// changed; a file that appears after a failed load is.
func (f *File) Changed() bool {
	mt, err := ModTime(f.path)
	if err != nil {
		return false
	}
	return !mt.Equal(f.modTime)
}
