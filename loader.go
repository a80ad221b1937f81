package triagekit

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileHandle provides bounded, streaming byte access to one input file.
// The size comes from filesystem metadata, never from a full read.
// A handle is immutable once opened; every reader it hands out is an
// independent view, so concurrent consumers need no coordination.
type FileHandle struct {
	path string
	size int64
	f    *os.File
}

// Open opens the file at path for analysis. It fails with an input-kind
// error wrapping [ErrNotFound] when the path does not exist and
// [ErrPermission] when it is unreadable.
func Open(path string) (*FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, NewAnalysisError(ErrorKindInput, "open", path, "", mapOpenError(err))
	}
	if info.IsDir() {
		return nil, NewAnalysisError(ErrorKindInput, "open", path, "", ErrIsDir)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, NewAnalysisError(ErrorKindInput, "open", path, "", mapOpenError(err))
	}

	return &FileHandle{
		path: path,
		size: info.Size(),
		f:    f,
	}, nil
}

// mapOpenError converts os errors onto the package sentinels
func mapOpenError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	default:
		return err
	}
}

// Path returns the path the handle was opened with.
func (h *FileHandle) Path() string {
	return h.path
}

// Name returns the base name of the file.
func (h *FileHandle) Name() string {
	return filepath.Base(h.path)
}

// Size returns the byte count recorded by filesystem metadata at open time.
func (h *FileHandle) Size() int64 {
	return h.size
}

// Reader returns an independent reader over the full content. Each call
// yields a fresh view positioned at the start.
func (h *FileHandle) Reader() *io.SectionReader {
	return io.NewSectionReader(h.f, 0, h.size)
}

// ReadAll returns the entire file content.
func (h *FileHandle) ReadAll() ([]byte, error) {
	data, err := io.ReadAll(h.Reader())
	if err != nil {
		return nil, NewAnalysisError(ErrorKindInput, "read", h.path, "", err)
	}
	return data, nil
}

// ReadPrefix returns up to n bytes from the start of the file without
// forcing a full read of large inputs.
func (h *FileHandle) ReadPrefix(n int64) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > h.size {
		n = h.size
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(h.Reader(), buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, NewAnalysisError(ErrorKindInput, "read", h.path, "", err)
	}
	return buf[:read], nil
}

// Close releases the underlying file.
func (h *FileHandle) Close() error {
	return h.f.Close()
}
