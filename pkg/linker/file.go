package linker

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is an input file whose contents stay valid until Close.
type File struct {
	Name     string
	Contents []byte

	release func() error
}

// OpenFile maps name into memory read-only where the platform supports it and
// reads it otherwise.
func OpenFile(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contents, release, err := mapFile(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	return &File{
		Name:     name,
		Contents: contents,
		release:  release,
	}, nil
}

func (f *File) Close() error {
	if f.release == nil {
		return nil
	}
	release := f.release
	f.release = nil
	f.Contents = nil
	return release()
}

// WriteOutput replaces path with an executable holding image. The image is
// written to a temporary file next to path and renamed into place, so a
// failed write leaves nothing behind.
func WriteOutput(path string, image []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	err = writeExecutable(f, image)
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeExecutable(f *os.File, image []byte) error {
	if _, err := f.Write(image); err != nil {
		f.Close()
		return err
	}
	if err := makeExecutable(f, 0o644); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
