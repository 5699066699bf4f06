//go:build !unix

package linker

import (
	"io"
	"os"
)

func mapFile(f *os.File) ([]byte, func() error, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}

func makeExecutable(f *os.File, perm os.FileMode) error {
	return f.Chmod(perm.Perm() | 0o111)
}
