//go:build unix

package linker

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File) ([]byte, func() error, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}

	// mmap rejects empty mappings
	if fi.Size() == 0 {
		return []byte{}, nil, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}

	return data, func() error { return unix.Munmap(data) }, nil
}

// makeExecutable sets the mode of f to perm plus execute for everyone.
func makeExecutable(f *os.File, perm os.FileMode) error {
	return unix.Fchmod(int(f.Fd()), uint32(perm.Perm()|0o111))
}
