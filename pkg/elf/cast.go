package elf

import (
	"encoding/binary"
	"math/bits"
	"unsafe"
)

var hostLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// castSlice views the first n records of data as a []T without copying.
//
// The checks run in a fixed order: size, then alignment, then the
// reinterpretation itself, which cannot fail once the first two passed. T must
// be one of the padding free record types in defs.go.
func castSlice[T any](data []byte, n int, region string) ([]T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero)) * n

	if len(data) < size {
		return nil, regionOutOfBounds(region, size, len(data))
	}
	if n == 0 {
		return []T{}, nil
	}
	if !hostLittleEndian {
		return nil, ErrHostByteOrder
	}

	base := unsafe.SliceData(data)
	addr := uintptr(unsafe.Pointer(base))
	align := unsafe.Alignof(zero)
	if addr%align != 0 {
		return nil, unalignedInput(int(align), bits.TrailingZeros64(uint64(addr)))
	}

	return unsafe.Slice((*T)(unsafe.Pointer(base)), n), nil
}

func castRef[T any](data []byte, region string) (*T, error) {
	s, err := castSlice[T](data, 1, region)
	if err != nil {
		return nil, err
	}
	return &s[0], nil
}

// subslice returns data[off:off+size], reporting which end was out of range.
func subslice(data []byte, off, size uint64, what string) ([]byte, error) {
	if off > uint64(len(data)) {
		return nil, indexOutOfBounds(what+" offset", off)
	}
	rest := data[off:]
	if size > uint64(len(rest)) {
		return nil, indexOutOfBounds(what+" size", size)
	}
	return rest[:size:size], nil
}

// tail returns data[off:].
func tail(data []byte, off uint64, what string) ([]byte, error) {
	if off > uint64(len(data)) {
		return nil, indexOutOfBounds(what, off)
	}
	return data[off:], nil
}
