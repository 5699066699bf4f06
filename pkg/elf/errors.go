package elf

import (
	"errors"
	"fmt"
)

// Format errors. These are local to the file being parsed and never
// recovered from.
var (
	ErrFileTooSmall      = errors.New("the file is too small for the header")
	ErrWrongMagic        = errors.New("the magic of the file did not match, maybe it's not an ELF file?")
	ErrUnalignedInput    = errors.New("the input is not aligned in memory")
	ErrInvalidEntSize    = errors.New("table entry has a different size than expected")
	ErrHostByteOrder     = errors.New("records can only be viewed on a little endian host")
	ErrRegionOutOfBounds = errors.New("region is out of bounds")
)

// ErrBadAlignment is returned by the Writer for alignments that are not a
// power of two.
var ErrBadAlignment = errors.New("alignment is not a power of two")

// Lookup errors. They carry the requested key or region.
var (
	ErrIndexOutOfBounds   = errors.New("index is out of bounds")
	ErrNoStringNulTerm    = errors.New("string in string table does not end with a nul terminator")
	ErrStrTableNotPresent = errors.New("the string table section is marked as SHN_UNDEF")
	ErrNotFound           = errors.New("not found")
)

// Capacity errors.
var ErrTooMany = errors.New("too many entries")

// NotFoundError is returned by the by-name and by-type lookups.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("the %s %q was not found", e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// TooManyError names the table whose 16-bit count field overflowed.
type TooManyError struct {
	Table string
}

func (e *TooManyError) Error() string {
	return fmt.Sprintf("too many %s", e.Table)
}

func (e *TooManyError) Unwrap() error {
	return ErrTooMany
}

func wrongMagic(found []byte) error {
	return fmt.Errorf("%w: found % x", ErrWrongMagic, found)
}

func regionOutOfBounds(region string, expected, found int) error {
	return fmt.Errorf("%w: %s: expected at least %d bytes, found %d bytes", ErrRegionOutOfBounds, region, expected, found)
}

func indexOutOfBounds(what string, idx uint64) error {
	return fmt.Errorf("%w: %s: %d", ErrIndexOutOfBounds, what, idx)
}

func invalidEntSize(table string, expected, found int) error {
	return fmt.Errorf("%w: %s: expected %d, found %d", ErrInvalidEntSize, table, expected, found)
}

func unalignedInput(expected, found int) error {
	return fmt.Errorf("%w: expected align %d, found align %d", ErrUnalignedInput, expected, found)
}
