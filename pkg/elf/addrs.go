package elf

import "fmt"

// Addr is a run time address inside an object file or image.
type Addr uint64

func (a Addr) String() string {
	return fmt.Sprintf("0x%x", uint64(a))
}

func (a Addr) Add(n uint64) Addr {
	return a + Addr(n)
}

func (a Addr) AlignUp(align uint64) Addr {
	return Addr(AlignUp(uint64(a), align))
}

func (a Addr) AlignDown(align uint64) Addr {
	return Addr(AlignDown(uint64(a), align))
}

// Offset is a file offset, either absolute or relative to a section.
type Offset uint64

func (o Offset) String() string {
	return fmt.Sprintf("0x%x", uint64(o))
}

// Index types are only meaningful against the table they index into, so each
// table gets its own type.

type ShStringIdx uint32

type StringIdx uint32

type SymIdx uint32

// AlignUp rounds n up to a multiple of align, which must be a power of two.
// An align of zero is treated as one.
func AlignUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	assertPow2(align)
	return (n + align - 1) &^ (align - 1)
}

func AlignDown(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	assertPow2(align)
	return n &^ (align - 1)
}

func assertPow2(align uint64) {
	if align&(align-1) != 0 {
		panic(fmt.Sprintf("alignment %d is not a power of two", align))
	}
}
