package elf

import (
	"fmt"
	"unsafe"
)

// Record layouts below are byte-for-byte the ELF64 little-endian layouts. They
// contain no implicit padding so a validated byte slice can be viewed as a
// slice of records without copying.

type Ident struct {
	Magic      [SELFMAG]byte
	Class      Class
	Data       Data
	Version    uint8
	OsAbi      OsAbi
	AbiVersion uint8
	Pad        [7]byte
}

type Header struct {
	Ident     Ident      /* File identification. */
	Type      Type       /* File type. */
	Machine   Machine    /* Machine architecture. */
	Version   uint32     /* ELF format version. */
	Entry     Addr       /* Entry point. */
	Phoff     Offset     /* Program header file offset. */
	Shoff     Offset     /* Section header file offset. */
	Flags     uint32     /* Architecture-specific flags. */
	Ehsize    uint16     /* Size of ELF header in bytes. */
	Phentsize uint16     /* Size of program header entry. */
	Phnum     uint16     /* Number of program header entries. */
	Shentsize uint16     /* Size of section header entry. */
	Shnum     uint16     /* Number of section header entries. */
	Shstrndx  SectionIdx /* Section name strings section. */
}

type Phdr struct {
	Type     PhType
	Flags    PhFlags
	Offset   Offset
	VAddr    Addr
	PAddr    Addr
	FileSize uint64
	MemSize  uint64
	Align    uint64
}

type Shdr struct {
	Name      ShStringIdx
	Type      ShType
	Flags     ShFlags
	Addr      Addr
	Offset    Offset
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64
}

// FileSize is the number of bytes the section occupies in the file.
func (s *Shdr) FileSize() uint64 {
	if s.Type == SHT_NOBITS {
		return 0
	}
	return s.Size
}

type SymInfo uint8

func NewSymInfo(bind SymbolBinding, typ SymbolType) SymInfo {
	return SymInfo(uint8(bind)<<4 | uint8(typ)&0xf)
}

func (i SymInfo) Type() SymbolType {
	return SymbolType(i & 0xf)
}

func (i SymInfo) Binding() SymbolBinding {
	return SymbolBinding(i >> 4)
}

func (i SymInfo) String() string {
	return fmt.Sprintf("%v,%v", i.Type(), i.Binding())
}

type Sym struct {
	Name  StringIdx
	Info  SymInfo
	Other SymbolVisibility
	Shndx SectionIdx
	Value Addr
	Size  uint64
}

func (s *Sym) IsUndef() bool {
	return s.Shndx == SHN_UNDEF
}

func (s *Sym) IsDefined() bool {
	return !s.IsUndef()
}

func (s *Sym) IsAbs() bool {
	return s.Shndx == SHN_ABS
}

func (s *Sym) IsCommon() bool {
	return s.Shndx == SHN_COMMON
}

func (s *Sym) Visibility() SymbolVisibility {
	return s.Other & 0b11
}

type RelInfo uint64

func NewRelInfo(sym SymIdx, typ RX86_64) RelInfo {
	return RelInfo(uint64(sym)<<32 | uint64(typ))
}

func (r RelInfo) Sym() SymIdx {
	return SymIdx(r >> 32)
}

func (r RelInfo) Type() RX86_64 {
	return RX86_64(r & 0xffff_ffff)
}

func (r RelInfo) String() string {
	return fmt.Sprintf("%v @ %d", r.Type(), r.Sym())
}

type Rela struct {
	Offset Addr
	Info   RelInfo
	Addend int64
}

type Dyn struct {
	Tag DynamicTag
	Val uint64
}

const (
	HeaderSize = int(unsafe.Sizeof(Header{}))
	PhdrSize   = int(unsafe.Sizeof(Phdr{}))
	ShdrSize   = int(unsafe.Sizeof(Shdr{}))
	SymSize    = int(unsafe.Sizeof(Sym{}))
	RelaSize   = int(unsafe.Sizeof(Rela{}))
	DynSize    = int(unsafe.Sizeof(Dyn{}))
)

// Compile time checks that the Go layouts match the on-disk record sizes.
var (
	_ [EI_NIDENT - unsafe.Sizeof(Ident{})]struct{}
	_ [unsafe.Sizeof(Ident{}) - EI_NIDENT]struct{}
	_ [64 - HeaderSize]struct{}
	_ [HeaderSize - 64]struct{}
	_ [56 - PhdrSize]struct{}
	_ [PhdrSize - 56]struct{}
	_ [64 - ShdrSize]struct{}
	_ [ShdrSize - 64]struct{}
	_ [24 - SymSize]struct{}
	_ [SymSize - 24]struct{}
	_ [24 - RelaSize]struct{}
	_ [RelaSize - 24]struct{}
	_ [16 - DynSize]struct{}
	_ [DynSize - 16]struct{}
)
