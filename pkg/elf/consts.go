package elf

import (
	"fmt"
	"strings"
)

// lookup prints the symbolic name of v, or group(v) when the value is not
// known to the table.
func lookup[T ~uint8 | ~uint16 | ~uint32 | ~uint64](names map[T]string, group string, v T) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("%s(%d)", group, uint64(v))
}

// flagString prints a bit set as NAME|NAME, with any unknown bits in hex.
func flagString[T ~uint32 | ~uint64](names []flagName[T], v T) string {
	if v == 0 {
		return "0"
	}
	var parts []string
	for _, f := range names {
		if v&f.bit != 0 {
			parts = append(parts, f.name)
			v &^= f.bit
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint64(v)))
	}
	return strings.Join(parts, "|")
}

type flagName[T ~uint32 | ~uint64] struct {
	bit  T
	name string
}

// ------------------
// Header
// ------------------

var ELFMAG = [4]byte{0x7f, 'E', 'L', 'F'}

const SELFMAG = 4

const (
	EI_CLASS      = 4
	EI_DATA       = 5
	EI_VERSION    = 6
	EI_OSABI      = 7
	EI_ABIVERSION = 8
	EI_PAD        = 9
	EI_NIDENT     = 16
)

const EV_CURRENT = 1

// PageSize is the default segment alignment used by the x86-64 loader.
const PageSize = 0x1000

type Class uint8

const (
	ELFCLASSNONE Class = 0
	ELFCLASS32   Class = 1
	ELFCLASS64   Class = 2
)

var classNames = map[Class]string{
	ELFCLASSNONE: "ELFCLASSNONE",
	ELFCLASS32:   "ELFCLASS32",
	ELFCLASS64:   "ELFCLASS64",
}

func (c Class) String() string { return lookup(classNames, "class", c) }

type Data uint8

const (
	ELFDATANONE Data = 0
	ELFDATA2LSB Data = 1
	ELFDATA2MSB Data = 2
)

var dataNames = map[Data]string{
	ELFDATANONE: "ELFDATANONE",
	ELFDATA2LSB: "ELFDATA2LSB",
	ELFDATA2MSB: "ELFDATA2MSB",
}

func (d Data) String() string { return lookup(dataNames, "data", d) }

type OsAbi uint8

const (
	ELFOSABI_SYSV       OsAbi = 0
	ELFOSABI_HPUX       OsAbi = 1
	ELFOSABI_NETBSD     OsAbi = 2
	ELFOSABI_GNU        OsAbi = 3
	ELFOSABI_SOLARIS    OsAbi = 6
	ELFOSABI_AIX        OsAbi = 7
	ELFOSABI_IRIX       OsAbi = 8
	ELFOSABI_FREEBSD    OsAbi = 9
	ELFOSABI_TRU64      OsAbi = 10
	ELFOSABI_MODESTO    OsAbi = 11
	ELFOSABI_OPENBSD    OsAbi = 12
	ELFOSABI_ARM_AEABI  OsAbi = 64
	ELFOSABI_ARM        OsAbi = 97
	ELFOSABI_STANDALONE OsAbi = 255

	ELFOSABI_NONE  = ELFOSABI_SYSV
	ELFOSABI_LINUX = ELFOSABI_GNU
)

var osAbiNames = map[OsAbi]string{
	ELFOSABI_SYSV:       "ELFOSABI_SYSV",
	ELFOSABI_HPUX:       "ELFOSABI_HPUX",
	ELFOSABI_NETBSD:     "ELFOSABI_NETBSD",
	ELFOSABI_GNU:        "ELFOSABI_GNU",
	ELFOSABI_SOLARIS:    "ELFOSABI_SOLARIS",
	ELFOSABI_AIX:        "ELFOSABI_AIX",
	ELFOSABI_IRIX:       "ELFOSABI_IRIX",
	ELFOSABI_FREEBSD:    "ELFOSABI_FREEBSD",
	ELFOSABI_TRU64:      "ELFOSABI_TRU64",
	ELFOSABI_MODESTO:    "ELFOSABI_MODESTO",
	ELFOSABI_OPENBSD:    "ELFOSABI_OPENBSD",
	ELFOSABI_ARM_AEABI:  "ELFOSABI_ARM_AEABI",
	ELFOSABI_ARM:        "ELFOSABI_ARM",
	ELFOSABI_STANDALONE: "ELFOSABI_STANDALONE",
}

func (o OsAbi) String() string { return lookup(osAbiNames, "OS ABI", o) }

type Type uint16

const (
	ET_NONE Type = 0
	ET_REL  Type = 1
	ET_EXEC Type = 2
	ET_DYN  Type = 3
	ET_CORE Type = 4
)

var typeNames = map[Type]string{
	ET_NONE: "ET_NONE",
	ET_REL:  "ET_REL",
	ET_EXEC: "ET_EXEC",
	ET_DYN:  "ET_DYN",
	ET_CORE: "ET_CORE",
}

func (t Type) String() string { return lookup(typeNames, "type", t) }

type Machine uint16

const (
	EM_NONE   Machine = 0
	EM_X86_64 Machine = 62
)

var machineNames = map[Machine]string{
	EM_NONE:   "EM_NONE",
	EM_X86_64: "EM_X86_64",
}

func (m Machine) String() string { return lookup(machineNames, "machine", m) }

// ------------------
// Sections
// ------------------

type SectionIdx uint16

const (
	SHN_UNDEF     SectionIdx = 0
	SHN_LORESERVE SectionIdx = 0xff00
	SHN_BEFORE    SectionIdx = 0xff00
	SHN_AFTER     SectionIdx = 0xff01
	SHN_ABS       SectionIdx = 0xfff1
	SHN_COMMON    SectionIdx = 0xfff2
	SHN_XINDEX    SectionIdx = 0xffff
)

var sectionIdxNames = map[SectionIdx]string{
	SHN_UNDEF:  "SHN_UNDEF",
	SHN_BEFORE: "SHN_BEFORE",
	SHN_AFTER:  "SHN_AFTER",
	SHN_ABS:    "SHN_ABS",
	SHN_COMMON: "SHN_COMMON",
	SHN_XINDEX: "SHN_XINDEX",
}

func (s SectionIdx) String() string { return lookup(sectionIdxNames, "SHN", s) }

// IsReserved reports whether s is a pseudo-index that must not be used to
// index the section header table.
func (s SectionIdx) IsReserved() bool {
	return s >= SHN_LORESERVE
}

type ShType uint32

const (
	SHT_NULL           ShType = 0
	SHT_PROGBITS       ShType = 1
	SHT_SYMTAB         ShType = 2
	SHT_STRTAB         ShType = 3
	SHT_RELA           ShType = 4
	SHT_HASH           ShType = 5
	SHT_DYNAMIC        ShType = 6
	SHT_NOTE           ShType = 7
	SHT_NOBITS         ShType = 8
	SHT_REL            ShType = 9
	SHT_SHLIB          ShType = 10
	SHT_DYNSYM         ShType = 11
	SHT_INIT_ARRAY     ShType = 14
	SHT_FINI_ARRAY     ShType = 15
	SHT_PREINIT_ARRAY  ShType = 16
	SHT_GROUP          ShType = 17
	SHT_SYMTAB_SHNDX   ShType = 18
	SHT_GNU_ATTRIBUTES ShType = 0x6ffffff5
	SHT_GNU_HASH       ShType = 0x6ffffff6
	SHT_GNU_LIBLIST    ShType = 0x6ffffff7
	SHT_CHECKSUM       ShType = 0x6ffffff8
	SHT_GNU_verdef     ShType = 0x6ffffffd
	SHT_GNU_verneed    ShType = 0x6ffffffe
	SHT_GNU_versym     ShType = 0x6fffffff
	SHT_X86_64_UNWIND  ShType = 0x70000001
)

var shTypeNames = map[ShType]string{
	SHT_NULL:           "SHT_NULL",
	SHT_PROGBITS:       "SHT_PROGBITS",
	SHT_SYMTAB:         "SHT_SYMTAB",
	SHT_STRTAB:         "SHT_STRTAB",
	SHT_RELA:           "SHT_RELA",
	SHT_HASH:           "SHT_HASH",
	SHT_DYNAMIC:        "SHT_DYNAMIC",
	SHT_NOTE:           "SHT_NOTE",
	SHT_NOBITS:         "SHT_NOBITS",
	SHT_REL:            "SHT_REL",
	SHT_SHLIB:          "SHT_SHLIB",
	SHT_DYNSYM:         "SHT_DYNSYM",
	SHT_INIT_ARRAY:     "SHT_INIT_ARRAY",
	SHT_FINI_ARRAY:     "SHT_FINI_ARRAY",
	SHT_PREINIT_ARRAY:  "SHT_PREINIT_ARRAY",
	SHT_GROUP:          "SHT_GROUP",
	SHT_SYMTAB_SHNDX:   "SHT_SYMTAB_SHNDX",
	SHT_GNU_ATTRIBUTES: "SHT_GNU_ATTRIBUTES",
	SHT_GNU_HASH:       "SHT_GNU_HASH",
	SHT_GNU_LIBLIST:    "SHT_GNU_LIBLIST",
	SHT_CHECKSUM:       "SHT_CHECKSUM",
	SHT_GNU_verdef:     "SHT_GNU_verdef",
	SHT_GNU_verneed:    "SHT_GNU_verneed",
	SHT_GNU_versym:     "SHT_GNU_versym",
	SHT_X86_64_UNWIND:  "SHT_X86_64_UNWIND",
}

func (t ShType) String() string { return lookup(shTypeNames, "SHT", t) }

type ShFlags uint64

const (
	SHF_WRITE            ShFlags = 1 << 0
	SHF_ALLOC            ShFlags = 1 << 1
	SHF_EXECINSTR        ShFlags = 1 << 2
	SHF_MERGE            ShFlags = 1 << 4
	SHF_STRINGS          ShFlags = 1 << 5
	SHF_INFO_LINK        ShFlags = 1 << 6
	SHF_LINK_ORDER       ShFlags = 1 << 7
	SHF_OS_NONCONFORMING ShFlags = 1 << 8
	SHF_GROUP            ShFlags = 1 << 9
	SHF_TLS              ShFlags = 1 << 10
	SHF_COMPRESSED       ShFlags = 1 << 11
	SHF_EXCLUDE          ShFlags = 1 << 31
)

var shFlagNames = []flagName[ShFlags]{
	{SHF_WRITE, "WRITE"},
	{SHF_ALLOC, "ALLOC"},
	{SHF_EXECINSTR, "EXECINSTR"},
	{SHF_MERGE, "MERGE"},
	{SHF_STRINGS, "STRINGS"},
	{SHF_INFO_LINK, "INFO_LINK"},
	{SHF_LINK_ORDER, "LINK_ORDER"},
	{SHF_OS_NONCONFORMING, "OS_NONCONFORMING"},
	{SHF_GROUP, "GROUP"},
	{SHF_TLS, "TLS"},
	{SHF_COMPRESSED, "COMPRESSED"},
	{SHF_EXCLUDE, "EXCLUDE"},
}

func (f ShFlags) String() string { return flagString(shFlagNames, f) }

// ------------------
// Program headers
// ------------------

type PhType uint32

const (
	PT_NULL         PhType = 0
	PT_LOAD         PhType = 1
	PT_DYNAMIC      PhType = 2
	PT_INTERP       PhType = 3
	PT_NOTE         PhType = 4
	PT_SHLIB        PhType = 5
	PT_PHDR         PhType = 6
	PT_TLS          PhType = 7
	PT_GNU_EH_FRAME PhType = 0x6474e550
	PT_GNU_STACK    PhType = 0x6474e551
	PT_GNU_RELRO    PhType = 0x6474e552
	PT_GNU_PROPERTY PhType = 0x6474e553
)

var phTypeNames = map[PhType]string{
	PT_NULL:         "PT_NULL",
	PT_LOAD:         "PT_LOAD",
	PT_DYNAMIC:      "PT_DYNAMIC",
	PT_INTERP:       "PT_INTERP",
	PT_NOTE:         "PT_NOTE",
	PT_SHLIB:        "PT_SHLIB",
	PT_PHDR:         "PT_PHDR",
	PT_TLS:          "PT_TLS",
	PT_GNU_EH_FRAME: "PT_GNU_EH_FRAME",
	PT_GNU_STACK:    "PT_GNU_STACK",
	PT_GNU_RELRO:    "PT_GNU_RELRO",
	PT_GNU_PROPERTY: "PT_GNU_PROPERTY",
}

func (t PhType) String() string { return lookup(phTypeNames, "PT", t) }

type PhFlags uint32

const (
	PF_X PhFlags = 1 << 0
	PF_W PhFlags = 1 << 1
	PF_R PhFlags = 1 << 2
)

var phFlagNames = []flagName[PhFlags]{
	{PF_R, "R"},
	{PF_W, "W"},
	{PF_X, "X"},
}

func (f PhFlags) String() string { return flagString(phFlagNames, f) }

// ------------------
// Symbols
// ------------------

type SymbolType uint8

const (
	STT_NOTYPE    SymbolType = 0
	STT_OBJECT    SymbolType = 1
	STT_FUNC      SymbolType = 2
	STT_SECTION   SymbolType = 3
	STT_FILE      SymbolType = 4
	STT_COMMON    SymbolType = 5
	STT_TLS       SymbolType = 6
	STT_GNU_IFUNC SymbolType = 10
)

var symbolTypeNames = map[SymbolType]string{
	STT_NOTYPE:    "STT_NOTYPE",
	STT_OBJECT:    "STT_OBJECT",
	STT_FUNC:      "STT_FUNC",
	STT_SECTION:   "STT_SECTION",
	STT_FILE:      "STT_FILE",
	STT_COMMON:    "STT_COMMON",
	STT_TLS:       "STT_TLS",
	STT_GNU_IFUNC: "STT_GNU_IFUNC",
}

func (t SymbolType) String() string { return lookup(symbolTypeNames, "STT", t) }

type SymbolBinding uint8

const (
	STB_LOCAL      SymbolBinding = 0
	STB_GLOBAL     SymbolBinding = 1
	STB_WEAK       SymbolBinding = 2
	STB_GNU_UNIQUE SymbolBinding = 10
)

var symbolBindingNames = map[SymbolBinding]string{
	STB_LOCAL:      "STB_LOCAL",
	STB_GLOBAL:     "STB_GLOBAL",
	STB_WEAK:       "STB_WEAK",
	STB_GNU_UNIQUE: "STB_GNU_UNIQUE",
}

func (b SymbolBinding) String() string { return lookup(symbolBindingNames, "STB", b) }

type SymbolVisibility uint8

const (
	STV_DEFAULT   SymbolVisibility = 0
	STV_INTERNAL  SymbolVisibility = 1
	STV_HIDDEN    SymbolVisibility = 2
	STV_PROTECTED SymbolVisibility = 3
)

var symbolVisibilityNames = map[SymbolVisibility]string{
	STV_DEFAULT:   "STV_DEFAULT",
	STV_INTERNAL:  "STV_INTERNAL",
	STV_HIDDEN:    "STV_HIDDEN",
	STV_PROTECTED: "STV_PROTECTED",
}

func (v SymbolVisibility) String() string { return lookup(symbolVisibilityNames, "STV", v) }

// ------------------
// Relocations
// ------------------

type RX86_64 uint32

const (
	R_X86_64_NONE            RX86_64 = 0
	R_X86_64_64              RX86_64 = 1
	R_X86_64_PC32            RX86_64 = 2
	R_X86_64_GOT32           RX86_64 = 3
	R_X86_64_PLT32           RX86_64 = 4
	R_X86_64_COPY            RX86_64 = 5
	R_X86_64_GLOB_DAT        RX86_64 = 6
	R_X86_64_JUMP_SLOT       RX86_64 = 7
	R_X86_64_RELATIVE        RX86_64 = 8
	R_X86_64_GOTPCREL        RX86_64 = 9
	R_X86_64_32              RX86_64 = 10
	R_X86_64_32S             RX86_64 = 11
	R_X86_64_16              RX86_64 = 12
	R_X86_64_PC16            RX86_64 = 13
	R_X86_64_8               RX86_64 = 14
	R_X86_64_PC8             RX86_64 = 15
	R_X86_64_DTPMOD64        RX86_64 = 16
	R_X86_64_DTPOFF64        RX86_64 = 17
	R_X86_64_TPOFF64         RX86_64 = 18
	R_X86_64_TLSGD           RX86_64 = 19
	R_X86_64_TLSLD           RX86_64 = 20
	R_X86_64_DTPOFF32        RX86_64 = 21
	R_X86_64_GOTTPOFF        RX86_64 = 22
	R_X86_64_TPOFF32         RX86_64 = 23
	R_X86_64_PC64            RX86_64 = 24
	R_X86_64_GOTOFF64        RX86_64 = 25
	R_X86_64_GOTPC32         RX86_64 = 26
	R_X86_64_GOT64           RX86_64 = 27
	R_X86_64_GOTPCREL64      RX86_64 = 28
	R_X86_64_GOTPC64         RX86_64 = 29
	R_X86_64_GOTPLT64        RX86_64 = 30
	R_X86_64_PLTOFF64        RX86_64 = 31
	R_X86_64_SIZE32          RX86_64 = 32
	R_X86_64_SIZE64          RX86_64 = 33
	R_X86_64_GOTPC32_TLSDESC RX86_64 = 34
	R_X86_64_TLSDESC_CALL    RX86_64 = 35
	R_X86_64_TLSDESC         RX86_64 = 36
	R_X86_64_IRELATIVE       RX86_64 = 37
	R_X86_64_RELATIVE64      RX86_64 = 38
	R_X86_64_GOTPCRELX       RX86_64 = 41
	R_X86_64_REX_GOTPCRELX   RX86_64 = 42
)

var rx8664Names = map[RX86_64]string{
	R_X86_64_NONE:            "R_X86_64_NONE",
	R_X86_64_64:              "R_X86_64_64",
	R_X86_64_PC32:            "R_X86_64_PC32",
	R_X86_64_GOT32:           "R_X86_64_GOT32",
	R_X86_64_PLT32:           "R_X86_64_PLT32",
	R_X86_64_COPY:            "R_X86_64_COPY",
	R_X86_64_GLOB_DAT:        "R_X86_64_GLOB_DAT",
	R_X86_64_JUMP_SLOT:       "R_X86_64_JUMP_SLOT",
	R_X86_64_RELATIVE:        "R_X86_64_RELATIVE",
	R_X86_64_GOTPCREL:        "R_X86_64_GOTPCREL",
	R_X86_64_32:              "R_X86_64_32",
	R_X86_64_32S:             "R_X86_64_32S",
	R_X86_64_16:              "R_X86_64_16",
	R_X86_64_PC16:            "R_X86_64_PC16",
	R_X86_64_8:               "R_X86_64_8",
	R_X86_64_PC8:             "R_X86_64_PC8",
	R_X86_64_DTPMOD64:        "R_X86_64_DTPMOD64",
	R_X86_64_DTPOFF64:        "R_X86_64_DTPOFF64",
	R_X86_64_TPOFF64:         "R_X86_64_TPOFF64",
	R_X86_64_TLSGD:           "R_X86_64_TLSGD",
	R_X86_64_TLSLD:           "R_X86_64_TLSLD",
	R_X86_64_DTPOFF32:        "R_X86_64_DTPOFF32",
	R_X86_64_GOTTPOFF:        "R_X86_64_GOTTPOFF",
	R_X86_64_TPOFF32:         "R_X86_64_TPOFF32",
	R_X86_64_PC64:            "R_X86_64_PC64",
	R_X86_64_GOTOFF64:        "R_X86_64_GOTOFF64",
	R_X86_64_GOTPC32:         "R_X86_64_GOTPC32",
	R_X86_64_GOT64:           "R_X86_64_GOT64",
	R_X86_64_GOTPCREL64:      "R_X86_64_GOTPCREL64",
	R_X86_64_GOTPC64:         "R_X86_64_GOTPC64",
	R_X86_64_GOTPLT64:        "R_X86_64_GOTPLT64",
	R_X86_64_PLTOFF64:        "R_X86_64_PLTOFF64",
	R_X86_64_SIZE32:          "R_X86_64_SIZE32",
	R_X86_64_SIZE64:          "R_X86_64_SIZE64",
	R_X86_64_GOTPC32_TLSDESC: "R_X86_64_GOTPC32_TLSDESC",
	R_X86_64_TLSDESC_CALL:    "R_X86_64_TLSDESC_CALL",
	R_X86_64_TLSDESC:         "R_X86_64_TLSDESC",
	R_X86_64_IRELATIVE:       "R_X86_64_IRELATIVE",
	R_X86_64_RELATIVE64:      "R_X86_64_RELATIVE64",
	R_X86_64_GOTPCRELX:       "R_X86_64_GOTPCRELX",
	R_X86_64_REX_GOTPCRELX:   "R_X86_64_REX_GOTPCRELX",
}

func (r RX86_64) String() string { return lookup(rx8664Names, "R_X86_64", r) }

// ------------------
// Dynamic section
// ------------------

type DynamicTag uint64

const (
	DT_NULL         DynamicTag = 0
	DT_NEEDED       DynamicTag = 1
	DT_PLTRELSZ     DynamicTag = 2
	DT_PLTGOT       DynamicTag = 3
	DT_HASH         DynamicTag = 4
	DT_STRTAB       DynamicTag = 5
	DT_SYMTAB       DynamicTag = 6
	DT_RELA         DynamicTag = 7
	DT_RELASZ       DynamicTag = 8
	DT_RELAENT      DynamicTag = 9
	DT_STRSZ        DynamicTag = 10
	DT_SYMENT       DynamicTag = 11
	DT_INIT         DynamicTag = 12
	DT_FINI         DynamicTag = 13
	DT_SONAME       DynamicTag = 14
	DT_RPATH        DynamicTag = 15
	DT_SYMBOLIC     DynamicTag = 16
	DT_REL          DynamicTag = 17
	DT_RELSZ        DynamicTag = 18
	DT_RELENT       DynamicTag = 19
	DT_PLTREL       DynamicTag = 20
	DT_DEBUG        DynamicTag = 21
	DT_TEXTREL      DynamicTag = 22
	DT_JMPREL       DynamicTag = 23
	DT_BIND_NOW     DynamicTag = 24
	DT_INIT_ARRAY   DynamicTag = 25
	DT_FINI_ARRAY   DynamicTag = 26
	DT_INIT_ARRAYSZ DynamicTag = 27
	DT_FINI_ARRAYSZ DynamicTag = 28
	DT_RUNPATH      DynamicTag = 29
	DT_FLAGS        DynamicTag = 30
	DT_GNU_HASH     DynamicTag = 0x6ffffef5
	DT_VERSYM       DynamicTag = 0x6ffffff0
	DT_RELACOUNT    DynamicTag = 0x6ffffff9
	DT_FLAGS_1      DynamicTag = 0x6ffffffb
	DT_VERNEED      DynamicTag = 0x6ffffffe
	DT_VERNEEDNUM   DynamicTag = 0x6fffffff
)

var dynamicTagNames = map[DynamicTag]string{
	DT_NULL:         "DT_NULL",
	DT_NEEDED:       "DT_NEEDED",
	DT_PLTRELSZ:     "DT_PLTRELSZ",
	DT_PLTGOT:       "DT_PLTGOT",
	DT_HASH:         "DT_HASH",
	DT_STRTAB:       "DT_STRTAB",
	DT_SYMTAB:       "DT_SYMTAB",
	DT_RELA:         "DT_RELA",
	DT_RELASZ:       "DT_RELASZ",
	DT_RELAENT:      "DT_RELAENT",
	DT_STRSZ:        "DT_STRSZ",
	DT_SYMENT:       "DT_SYMENT",
	DT_INIT:         "DT_INIT",
	DT_FINI:         "DT_FINI",
	DT_SONAME:       "DT_SONAME",
	DT_RPATH:        "DT_RPATH",
	DT_SYMBOLIC:     "DT_SYMBOLIC",
	DT_REL:          "DT_REL",
	DT_RELSZ:        "DT_RELSZ",
	DT_RELENT:       "DT_RELENT",
	DT_PLTREL:       "DT_PLTREL",
	DT_DEBUG:        "DT_DEBUG",
	DT_TEXTREL:      "DT_TEXTREL",
	DT_JMPREL:       "DT_JMPREL",
	DT_BIND_NOW:     "DT_BIND_NOW",
	DT_INIT_ARRAY:   "DT_INIT_ARRAY",
	DT_FINI_ARRAY:   "DT_FINI_ARRAY",
	DT_INIT_ARRAYSZ: "DT_INIT_ARRAYSZ",
	DT_FINI_ARRAYSZ: "DT_FINI_ARRAYSZ",
	DT_RUNPATH:      "DT_RUNPATH",
	DT_FLAGS:        "DT_FLAGS",
	DT_GNU_HASH:     "DT_GNU_HASH",
	DT_VERSYM:       "DT_VERSYM",
	DT_RELACOUNT:    "DT_RELACOUNT",
	DT_FLAGS_1:      "DT_FLAGS_1",
	DT_VERNEED:      "DT_VERNEED",
	DT_VERNEEDNUM:   "DT_VERNEEDNUM",
}

func (t DynamicTag) String() string { return lookup(dynamicTagNames, "DT", t) }
