package elf

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unsafe"
)

func testIdent() Ident {
	return Ident{
		Magic:   ELFMAG,
		Class:   ELFCLASS64,
		Data:    ELFDATA2LSB,
		Version: EV_CURRENT,
		OsAbi:   ELFOSABI_SYSV,
	}
}

func encode[T any](t *testing.T, records []T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.LittleEndian, records); err != nil {
		t.Fatalf("encoding records: %v", err)
	}
	return buf.Bytes()
}

var testText = []byte{
	0xe8, 0x00, 0x00, 0x00, 0x00, // call exit
	0xc3, // ret
}

type testObject struct {
	image  []byte
	text   SectionIdx
	data   SectionIdx
	bss    SectionIdx
	strtab SectionIdx
	symtab SectionIdx
	rela   SectionIdx
}

// buildTestObject writes a small relocatable object with one text, data and
// bss section, a symbol table defining _start and referencing exit, and one
// relocation against exit.
func buildTestObject(t *testing.T) *testObject {
	t.Helper()

	w := NewWriter(WriterHeader{Ident: testIdent(), Type: ET_REL, Machine: EM_X86_64})
	o := &testObject{}

	add := func(name string, s Section) SectionIdx {
		s.Name = w.AddShString(name)
		idx, err := w.AddSection(s)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		return idx
	}

	o.text = add(".text", Section{
		Type:      SHT_PROGBITS,
		Flags:     SHF_ALLOC | SHF_EXECINSTR,
		AddrAlign: 16,
		Content:   testText,
	})
	o.data = add(".data", Section{
		Type:      SHT_PROGBITS,
		Flags:     SHF_ALLOC | SHF_WRITE,
		AddrAlign: 8,
		Content:   []byte{1, 2, 3, 4, 5, 6, 7, 8},
	})
	o.bss = add(".bss", Section{
		Type:      SHT_NOBITS,
		Flags:     SHF_ALLOC | SHF_WRITE,
		AddrAlign: 32,
		Size:      64,
	})
	o.strtab = add(".strtab", Section{
		Type:    SHT_STRTAB,
		Content: []byte("\x00_start\x00exit\x00"),
	})

	syms := []Sym{
		{},
		{Info: NewSymInfo(STB_LOCAL, STT_SECTION), Shndx: o.text},
		{Name: 1, Info: NewSymInfo(STB_GLOBAL, STT_FUNC), Shndx: o.text, Size: 6},
		{Name: 8, Info: NewSymInfo(STB_GLOBAL, STT_NOTYPE), Shndx: SHN_UNDEF},
	}
	o.symtab = add(".symtab", Section{
		Type:         SHT_SYMTAB,
		Link:         uint32(o.strtab),
		Info:         2,
		FixedEntSize: uint64(SymSize),
		AddrAlign:    8,
		Content:      encode(t, syms),
	})

	relas := []Rela{
		{Offset: 1, Info: NewRelInfo(3, R_X86_64_PLT32), Addend: -4},
	}
	o.rela = add(".rela.text", Section{
		Type:         SHT_RELA,
		Link:         uint32(o.symtab),
		Info:         uint32(o.text),
		FixedEntSize: uint64(RelaSize),
		AddrAlign:    8,
		Content:      encode(t, relas),
	})

	w.AddProgramHeader(ProgramHeader{
		Type:     PT_LOAD,
		Flags:    PF_R | PF_X,
		Offset:   SectionRelativeOffset{Section: o.text},
		VAddr:    0x401000,
		PAddr:    0x401000,
		FileSize: uint64(len(testText)),
		MemSize:  uint64(len(testText)),
		Align:    PageSize,
	})
	w.SetEntry(0x401000)

	image, err := w.Write()
	if err != nil {
		t.Fatalf("writing test object: %v", err)
	}
	o.image = image
	return o
}

func mustReader(t *testing.T, data []byte) *Reader {
	t.Helper()
	r, err := NewReader(data)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return r
}

// alignedBytes returns n zeroed bytes backed by 8 byte aligned storage.
func alignedBytes(n int) []byte {
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), n)
}
