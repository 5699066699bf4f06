package main

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"elfld/pkg/elf"
)

func buildImage(t *testing.T) []byte {
	t.Helper()

	w := elf.NewWriter(elf.WriterHeader{
		Ident: elf.Ident{
			Magic:   elf.ELFMAG,
			Class:   elf.ELFCLASS64,
			Data:    elf.ELFDATA2LSB,
			Version: elf.EV_CURRENT,
		},
		Type:    elf.ET_REL,
		Machine: elf.EM_X86_64,
	})

	add := func(name string, s elf.Section) elf.SectionIdx {
		s.Name = w.AddShString(name)
		idx, err := w.AddSection(s)
		if err != nil {
			t.Fatal(err)
		}
		return idx
	}
	encode := func(v any) []byte {
		buf := &bytes.Buffer{}
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}

	text := add(".text", elf.Section{
		Type:      elf.SHT_PROGBITS,
		Flags:     elf.SHF_ALLOC | elf.SHF_EXECINSTR,
		AddrAlign: 16,
		Content:   []byte{0xe8, 0, 0, 0, 0, 0xc3},
	})
	strtab := add(".strtab", elf.Section{Type: elf.SHT_STRTAB, Content: []byte("\x00_start\x00helper\x00")})
	symtab := add(".symtab", elf.Section{
		Type:         elf.SHT_SYMTAB,
		Link:         uint32(strtab),
		Info:         2,
		FixedEntSize: uint64(elf.SymSize),
		AddrAlign:    8,
		Content: encode([]elf.Sym{
			{},
			{Info: elf.NewSymInfo(elf.STB_LOCAL, elf.STT_SECTION), Shndx: text},
			{Name: 1, Info: elf.NewSymInfo(elf.STB_GLOBAL, elf.STT_FUNC), Shndx: text, Size: 6},
			{Name: 8, Info: elf.NewSymInfo(elf.STB_GLOBAL, elf.STT_NOTYPE)},
		}),
	})
	add(".rela.text", elf.Section{
		Type:         elf.SHT_RELA,
		Flags:        elf.SHF_INFO_LINK,
		Link:         uint32(symtab),
		Info:         uint32(text),
		FixedEntSize: uint64(elf.RelaSize),
		AddrAlign:    8,
		Content: encode([]elf.Rela{
			{Offset: 1, Info: elf.NewRelInfo(3, elf.R_X86_64_PLT32), Addend: -4},
		}),
	})

	w.AddProgramHeader(elf.ProgramHeader{
		Type:     elf.PT_LOAD,
		Flags:    elf.PF_R | elf.PF_X,
		Offset:   elf.SectionRelativeOffset{Section: text},
		FileSize: 6,
		MemSize:  6,
		Align:    elf.PageSize,
	})

	image, err := w.Write()
	if err != nil {
		t.Fatal(err)
	}
	return image
}

func TestDump(t *testing.T) {
	r, err := elf.NewReader(buildImage(t))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	opts := options{header: true, programs: true, sections: true, symbols: true, relocs: true, dynamic: true}
	if err := dump(&out, r, opts); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for _, want := range []string{
		"ET_REL",
		"EM_X86_64",
		"PT_LOAD",
		".rela.text",
		"SHT_SYMTAB",
		"_start",
		"helper",
		"STT_FUNC",
		"R_X86_64_PLT32",
		"No dynamic section",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}

	// the PT_LOAD row names the section it starts in
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "PT_LOAD") && !strings.Contains(line, ".text") {
			t.Fatalf("expected the segment to be attributed to .text: %q", line)
		}
	}
}

func TestDumpSelectsTables(t *testing.T) {
	r, err := elf.NewReader(buildImage(t))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := dump(&out, r, options{relocs: true}); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, "Relocations") || strings.Contains(got, "Sections") {
		t.Fatalf("expected only relocations:\n%s", got)
	}
	// the relocation targets the undefined helper
	if !strings.Contains(got, "helper") {
		t.Fatalf("expected the relocation symbol in:\n%s", got)
	}
}
