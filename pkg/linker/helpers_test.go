package linker

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"elfld/pkg/elf"
)

// objSpec describes a relocatable object for the tests. Sections are only
// emitted when they have contents (or a size, for .bss).
type objSpec struct {
	text      []byte
	textAlign uint64
	data      []byte
	bss       uint64
	syms      []symSpec
	// relas all apply to .text
	relas []relaSpec
}

type symSpec struct {
	name string
	// section is "" for an undefined symbol, "*ABS*" for an absolute one, or
	// the name of a section.
	section string
	value   uint64
	local   bool
	typ     elf.SymbolType
}

type relaSpec struct {
	offset uint64
	// sym names a symbol, or a section for its section symbol
	sym    string
	typ    elf.RX86_64
	addend int64
}

func encodeRecords[T any](t *testing.T, records []T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.LittleEndian, records); err != nil {
		t.Fatalf("encoding records: %v", err)
	}
	return buf.Bytes()
}

func buildObject(t *testing.T, spec objSpec) []byte {
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

	idx := make(map[string]elf.SectionIdx)
	add := func(name string, s elf.Section) elf.SectionIdx {
		s.Name = w.AddShString(name)
		shndx, err := w.AddSection(s)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		idx[name] = shndx
		return shndx
	}

	if spec.text != nil {
		align := spec.textAlign
		if align == 0 {
			align = 16
		}
		add(".text", elf.Section{Type: elf.SHT_PROGBITS, Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR, AddrAlign: align, Content: spec.text})
	}
	if spec.data != nil {
		add(".data", elf.Section{Type: elf.SHT_PROGBITS, Flags: elf.SHF_ALLOC | elf.SHF_WRITE, AddrAlign: 8, Content: spec.data})
	}
	if spec.bss > 0 {
		add(".bss", elf.Section{Type: elf.SHT_NOBITS, Flags: elf.SHF_ALLOC | elf.SHF_WRITE, AddrAlign: 8, Size: spec.bss})
	}

	strtab := []byte{0}
	syms := []elf.Sym{{}}
	symIdx := make(map[string]elf.SymIdx)

	syms = append(syms, elf.Sym{Info: elf.NewSymInfo(elf.STB_LOCAL, elf.STT_FILE), Shndx: elf.SHN_ABS})
	for _, name := range []string{".text", ".data", ".bss"} {
		if shndx, ok := idx[name]; ok {
			symIdx[name] = elf.SymIdx(len(syms))
			syms = append(syms, elf.Sym{Info: elf.NewSymInfo(elf.STB_LOCAL, elf.STT_SECTION), Shndx: shndx})
		}
	}

	var ordered []symSpec
	for _, s := range spec.syms {
		if s.local {
			ordered = append(ordered, s)
		}
	}
	firstGlobal := len(syms) + len(ordered)
	for _, s := range spec.syms {
		if !s.local {
			ordered = append(ordered, s)
		}
	}

	for _, s := range ordered {
		var shndx elf.SectionIdx
		switch s.section {
		case "":
			shndx = elf.SHN_UNDEF
		case "*ABS*":
			shndx = elf.SHN_ABS
		default:
			var ok bool
			if shndx, ok = idx[s.section]; !ok {
				t.Fatalf("symbol %s is in missing section %s", s.name, s.section)
			}
		}

		bind := elf.STB_GLOBAL
		if s.local {
			bind = elf.STB_LOCAL
		}

		symIdx[s.name] = elf.SymIdx(len(syms))
		syms = append(syms, elf.Sym{
			Name:  elf.StringIdx(len(strtab)),
			Info:  elf.NewSymInfo(bind, s.typ),
			Shndx: shndx,
			Value: elf.Addr(s.value),
		})
		strtab = append(strtab, s.name...)
		strtab = append(strtab, 0)
	}

	strtabIdx := add(".strtab", elf.Section{Type: elf.SHT_STRTAB, Content: strtab})
	symtabIdx := add(".symtab", elf.Section{
		Type:         elf.SHT_SYMTAB,
		Link:         uint32(strtabIdx),
		Info:         uint32(firstGlobal),
		FixedEntSize: uint64(elf.SymSize),
		AddrAlign:    8,
		Content:      encodeRecords(t, syms),
	})

	if len(spec.relas) > 0 {
		var relas []elf.Rela
		for _, r := range spec.relas {
			sym, ok := symIdx[r.sym]
			if !ok {
				t.Fatalf("relocation against unknown symbol %s", r.sym)
			}
			relas = append(relas, elf.Rela{
				Offset: elf.Addr(r.offset),
				Info:   elf.NewRelInfo(sym, r.typ),
				Addend: r.addend,
			})
		}
		add(".rela.text", elf.Section{
			Type:         elf.SHT_RELA,
			Flags:        elf.SHF_INFO_LINK,
			Link:         uint32(symtabIdx),
			Info:         uint32(idx[".text"]),
			FixedEntSize: uint64(elf.RelaSize),
			AddrAlign:    8,
			Content:      encodeRecords(t, relas),
		})
	}

	image, err := w.Write()
	if err != nil {
		t.Fatalf("writing object: %v", err)
	}
	return image
}

type namedObj struct {
	name string
	spec objSpec
}

// newTestContext loads objs from memory, in order.
func newTestContext(t *testing.T, objs ...namedObj) *Context {
	t.Helper()
	ctx := NewContext()
	for _, o := range objs {
		file := &File{Name: o.name, Contents: buildObject(t, o.spec)}
		if err := ReadFile(ctx, file); err != nil {
			t.Fatalf("reading %s: %v", o.name, err)
		}
	}
	return ctx
}

// writeObject stores an object in dir and returns its path.
func writeObject(t *testing.T, dir, name string, spec objSpec) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buildObject(t, spec), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

var (
	// call exit
	startText = []byte{0xe8, 0x00, 0x00, 0x00, 0x00}

	// mov edi, 42; mov eax, 60; syscall
	exitText = []byte{
		0xbf, 0x2a, 0x00, 0x00, 0x00,
		0xb8, 0x3c, 0x00, 0x00, 0x00,
		0x0f, 0x05,
	}
)

func startObj() namedObj {
	return namedObj{"start.o", objSpec{
		text:  startText,
		syms:  []symSpec{{name: "_start", section: ".text", typ: elf.STT_FUNC}, {name: "exit"}},
		relas: []relaSpec{{offset: 1, sym: "exit", typ: elf.R_X86_64_PLT32, addend: -4}},
	}}
}

func exitObj() namedObj {
	return namedObj{"exit.o", objSpec{
		text: exitText,
		syms: []symSpec{{name: "exit", section: ".text", typ: elf.STT_FUNC}},
	}}
}
