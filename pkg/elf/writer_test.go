package elf

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriterMinimal(t *testing.T) {
	w := NewWriter(WriterHeader{Ident: testIdent(), Type: ET_EXEC, Machine: EM_X86_64})

	image, err := w.Write()
	if err != nil {
		t.Fatal(err)
	}

	// header, two section headers and the section name table
	want := HeaderSize + 2*ShdrSize + len("\x00.shstrtab\x00")
	if len(image) != want {
		t.Fatalf("expected %d bytes, got %d", want, len(image))
	}

	r := mustReader(t, image)
	h, err := r.Header()
	if err != nil {
		t.Fatal(err)
	}
	if h.Phoff != 0 || h.Phnum != 0 {
		t.Fatalf("expected no program headers, got %d at %v", h.Phnum, h.Phoff)
	}
	if h.Shoff != Offset(HeaderSize) || h.Shstrndx != shStrTabIdx {
		t.Fatalf("unexpected section table %v / %v", h.Shoff, h.Shstrndx)
	}
	if h.Version != EV_CURRENT || int(h.Ehsize) != HeaderSize {
		t.Fatalf("unexpected header %+v", h)
	}

	null, err := r.SectionHeader(0)
	if err != nil {
		t.Fatal(err)
	}
	if *null != (Shdr{}) {
		t.Fatalf("expected an all zero null section, got %+v", null)
	}
}

func TestWriterLayout(t *testing.T) {
	w := NewWriter(WriterHeader{Ident: testIdent(), Type: ET_EXEC, Machine: EM_X86_64})

	sections := []Section{
		{Type: SHT_PROGBITS, Content: []byte{1, 2, 3}, AddrAlign: 1},
		{Type: SHT_PROGBITS, Content: nil, AddrAlign: 64},
		{Type: SHT_PROGBITS, Content: bytes.Repeat([]byte{0xcc}, 17), AddrAlign: 16},
		{Type: SHT_NOBITS, Size: 4096, AddrAlign: 4096},
		{Type: SHT_PROGBITS, Content: []byte{9}, AddrAlign: PageSize},
		{Type: SHT_PROGBITS, Content: []byte{7, 7}},
	}
	for i, s := range sections {
		s.Name = w.AddShString("s")
		if _, err := w.AddSection(s); err != nil {
			t.Fatalf("section %d: %v", i, err)
		}
	}

	l, err := w.Layout()
	if err != nil {
		t.Fatal(err)
	}
	image, err := w.Write()
	if err != nil {
		t.Fatal(err)
	}
	if uint64(len(image)) != l.End {
		t.Fatalf("expected image of %d bytes, got %d", l.End, len(image))
	}
	if l.ShOffset != uint64(HeaderSize) || l.ContentsOffset != l.ShOffset+8*uint64(ShdrSize) {
		t.Fatalf("unexpected table layout %+v", l)
	}

	var prevEnd uint64 = l.ContentsOffset
	var lastEnd uint64
	for i, s := range append([]Section{{}, {}}, sections...) {
		off := uint64(l.SectionOffsets[i])
		if i < 2 {
			continue
		}
		if len(s.Content) == 0 {
			if off != 0 {
				t.Fatalf("section %d: expected offset 0 for a section without content, got %d", i, off)
			}
			continue
		}
		if s.AddrAlign > 1 && off%s.AddrAlign != 0 {
			t.Fatalf("section %d: offset %d is not aligned to %d", i, off, s.AddrAlign)
		}
		if off < prevEnd {
			t.Fatalf("section %d: offset %d overlaps previous end %d", i, off, prevEnd)
		}
		if !bytes.Equal(image[off:off+uint64(len(s.Content))], s.Content) {
			t.Fatalf("section %d: content mismatch", i)
		}
		prevEnd = off + uint64(len(s.Content))
		lastEnd = prevEnd
	}
	if lastEnd != l.End {
		t.Fatalf("expected image to end at the last content end %d, got %d", lastEnd, l.End)
	}

	r := mustReader(t, image)
	bss, err := r.SectionHeader(5)
	if err != nil {
		t.Fatal(err)
	}
	if bss.Type != SHT_NOBITS || bss.Size != 4096 || bss.Offset != 0 {
		t.Fatalf("unexpected nobits header %+v", bss)
	}
}

func TestWriterProgramHeaderOffsets(t *testing.T) {
	o := buildTestObject(t)
	r := mustReader(t, o.image)

	phdrs, err := r.ProgramHeaders()
	if err != nil {
		t.Fatal(err)
	}
	if len(phdrs) != 1 {
		t.Fatalf("expected 1 program header, got %d", len(phdrs))
	}
	text, err := r.SectionHeader(o.text)
	if err != nil {
		t.Fatal(err)
	}
	if phdrs[0].Offset != text.Offset {
		t.Fatalf("expected segment at %v, got %v", text.Offset, phdrs[0].Offset)
	}
	if phdrs[0].Flags != PF_R|PF_X || phdrs[0].Type != PT_LOAD {
		t.Fatalf("unexpected program header %+v", phdrs[0])
	}

	w := NewWriter(WriterHeader{Ident: testIdent(), Type: ET_EXEC, Machine: EM_X86_64})
	idx, err := w.AddSection(Section{Type: SHT_PROGBITS, Content: []byte{1, 2, 3, 4, 5, 6, 7, 8}, AddrAlign: 8})
	if err != nil {
		t.Fatal(err)
	}
	w.AddProgramHeader(ProgramHeader{Type: PT_LOAD, Offset: SectionRelativeOffset{Section: idx, RelOffset: 4}})
	w.AddProgramHeader(ProgramHeader{Type: PT_LOAD, Offset: SectionRelativeOffset{Section: 0, RelOffset: 0}})

	l, err := w.Layout()
	if err != nil {
		t.Fatal(err)
	}
	image, err := w.Write()
	if err != nil {
		t.Fatal(err)
	}
	phdrs, err = mustReader(t, image).ProgramHeaders()
	if err != nil {
		t.Fatal(err)
	}
	if phdrs[0].Offset != l.SectionOffsets[idx]+4 {
		t.Fatalf("expected offset %v, got %v", l.SectionOffsets[idx]+4, phdrs[0].Offset)
	}
	if phdrs[1].Offset != 0 {
		t.Fatalf("expected a header segment at offset 0, got %v", phdrs[1].Offset)
	}

	w.AddProgramHeader(ProgramHeader{Offset: SectionRelativeOffset{Section: 42}})
	if _, err := w.Write(); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds for an unknown section, got %v", err)
	}
}

func TestWriterHeadersSize(t *testing.T) {
	w := NewWriter(WriterHeader{Ident: testIdent(), Type: ET_EXEC, Machine: EM_X86_64})
	if _, err := w.AddSection(Section{Type: SHT_PROGBITS}); err != nil {
		t.Fatal(err)
	}

	want := uint64(HeaderSize + 2*PhdrSize + 3*ShdrSize)
	if got := w.HeadersSize(2); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}

	w.AddProgramHeader(ProgramHeader{Type: PT_LOAD})
	w.AddProgramHeader(ProgramHeader{Type: PT_LOAD})
	l, err := w.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if l.ContentsOffset != want || w.HeadersSize(0) != want {
		t.Fatalf("expected contents at %d, got %d", want, l.ContentsOffset)
	}
}

func TestWriterTooManySections(t *testing.T) {
	w := NewWriter(WriterHeader{Ident: testIdent(), Type: ET_EXEC, Machine: EM_X86_64})

	for w.SectionCount() < int(SHN_LORESERVE) {
		if _, err := w.AddSection(Section{Type: SHT_PROGBITS}); err != nil {
			t.Fatalf("section %d: %v", w.SectionCount(), err)
		}
	}

	// the first reserved ordinal is refused up front, not at Write
	_, err := w.AddSection(Section{Type: SHT_PROGBITS})
	if !errors.Is(err, ErrTooMany) {
		t.Fatalf("expected ErrTooMany, got %v", err)
	}
	var tm *TooManyError
	if !errors.As(err, &tm) || tm.Table != "sections" {
		t.Fatalf("expected a TooManyError for sections, got %v", err)
	}

	image, err := w.Write()
	if err != nil {
		t.Fatalf("writing %d sections: %v", w.SectionCount(), err)
	}
	r := mustReader(t, image)
	h, err := r.Header()
	if err != nil {
		t.Fatal(err)
	}
	if SectionIdx(h.Shnum) != SHN_LORESERVE {
		t.Fatalf("expected %d sections, got %d", SHN_LORESERVE, h.Shnum)
	}
}

func TestWriterBadAlignment(t *testing.T) {
	w := NewWriter(WriterHeader{Ident: testIdent(), Type: ET_EXEC, Machine: EM_X86_64})

	for _, align := range []uint64{3, 6, 0x1001} {
		if _, err := w.AddSection(Section{Type: SHT_PROGBITS, AddrAlign: align, Content: []byte{1}}); !errors.Is(err, ErrBadAlignment) {
			t.Fatalf("align %d: expected ErrBadAlignment, got %v", align, err)
		}
	}
	if w.SectionCount() != 2 {
		t.Fatalf("expected rejected sections to be dropped, got %d sections", w.SectionCount())
	}

	for _, align := range []uint64{0, 1, 2, 0x1000} {
		if _, err := w.AddSection(Section{Type: SHT_PROGBITS, AddrAlign: align, Content: []byte{1}}); err != nil {
			t.Fatalf("align %d: %v", align, err)
		}
	}
	if _, err := w.Write(); err != nil {
		t.Fatal(err)
	}
}

type failingWriter struct{}

var errSink = errors.New("sink is full")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errSink
}

func TestWriterWriteTo(t *testing.T) {
	w := NewWriter(WriterHeader{Ident: testIdent(), Type: ET_EXEC, Machine: EM_X86_64})

	buf := &bytes.Buffer{}
	n, err := w.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("reported %d bytes, wrote %d", n, buf.Len())
	}

	if _, err := w.WriteTo(failingWriter{}); err != errSink {
		t.Fatalf("expected the sink error unchanged, got %v", err)
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, align, want uint64
	}{
		{0, 0, 0},
		{5, 0, 5},
		{5, 1, 5},
		{5, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{0x400001, PageSize, 0x401000},
	}

	for _, tt := range tests {
		if got := AlignUp(tt.n, tt.align); got != tt.want {
			t.Fatalf("AlignUp(%d, %d): expected %d, got %d", tt.n, tt.align, tt.want, got)
		}
	}

	if got := Addr(0x401234).AlignDown(PageSize); got != 0x401000 {
		t.Fatalf("expected 0x401000, got %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a non power of two alignment")
		}
	}()
	AlignUp(5, 3)
}
