package elf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriterHeader is the caller supplied part of the output header. Everything
// else in the header is derived during Write.
type WriterHeader struct {
	Ident   Ident
	Type    Type
	Machine Machine
}

// Section is one output section. Content is copied into the image verbatim.
type Section struct {
	Name  ShStringIdx
	Type  ShType
	Flags ShFlags
	Addr  Addr
	Link  uint32
	Info  uint32
	// FixedEntSize is the size of each entry for table sections, 0 otherwise.
	FixedEntSize uint64
	// AddrAlign is the required alignment of the content, 0 for none.
	AddrAlign uint64
	Content   []byte
	// Size is the memory size of a SHT_NOBITS section, which has no content.
	Size uint64
}

func (s *Section) size() uint64 {
	if s.Type == SHT_NOBITS {
		return s.Size
	}
	return uint64(len(s.Content))
}

// SectionRelativeOffset is a file offset expressed against a section whose
// absolute position is only known once the layout has been computed.
type SectionRelativeOffset struct {
	Section   SectionIdx
	RelOffset Offset
}

type ProgramHeader struct {
	Type     PhType
	Flags    PhFlags
	Offset   SectionRelativeOffset
	VAddr    Addr
	PAddr    Addr
	FileSize uint64
	MemSize  uint64
	Align    uint64
}

const shStrTabIdx = 1

// Writer accumulates the parts of an output image. Sections and program
// headers are referred to by ordinal; no offsets are fixed until Write.
type Writer struct {
	header         Header
	sections       []Section
	programHeaders []ProgramHeader
}

func NewWriter(h WriterHeader) *Writer {
	header := Header{
		Ident:     h.Ident,
		Type:      h.Type,
		Machine:   h.Machine,
		Version:   EV_CURRENT,
		Ehsize:    uint16(HeaderSize),
		Phentsize: uint16(PhdrSize),
		Shentsize: uint16(ShdrSize),
		Shstrndx:  shStrTabIdx,
	}

	nullSection := Section{
		Type: SHT_NULL,
	}

	shstrtab := Section{
		// the first string after the null string is .shstrtab itself
		Name:    1,
		Type:    SHT_STRTAB,
		Content: []byte("\x00.shstrtab\x00"),
	}

	return &Writer{
		header:   header,
		sections: []Section{nullSection, shstrtab},
	}
}

func (w *Writer) SetEntry(entry Addr) {
	w.header.Entry = entry
}

// AddShString appends name to the section name table and returns its index.
func (w *Writer) AddShString(name string) ShStringIdx {
	shstrtab := &w.sections[shStrTabIdx]
	idx := len(shstrtab.Content)
	shstrtab.Content = append(shstrtab.Content, name...)
	shstrtab.Content = append(shstrtab.Content, 0)
	return ShStringIdx(idx)
}

// AddSection appends s and returns its ordinal. Ordinals stop below
// SHN_LORESERVE since extended section numbering is not written.
func (w *Writer) AddSection(s Section) (SectionIdx, error) {
	idx := len(w.sections)
	if idx >= int(SHN_LORESERVE) {
		return 0, &TooManyError{Table: "sections"}
	}
	if s.AddrAlign&(s.AddrAlign-1) != 0 {
		return 0, fmt.Errorf("%w: section %d has alignment %d", ErrBadAlignment, idx, s.AddrAlign)
	}
	w.sections = append(w.sections, s)
	return SectionIdx(idx), nil
}

func (w *Writer) AddProgramHeader(ph ProgramHeader) {
	w.programHeaders = append(w.programHeaders, ph)
}

func (w *Writer) SectionCount() int {
	return len(w.sections)
}

// HeadersSize is the number of bytes taken by the file header, the program
// header table and the section header table, counting extraPhdrs program
// headers that have not been added yet.
func (w *Writer) HeadersSize(extraPhdrs int) uint64 {
	return uint64(HeaderSize) +
		uint64(len(w.programHeaders)+extraPhdrs)*uint64(PhdrSize) +
		uint64(len(w.sections))*uint64(ShdrSize)
}

// Layout is the result of the planning pass.
type Layout struct {
	PhOffset       uint64
	ShOffset       uint64
	ContentsOffset uint64
	// SectionOffsets holds the file offset of each section, by ordinal.
	// Sections without file content are placed at offset 0.
	SectionOffsets []Offset
	// End is the exact length of the image.
	End uint64
}

// Layout computes the file position of every table and section. The program
// header table follows the file header, the section header table follows the
// program headers, and section contents follow in ordinal order, each aligned
// to its own requirement.
func (w *Writer) Layout() (*Layout, error) {
	if len(w.sections) > math.MaxUint16 {
		return nil, &TooManyError{Table: "sections"}
	}
	if len(w.programHeaders) > math.MaxUint16 {
		return nil, &TooManyError{Table: "program headers"}
	}

	l := &Layout{
		PhOffset:       uint64(HeaderSize),
		SectionOffsets: make([]Offset, 0, len(w.sections)),
	}
	l.ShOffset = l.PhOffset + uint64(len(w.programHeaders))*uint64(PhdrSize)
	l.ContentsOffset = l.ShOffset + uint64(len(w.sections))*uint64(ShdrSize)

	cursor := l.ContentsOffset
	for i := range w.sections {
		s := &w.sections[i]
		if len(s.Content) == 0 {
			l.SectionOffsets = append(l.SectionOffsets, 0)
			continue
		}

		offset := AlignUp(cursor, s.AddrAlign)
		l.SectionOffsets = append(l.SectionOffsets, Offset(offset))
		cursor = offset + uint64(len(s.Content))
	}
	l.End = cursor

	return l, nil
}

// Write runs the layout and serializes the image.
func (w *Writer) Write() ([]byte, error) {
	l, err := w.Layout()
	if err != nil {
		return nil, err
	}

	header := w.header
	header.Shnum = uint16(len(w.sections))
	header.Phnum = uint16(len(w.programHeaders))
	if len(w.programHeaders) > 0 {
		header.Phoff = Offset(l.PhOffset)
	}
	header.Shoff = Offset(l.ShOffset)

	out := bytes.NewBuffer(make([]byte, 0, l.End))
	write := func(v any) {
		// writes to a bytes.Buffer only fail on allocation failure, which panics
		_ = binary.Write(out, binary.LittleEndian, v)
	}

	write(&header)

	for i := range w.programHeaders {
		ph := &w.programHeaders[i]
		rel := ph.Offset
		if int(rel.Section) >= len(l.SectionOffsets) {
			return nil, indexOutOfBounds("program header section", uint64(rel.Section))
		}
		write(&Phdr{
			Type:     ph.Type,
			Flags:    ph.Flags,
			Offset:   l.SectionOffsets[rel.Section] + rel.RelOffset,
			VAddr:    ph.VAddr,
			PAddr:    ph.PAddr,
			FileSize: ph.FileSize,
			MemSize:  ph.MemSize,
			Align:    ph.Align,
		})
	}
	mustLen(out, l.ShOffset, "program headers")

	write(&Shdr{})
	for i := 1; i < len(w.sections); i++ {
		s := &w.sections[i]
		write(&Shdr{
			Name:      s.Name,
			Type:      s.Type,
			Flags:     s.Flags,
			Addr:      s.Addr,
			Offset:    l.SectionOffsets[i],
			Size:      s.size(),
			Link:      s.Link,
			Info:      s.Info,
			AddrAlign: s.AddrAlign,
			EntSize:   s.FixedEntSize,
		})
	}
	mustLen(out, l.ContentsOffset, "section headers")

	for i := range w.sections {
		s := &w.sections[i]
		if len(s.Content) == 0 {
			continue
		}
		pad := uint64(l.SectionOffsets[i]) - uint64(out.Len())
		out.Write(make([]byte, pad))
		out.Write(s.Content)
	}
	mustLen(out, l.End, "section contents")

	return out.Bytes(), nil
}

// WriteTo serializes the image into sink. Errors from sink are returned
// unchanged.
func (w *Writer) WriteTo(sink io.Writer) (int64, error) {
	image, err := w.Write()
	if err != nil {
		return 0, err
	}
	n, err := sink.Write(image)
	return int64(n), err
}

func mustLen(out *bytes.Buffer, want uint64, after string) {
	if uint64(out.Len()) != want {
		panic(fmt.Sprintf("layout mismatch after %s: at %d, expected %d", after, out.Len(), want))
	}
}
