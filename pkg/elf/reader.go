package elf

import (
	"bytes"
	"fmt"
)

// Reader is a zero-copy view over the bytes of one ELF64 file. The buffer is
// owned by the caller and must outlive the Reader and every value returned
// from it. Nothing is validated eagerly beyond the magic; each accessor checks
// exactly the region it touches.
//
// Records are viewed in place, so the buffer must be 8 byte aligned. Memory
// mapped files and Go allocated byte slices both are.
type Reader struct {
	data []byte
}

func NewReader(data []byte) (*Reader, error) {
	if len(data) < HeaderSize {
		if len(data) >= SELFMAG && !bytes.Equal(data[:SELFMAG], ELFMAG[:]) {
			return nil, wrongMagic(data[:SELFMAG])
		}
		return nil, fmt.Errorf("%w: expected at least %d bytes, found %d bytes", ErrFileTooSmall, HeaderSize, len(data))
	}

	if !bytes.Equal(data[:SELFMAG], ELFMAG[:]) {
		return nil, wrongMagic(data[:SELFMAG])
	}

	return &Reader{data: data}, nil
}

// Data returns the underlying buffer.
func (r *Reader) Data() []byte {
	return r.data
}

func (r *Reader) Header() (*Header, error) {
	return castRef[Header](r.data, "header")
}

func (r *Reader) ProgramHeaders() ([]Phdr, error) {
	h, err := r.Header()
	if err != nil {
		return nil, err
	}
	if h.Phnum == 0 {
		return []Phdr{}, nil
	}
	if int(h.Phentsize) != PhdrSize {
		return nil, invalidEntSize("program header", PhdrSize, int(h.Phentsize))
	}

	table, err := tail(r.data, uint64(h.Phoff), "program header offset")
	if err != nil {
		return nil, err
	}
	return castSlice[Phdr](table, int(h.Phnum), "program headers")
}

func (r *Reader) SectionHeaders() ([]Shdr, error) {
	h, err := r.Header()
	if err != nil {
		return nil, err
	}
	if h.Shnum == 0 {
		return []Shdr{}, nil
	}
	if int(h.Shentsize) != ShdrSize {
		return nil, invalidEntSize("section header", ShdrSize, int(h.Shentsize))
	}

	table, err := tail(r.data, uint64(h.Shoff), "section header offset")
	if err != nil {
		return nil, err
	}
	return castSlice[Shdr](table, int(h.Shnum), "section headers")
}

func (r *Reader) SectionHeader(idx SectionIdx) (*Shdr, error) {
	sections, err := r.SectionHeaders()
	if err != nil {
		return nil, err
	}
	if int(idx) >= len(sections) {
		return nil, indexOutOfBounds("section number", uint64(idx))
	}
	return &sections[idx], nil
}

// SectionIndex returns the ordinal of sh, which must have been obtained from
// this Reader.
func (r *Reader) SectionIndex(sh *Shdr) (SectionIdx, error) {
	sections, err := r.SectionHeaders()
	if err != nil {
		return 0, err
	}
	for i := range sections {
		if &sections[i] == sh {
			return SectionIdx(i), nil
		}
	}
	return 0, &NotFoundError{Kind: "section", Key: "header not owned by this reader"}
}

func (r *Reader) SectionHeaderByName(name string) (*Shdr, error) {
	sections, err := r.SectionHeaders()
	if err != nil {
		return nil, err
	}
	for i := range sections {
		s, err := r.ShString(sections[i].Name)
		if err != nil {
			return nil, err
		}
		if s == name {
			return &sections[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "section", Key: name}
}

func (r *Reader) SectionHeaderByType(ty ShType) (*Shdr, error) {
	sections, err := r.SectionHeaders()
	if err != nil {
		return nil, err
	}
	for i := range sections {
		if sections[i].Type == ty {
			return &sections[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "section type", Key: ty.String()}
}

// SectionContent returns the bytes of a section. SHT_NOBITS sections have no
// file representation and yield an empty slice.
func (r *Reader) SectionContent(sh *Shdr) ([]byte, error) {
	if sh.Type == SHT_NOBITS {
		return []byte{}, nil
	}
	return subslice(r.data, uint64(sh.Offset), sh.Size, "section")
}

func (r *Reader) ShStrTable() ([]byte, error) {
	h, err := r.Header()
	if err != nil {
		return nil, err
	}

	idx := h.Shstrndx
	switch {
	case idx == SHN_UNDEF:
		return nil, ErrStrTableNotPresent
	case idx == SHN_XINDEX:
		// the real index lives in sh_link of the initial entry
		first, err := r.SectionHeader(0)
		if err != nil {
			return nil, err
		}
		idx = SectionIdx(first.Link)
	case idx.IsReserved():
		return nil, indexOutOfBounds("section name table index", uint64(idx))
	}

	sh, err := r.SectionHeader(idx)
	if err != nil {
		return nil, err
	}
	return r.SectionContent(sh)
}

func (r *Reader) StrTable() ([]byte, error) {
	sh, err := r.SectionHeaderByName(".strtab")
	if err != nil {
		return nil, err
	}
	return r.SectionContent(sh)
}

func (r *Reader) ShString(idx ShStringIdx) (string, error) {
	table, err := r.ShStrTable()
	if err != nil {
		return "", err
	}
	return stringAt(table, uint64(idx))
}

func (r *Reader) String(idx StringIdx) (string, error) {
	table, err := r.StrTable()
	if err != nil {
		return "", err
	}
	return stringAt(table, uint64(idx))
}

// DynString resolves idx against the string table named by the DT_STRTAB and
// DT_STRSZ entries of the dynamic section.
func (r *Reader) DynString(idx StringIdx) (string, error) {
	addr, err := r.DynEntryByTag(DT_STRTAB)
	if err != nil {
		return "", err
	}
	size, err := r.DynEntryByTag(DT_STRSZ)
	if err != nil {
		return "", err
	}
	table, err := subslice(r.data, addr.Val, size.Val, "dyn string table")
	if err != nil {
		return "", err
	}
	return stringAt(table, uint64(idx))
}

func stringAt(table []byte, idx uint64) (string, error) {
	rest, err := tail(table, idx, "string offset")
	if err != nil {
		return "", err
	}
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", fmt.Errorf("%w: string offset: %d", ErrNoStringNulTerm, idx)
	}
	return string(rest[:end]), nil
}

func (r *Reader) Symbols() ([]Sym, error) {
	sh, err := r.SectionHeaderByType(SHT_SYMTAB)
	if err != nil {
		return nil, err
	}
	data, err := r.SectionContent(sh)
	if err != nil {
		return nil, err
	}
	return castSlice[Sym](data, len(data)/SymSize, "symbols")
}

func (r *Reader) Symbol(idx SymIdx) (*Sym, error) {
	syms, err := r.Symbols()
	if err != nil {
		return nil, err
	}
	if uint64(idx) >= uint64(len(syms)) {
		return nil, indexOutOfBounds("symbol index", uint64(idx))
	}
	return &syms[idx], nil
}

func (r *Reader) SymbolByName(name string) (*Sym, error) {
	syms, err := r.Symbols()
	if err != nil {
		return nil, err
	}
	for i := range syms {
		s, err := r.String(syms[i].Name)
		if err != nil {
			return nil, err
		}
		if s == name {
			return &syms[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "symbol", Key: name}
}

// SymbolName is the display name of sym. Section symbols carry no name of
// their own and are named after the section they refer to.
func (r *Reader) SymbolName(sym *Sym) (string, error) {
	if sym.Info.Type() == STT_SECTION {
		sh, err := r.SectionHeader(sym.Shndx)
		if err != nil {
			return "", err
		}
		return r.ShString(sh.Name)
	}
	return r.String(sym.Name)
}

func (r *Reader) DynEntries() ([]Dyn, error) {
	sh, err := r.SectionHeaderByName(".dynamic")
	if err != nil {
		return nil, err
	}
	data, err := r.SectionContent(sh)
	if err != nil {
		return nil, err
	}
	return castSlice[Dyn](data, len(data)/DynSize, "dyn entries")
}

func (r *Reader) DynEntryByTag(tag DynamicTag) (*Dyn, error) {
	dyns, err := r.DynEntries()
	if err != nil {
		return nil, err
	}
	for i := range dyns {
		if dyns[i].Tag == tag {
			return &dyns[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "dynamic entry", Key: tag.String()}
}

// Relas returns an iterator over every relocation of every SHT_RELA section,
// in section header order and table order within each section.
func (r *Reader) Relas() (*RelaIter, error) {
	sections, err := r.SectionHeaders()
	if err != nil {
		return nil, err
	}
	return &RelaIter{r: r, sections: sections, sec: -1, idx: -1}, nil
}

// RelaIter is a lazy, restartable sequence of (section, relocation) pairs.
//
//	it, _ := r.Relas()
//	for it.Next() {
//		sh, rela := it.At()
//	}
//	if err := it.Err(); err != nil { ... }
type RelaIter struct {
	r        *Reader
	sections []Shdr
	sec      int
	relas    []Rela
	idx      int
	err      error
}

func (it *RelaIter) Next() bool {
	if it.err != nil {
		return false
	}

	it.idx++
	for it.sec < 0 || it.idx >= len(it.relas) {
		it.sec++
		it.idx = 0
		it.relas = nil
		if it.sec >= len(it.sections) {
			return false
		}

		sh := &it.sections[it.sec]
		if sh.Type != SHT_RELA {
			continue
		}
		content, err := it.r.SectionContent(sh)
		if err != nil {
			it.err = err
			return false
		}
		it.relas, err = castSlice[Rela](content, len(content)/RelaSize, "relocations")
		if err != nil {
			it.err = err
			return false
		}
	}
	return true
}

func (it *RelaIter) At() (*Shdr, *Rela) {
	return &it.sections[it.sec], &it.relas[it.idx]
}

func (it *RelaIter) Err() error {
	return it.err
}

// Reset rewinds the iterator to before the first relocation.
func (it *RelaIter) Reset() {
	it.sec = -1
	it.idx = -1
	it.relas = nil
	it.err = nil
}
