package linker

import (
	"errors"

	"elfld/pkg/elf"
	"elfld/pkg/utils"
)

// FileHandle identifies an input file in diagnostics. ID is the position of
// the file on the command line.
type FileHandle struct {
	ID   uint32
	Name string
}

func (h FileHandle) String() string {
	return h.Name
}

type InputFile struct {
	File   *File
	Handle FileHandle
	Elf    *elf.Reader

	Sections    []elf.Shdr
	FirstGlobal int
	SymTable    []elf.Sym
}

func NewInputFile(file *File, id uint32) (InputFile, error) {
	r, err := elf.NewReader(file.Contents)
	if err != nil {
		return InputFile{}, err
	}

	sections, err := r.SectionHeaders()
	if err != nil {
		return InputFile{}, err
	}

	return InputFile{
		File:     file,
		Handle:   FileHandle{ID: id, Name: file.Name},
		Elf:      r,
		Sections: sections,
	}, nil
}

func (f *InputFile) GetEhdr() *elf.Header {
	h, err := f.Elf.Header()
	// NewInputFile already viewed the header through the same checks
	utils.MustNo(err)
	return h
}

func (f *InputFile) GetBytesFromShdr(shdr *elf.Shdr) ([]byte, error) {
	return f.Elf.SectionContent(shdr)
}

func (f *InputFile) GetBytesFromIndex(idx elf.SectionIdx) ([]byte, error) {
	shdr, err := f.Elf.SectionHeader(idx)
	if err != nil {
		return nil, err
	}
	return f.GetBytesFromShdr(shdr)
}

// FindSection returns the first section of the given type, or nil.
func (f *InputFile) FindSection(ty elf.ShType) *elf.Shdr {
	for i := range f.Sections {
		if f.Sections[i].Type == ty {
			return &f.Sections[i]
		}
	}
	return nil
}

// FindSectionByName returns the section called name, or nil when the file has
// none. Any other read error is returned.
func (f *InputFile) FindSectionByName(name string) (*elf.Shdr, elf.SectionIdx, error) {
	shdr, err := f.Elf.SectionHeaderByName(name)
	if errors.Is(err, elf.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	idx, err := f.Elf.SectionIndex(shdr)
	if err != nil {
		return nil, 0, err
	}
	return shdr, idx, nil
}

func (f *InputFile) FillUpSymbols() error {
	syms, err := f.Elf.Symbols()
	if err != nil {
		return err
	}
	f.SymTable = syms
	return nil
}
