package linker

import (
	"errors"
	"fmt"

	"elfld/pkg/elf"
)

var ErrNotRelocatable = errors.New("not a relocatable object file")

type ObjectFile struct {
	InputFile

	SymtabSection *elf.Shdr
}

func NewObjectFile(file *File, id uint32) (*ObjectFile, error) {
	input, err := NewInputFile(file, id)
	if err != nil {
		return nil, err
	}
	o := &ObjectFile{InputFile: input}

	if ty := o.GetEhdr().Type; ty != elf.ET_REL {
		return nil, fmt.Errorf("%w: file type is %v", ErrNotRelocatable, ty)
	}

	return o, nil
}

// Parse loads the symbol table. An object without one defines and references
// nothing.
func (o *ObjectFile) Parse() error {
	o.SymtabSection = o.FindSection(elf.SHT_SYMTAB)
	if o.SymtabSection == nil {
		return nil
	}

	o.FirstGlobal = int(o.SymtabSection.Info)
	return o.FillUpSymbols()
}

// SymbolName names esym; section symbols are named after their section.
func (o *ObjectFile) SymbolName(esym *elf.Sym) (string, error) {
	return o.Elf.SymbolName(esym)
}
