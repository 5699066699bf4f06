package linker

import (
	"elfld/pkg/elf"
	"elfld/pkg/utils"
)

type InputSection struct {
	File     *ObjectFile
	Contents []byte
	Shndx    elf.SectionIdx
}

func NewInputSection(file *ObjectFile, shndx elf.SectionIdx) (*InputSection, error) {
	s := &InputSection{
		File:  file,
		Shndx: shndx,
	}

	contents, err := file.GetBytesFromShdr(s.Shdr())
	if err != nil {
		return nil, err
	}
	s.Contents = contents

	return s, nil
}

func (i *InputSection) Shdr() *elf.Shdr {
	utils.Assert(int(i.Shndx) < len(i.File.Sections))
	return &i.File.Sections[i.Shndx]
}

func (i *InputSection) Name() string {
	name, err := i.File.Elf.ShString(i.Shdr().Name)
	utils.MustNo(err)
	return name
}
