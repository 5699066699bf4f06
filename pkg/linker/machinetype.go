package linker

import (
	"bytes"

	"elfld/pkg/elf"
	"elfld/pkg/utils"
)

type MachineType uint8

const (
	MachineTypeNone MachineType = iota
	MachineTypeX86_64
)

// GetMachineTypeFromContents inspects the identification and machine fields of
// an ELF header without requiring the buffer to be aligned.
func GetMachineTypeFromContents(contents []byte) MachineType {
	if len(contents) < elf.HeaderSize || !bytes.Equal(contents[:elf.SELFMAG], elf.ELFMAG[:]) {
		return MachineTypeNone
	}

	class := elf.Class(contents[elf.EI_CLASS])
	data := elf.Data(contents[elf.EI_DATA])
	machine := elf.Machine(utils.Read[uint16](contents[18:]))

	if machine == elf.EM_X86_64 && class == elf.ELFCLASS64 && data == elf.ELFDATA2LSB {
		return MachineTypeX86_64
	}

	return MachineTypeNone
}

func (m MachineType) String() string {
	switch m {
	case MachineTypeX86_64:
		return "x86_64"
	}

	utils.Assert(m == MachineTypeNone)
	return "none"
}
