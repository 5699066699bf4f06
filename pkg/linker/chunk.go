package linker

import (
	"elfld/pkg/elf"
	"elfld/pkg/utils"
)

type outputSectionKind struct {
	name  string
	typ   elf.ShType
	flags elf.ShFlags
}

// outputSectionKinds lists the output sections in emission order.
var outputSectionKinds = []outputSectionKind{
	{".text", elf.SHT_PROGBITS, elf.SHF_ALLOC | elf.SHF_EXECINSTR},
	{".data", elf.SHT_PROGBITS, elf.SHF_ALLOC | elf.SHF_WRITE},
	{".bss", elf.SHT_NOBITS, elf.SHF_ALLOC | elf.SHF_WRITE},
}

func kindOf(name string) outputSectionKind {
	for _, kind := range outputSectionKinds {
		if kind.name == name {
			return kind
		}
	}
	utils.Fatal("unknown output section " + name)
	return outputSectionKind{}
}

// Chunk is a merged output section. Its file offset is chosen by the writer;
// it is page aligned so that it is congruent to Addr.
type Chunk struct {
	Name  string
	Type  elf.ShType
	Flags elf.ShFlags
	Addr  elf.Addr
	Align uint64
	// Contents is empty for SHT_NOBITS chunks.
	Contents []byte
	MemSize  uint64
	Shndx    elf.SectionIdx
}

func NewChunk(sec *AllocatedSection) *Chunk {
	kind := kindOf(sec.Name)
	c := &Chunk{
		Name:    sec.Name,
		Type:    kind.typ,
		Flags:   kind.flags,
		Addr:    sec.Addr(),
		Align:   elf.PageSize,
		MemSize: sec.Size(),
	}

	if c.Type == elf.SHT_NOBITS {
		return c
	}

	c.Contents = make([]byte, 0, c.MemSize)
	for _, part := range sec.Parts {
		c.Contents = append(c.Contents, make([]byte, part.Pad)...)

		contents := part.Section.Contents
		c.Contents = append(c.Contents, contents...)

		// an input section without file bytes still occupies its size
		if n := uint64(len(contents)); n < part.Size {
			c.Contents = append(c.Contents, make([]byte, part.Size-n)...)
		}
	}
	utils.Assert(uint64(len(c.Contents)) == c.MemSize)

	return c
}

// PartContents returns the bytes of part inside the chunk.
func (c *Chunk) PartContents(part *SegmentPart) []byte {
	off := uint64(part.Base - c.Addr)
	return c.Contents[off : off+part.Size]
}

func (c *Chunk) IsWritable() bool {
	return c.Flags&elf.SHF_WRITE != 0
}

func (c *Chunk) IsExecutable() bool {
	return c.Flags&elf.SHF_EXECINSTR != 0
}
