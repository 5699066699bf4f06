package linker

import (
	"elfld/pkg/elf"
)

func ToPhdrFlags(chunk *Chunk) elf.PhFlags {
	ret := elf.PF_R
	if chunk.IsWritable() {
		ret |= elf.PF_W
	}
	if chunk.IsExecutable() {
		ret |= elf.PF_X
	}
	return ret
}

// CreatePhdrs builds the program headers of the image: a read-only segment
// mapping the file and program headers at the base address, then one
// loadable segment per chunk. Chunks must already have their output section
// index.
func CreatePhdrs(ctx *Context, headersSize uint64) []elf.ProgramHeader {
	vec := make([]elf.ProgramHeader, 0, len(ctx.Chunks)+1)

	define := func(flags elf.PhFlags, shndx elf.SectionIdx, addr elf.Addr, fileSize, memSize uint64) {
		vec = append(vec, elf.ProgramHeader{
			Type:     elf.PT_LOAD,
			Flags:    flags,
			Offset:   elf.SectionRelativeOffset{Section: shndx},
			VAddr:    addr,
			PAddr:    addr,
			FileSize: fileSize,
			MemSize:  memSize,
			Align:    elf.PageSize,
		})
	}

	define(elf.PF_R, 0, ctx.Args.BaseAddr, headersSize, headersSize)

	for _, chunk := range ctx.Chunks {
		define(ToPhdrFlags(chunk), chunk.Shndx, chunk.Addr, uint64(len(chunk.Contents)), chunk.MemSize)
	}

	return vec
}
