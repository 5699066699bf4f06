package linker

import (
	"errors"

	"elfld/pkg/elf"
)

// BaseAddr is where the first loadable segment of an executable is placed,
// the same address GNU ld uses on x86-64.
const BaseAddr elf.Addr = 0x400000

type ContextArgs struct {
	Output    string
	Entry     string
	Emulation MachineType
	BaseAddr  elf.Addr
	// NoUndefined fails the link when a referenced symbol is never defined.
	NoUndefined bool
	ApplyRelocs bool
	Verbose     bool
}

type Context struct {
	Args      ContextArgs
	Objs      []*ObjectFile
	SymbolMap map[string]*Symbol

	Storage *StorageAllocation
	Chunks  []*Chunk

	Buf []byte
}

func NewContext() *Context {
	return &Context{
		Args: ContextArgs{
			Output:      "a.out",
			Entry:       "_start",
			Emulation:   MachineTypeNone,
			BaseAddr:    BaseAddr,
			ApplyRelocs: true,
		},
		SymbolMap: make(map[string]*Symbol),
	}
}

// Close releases the buffers of every input file. Nothing read from the
// inputs may be used afterwards.
func (ctx *Context) Close() error {
	var errs []error
	for _, obj := range ctx.Objs {
		errs = append(errs, obj.File.Close())
	}
	ctx.Objs = nil
	return errors.Join(errs...)
}

func (ctx *Context) ChunkByName(name string) *Chunk {
	for _, chunk := range ctx.Chunks {
		if chunk.Name == name {
			return chunk
		}
	}
	return nil
}
