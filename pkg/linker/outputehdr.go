package linker

import (
	"errors"
	"fmt"

	"elfld/pkg/elf"
)

var ErrEntryUndefined = errors.New("entry symbol is not defined")

func NewOutputHeader() elf.WriterHeader {
	return elf.WriterHeader{
		Ident: elf.Ident{
			Magic:   elf.ELFMAG,
			Class:   elf.ELFCLASS64,
			Data:    elf.ELFDATA2LSB,
			Version: elf.EV_CURRENT,
			OsAbi:   elf.ELFOSABI_SYSV,
		},
		Type:    elf.ET_EXEC, // Executable file
		Machine: elf.EM_X86_64,
	}
}

// GetEntryAddress resolves the entry symbol named in the arguments.
func GetEntryAddress(ctx *Context) (elf.Addr, error) {
	sym, ok := ctx.SymbolMap[ctx.Args.Entry]
	if !ok || !sym.IsDefined() {
		return 0, fmt.Errorf("%w: %s", ErrEntryUndefined, ctx.Args.Entry)
	}
	return GetSymbolAddr(ctx, sym.Def)
}
