package linker

import (
	"fmt"
	"math"

	"elfld/pkg/elf"
	"elfld/pkg/utils"
)

type RelocationError struct {
	File    FileHandle
	Section string
	Offset  elf.Addr
	Type    elf.RX86_64
	Reason  string
}

func (e *RelocationError) Error() string {
	return fmt.Sprintf("%s: %s+%v: %v: %s", e.File, e.Section, e.Offset, e.Type, e.Reason)
}

// ApplyRelocations patches the merged contents of every chunk with the
// relocations of the input sections placed in it. Relocations against
// sections that are not allocated are dropped.
func ApplyRelocations(ctx *Context) error {
	for _, obj := range ctx.Objs {
		it, err := obj.Elf.Relas()
		if err != nil {
			return err
		}

		n := 0
		for it.Next() {
			shdr, rela := it.At()

			sec, part := ctx.Storage.PartFor(obj.Handle, elf.SectionIdx(shdr.Info))
			if part == nil {
				continue
			}
			if err := applyRela(ctx, obj, sec, part, rela); err != nil {
				return err
			}
			n++
		}
		if err := it.Err(); err != nil {
			return fmt.Errorf("%s: %w", obj.Handle, err)
		}

		utils.Logger().Debug("applied relocations", "file", obj.Handle, "count", n)
	}

	return nil
}

func applyRela(ctx *Context, obj *ObjectFile, sec *AllocatedSection, part *SegmentPart, rela *elf.Rela) error {
	typ := rela.Info.Type()
	fail := func(format string, args ...any) error {
		return &RelocationError{
			File:    obj.Handle,
			Section: sec.Name,
			Offset:  rela.Offset,
			Type:    typ,
			Reason:  fmt.Sprintf(format, args...),
		}
	}

	if typ == elf.R_X86_64_NONE {
		return nil
	}

	var size uint64
	switch typ {
	case elf.R_X86_64_64:
		size = 8
	case elf.R_X86_64_32, elf.R_X86_64_32S, elf.R_X86_64_PC32, elf.R_X86_64_PLT32:
		size = 4
	default:
		return fail("unsupported relocation type")
	}

	if uint64(rela.Offset)+size > part.Size {
		return fail("offset is outside of the section of size %d", part.Size)
	}

	chunk := ctx.ChunkByName(sec.Name)
	utils.Assert(chunk != nil)
	if chunk.Type == elf.SHT_NOBITS {
		return fail("cannot relocate a section without contents")
	}

	s, err := relocSymbolAddr(ctx, obj, rela.Info.Sym())
	if err != nil {
		return err
	}
	a := rela.Addend
	p := part.Base + rela.Offset
	loc := chunk.PartContents(part)[rela.Offset:]

	switch typ {
	case elf.R_X86_64_64:
		utils.Write(loc, uint64(s)+uint64(a))
	case elf.R_X86_64_32:
		v := int64(s) + a
		if v < 0 || v > math.MaxUint32 {
			return fail("value 0x%x does not fit in 32 bits", v)
		}
		utils.Write(loc, uint32(v))
	case elf.R_X86_64_32S:
		v := int64(s) + a
		if v < math.MinInt32 || v > math.MaxInt32 {
			return fail("value 0x%x does not fit in 32 signed bits", v)
		}
		utils.Write(loc, int32(v))
	case elf.R_X86_64_PC32, elf.R_X86_64_PLT32:
		// static links have no PLT, so PLT32 resolves to the symbol itself
		v := int64(s) + a - int64(p)
		if v < math.MinInt32 || v > math.MaxInt32 {
			return fail("displacement %d does not fit in 32 signed bits", v)
		}
		utils.Write(loc, int32(v))
	}

	return nil
}

func relocSymbolAddr(ctx *Context, obj *ObjectFile, idx elf.SymIdx) (elf.Addr, error) {
	esym, err := obj.Elf.Symbol(idx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", obj.Handle, err)
	}

	switch {
	case esym.Info.Type() == elf.STT_SECTION:
		return sectionAddr(ctx, obj.Handle, esym.Shndx, 0)
	case esym.IsAbs():
		return esym.Value, nil
	case esym.Info.Binding() == elf.STB_LOCAL && esym.IsDefined():
		return sectionAddr(ctx, obj.Handle, esym.Shndx, esym.Value)
	}

	name, err := obj.SymbolName(esym)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", obj.Handle, err)
	}

	sym, ok := ctx.SymbolMap[name]
	if !ok || !sym.IsDefined() {
		return 0, &UndefinedSymbolError{Name: name, File: obj.Handle}
	}
	return GetSymbolAddr(ctx, sym.Def)
}
