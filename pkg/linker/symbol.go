package linker

import (
	"errors"
	"fmt"
	"sort"

	"elfld/pkg/elf"
)

var ErrSectionNotAllocated = errors.New("section is not allocated")

// SymbolDef is the definition a global symbol resolved to.
type SymbolDef struct {
	File    FileHandle
	Obj     *ObjectFile
	Shndx   elf.SectionIdx
	Value   elf.Addr
	Size    uint64
	Binding elf.SymbolBinding
	Type    elf.SymbolType
}

// Symbol is an entry of the global symbol table. Def is nil while the symbol
// has only been referenced.
type Symbol struct {
	Name         string
	Def          *SymbolDef
	ReferencedBy []FileHandle
}

func NewSymbol(name string) *Symbol {
	s := &Symbol{
		Name: name,
	}

	return s
}

func GetSymbolByName(ctx *Context, name string) *Symbol {
	if sym, ok := ctx.SymbolMap[name]; ok {
		return sym
	}
	ctx.SymbolMap[name] = NewSymbol(name)
	return ctx.SymbolMap[name]
}

func (s *Symbol) IsDefined() bool {
	return s.Def != nil
}

type DuplicateSymbolError struct {
	Name   string
	First  FileHandle
	Second FileHandle
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %s. Already defined in %s, duplicate definition in %s", e.Name, e.First, e.Second)
}

type UndefinedSymbolError struct {
	Name string
	File FileHandle
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("%s: undefined reference to %s", e.File, e.Name)
}

// ResolveSymbols builds the global symbol table from every object, in input
// order. Only symbols from the symbol table's sh_info onwards are considered;
// section, file and local symbols never enter the table.
func ResolveSymbols(ctx *Context) error {
	ctx.SymbolMap = make(map[string]*Symbol)

	for _, obj := range ctx.Objs {
		for i := max(obj.FirstGlobal, 1); i < len(obj.SymTable); i++ {
			esym := &obj.SymTable[i]

			switch esym.Info.Type() {
			case elf.STT_SECTION, elf.STT_FILE:
				continue
			}
			if esym.Info.Binding() == elf.STB_LOCAL {
				continue
			}

			name, err := obj.Elf.String(esym.Name)
			if err != nil {
				return fmt.Errorf("%s: symbol %d: %w", obj.Handle, i, err)
			}

			sym := GetSymbolByName(ctx, name)

			if esym.IsUndef() {
				if !sym.IsDefined() {
					sym.ReferencedBy = append(sym.ReferencedBy, obj.Handle)
				}
				continue
			}

			if sym.IsDefined() {
				return &DuplicateSymbolError{Name: name, First: sym.Def.File, Second: obj.Handle}
			}

			sym.Def = &SymbolDef{
				File:    obj.Handle,
				Obj:     obj,
				Shndx:   esym.Shndx,
				Value:   esym.Value,
				Size:    esym.Size,
				Binding: esym.Info.Binding(),
				Type:    esym.Info.Type(),
			}
		}
	}

	return nil
}

// UndefinedSymbols returns the sorted names of all symbols that are
// referenced but never defined.
func UndefinedSymbols(ctx *Context) []string {
	var names []string
	for name, sym := range ctx.SymbolMap {
		if !sym.IsDefined() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// CheckUndefined fails with the first undefined symbol by name.
func CheckUndefined(ctx *Context) error {
	undefined := UndefinedSymbols(ctx)
	if len(undefined) == 0 {
		return nil
	}
	sym := ctx.SymbolMap[undefined[0]]
	return &UndefinedSymbolError{Name: sym.Name, File: sym.ReferencedBy[0]}
}

// GetSymbolAddr returns the run time address of a definition.
func GetSymbolAddr(ctx *Context, def *SymbolDef) (elf.Addr, error) {
	if def.Shndx == elf.SHN_ABS {
		return def.Value, nil
	}

	return sectionAddr(ctx, def.File, def.Shndx, def.Value)
}

func sectionAddr(ctx *Context, file FileHandle, shndx elf.SectionIdx, value elf.Addr) (elf.Addr, error) {
	if shndx.IsReserved() || shndx == elf.SHN_UNDEF {
		return 0, fmt.Errorf("%s: %w: %v", file, ErrSectionNotAllocated, shndx)
	}

	_, part := ctx.Storage.PartFor(file, shndx)
	if part == nil {
		return 0, fmt.Errorf("%s: %w: section %d", file, ErrSectionNotAllocated, shndx)
	}
	return part.Base + value, nil
}
