package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"elfld/pkg/elf"
	"elfld/pkg/linker"
	"elfld/pkg/utils"
)

type options struct {
	header   bool
	programs bool
	sections bool
	symbols  bool
	relocs   bool
	dynamic  bool
}

func (o options) any() bool {
	return o.header || o.programs || o.sections || o.symbols || o.relocs || o.dynamic
}

func main() {
	var opts options
	flag.BoolVar(&opts.header, "h", false, "print the file header")
	flag.BoolVar(&opts.programs, "l", false, "print the program headers")
	flag.BoolVar(&opts.sections, "S", false, "print the section headers")
	flag.BoolVar(&opts.symbols, "s", false, "print the symbol table")
	flag.BoolVar(&opts.relocs, "r", false, "print the relocations")
	flag.BoolVar(&opts.dynamic, "d", false, "print the dynamic section")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: elfdump [-h] [-l] [-S] [-s] [-r] [-d] files...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if !opts.any() {
		opts = options{header: true, programs: true, sections: true, symbols: true, relocs: true}
	}

	for _, path := range flag.Args() {
		file, err := linker.OpenFile(path)
		utils.MustNo(err)

		r, err := elf.NewReader(file.Contents)
		if err == nil {
			if flag.NArg() > 1 {
				fmt.Printf("\n%s:\n", path)
			}
			err = dump(os.Stdout, r, opts)
		}
		utils.MustNo(errors.Join(err, file.Close()))
	}
}

func dump(out io.Writer, r *elf.Reader, opts options) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	steps := []struct {
		enabled bool
		print   func(*tabwriter.Writer, *elf.Reader) error
	}{
		{opts.header, printHeader},
		{opts.programs, printProgramHeaders},
		{opts.sections, printSections},
		{opts.symbols, printSymbols},
		{opts.relocs, printRelocations},
		{opts.dynamic, printDynamic},
	}

	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := step.print(w, r); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func printHeader(w *tabwriter.Writer, r *elf.Reader) error {
	h, err := r.Header()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Header")
	fmt.Fprintf(w, "  class\t%v\n", h.Ident.Class)
	fmt.Fprintf(w, "  data\t%v\n", h.Ident.Data)
	fmt.Fprintf(w, "  OS ABI\t%v\n", h.Ident.OsAbi)
	fmt.Fprintf(w, "  type\t%v\n", h.Type)
	fmt.Fprintf(w, "  machine\t%v\n", h.Machine)
	fmt.Fprintf(w, "  entrypoint\t%v\n", h.Entry)
	fmt.Fprintf(w, "  program headers\t%d at %v\n", h.Phnum, h.Phoff)
	fmt.Fprintf(w, "  section headers\t%d at %v\n", h.Shnum, h.Shoff)
	fmt.Fprintf(w, "  section names\t%d\n", h.Shstrndx)
	fmt.Fprintln(w)
	return nil
}

// sectionAt names the section whose file contents contain off.
func sectionAt(r *elf.Reader, off elf.Offset) (string, error) {
	sections, err := r.SectionHeaders()
	if err != nil {
		return "", err
	}
	for i := range sections {
		sh := &sections[i]
		if sh.FileSize() == 0 {
			continue
		}
		if off >= sh.Offset && uint64(off-sh.Offset) < sh.FileSize() {
			return r.ShString(sh.Name)
		}
	}
	return "", nil
}

func printProgramHeaders(w *tabwriter.Writer, r *elf.Reader) error {
	phdrs, err := r.ProgramHeaders()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Program headers")
	fmt.Fprintln(w, "  type\tflags\toffset\tvaddr\tfilesz\tmemsz\talign\tsection\t")
	for _, ph := range phdrs {
		name, err := sectionAt(r, ph.Offset)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %v\t%v\t%v\t%v\t0x%x\t0x%x\t0x%x\t%s\t\n",
			ph.Type, ph.Flags, ph.Offset, ph.VAddr, ph.FileSize, ph.MemSize, ph.Align, name)
	}
	fmt.Fprintln(w)
	return nil
}

func printSections(w *tabwriter.Writer, r *elf.Reader) error {
	sections, err := r.SectionHeaders()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Sections")
	fmt.Fprintln(w, "  idx\tname\ttype\tflags\taddr\toffset\tsize\tentsize\talign\t")
	for i := range sections {
		sh := &sections[i]
		name, err := r.ShString(sh.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %d\t%s\t%v\t%v\t%v\t%v\t0x%x\t%d\t%d\t\n",
			i, name, sh.Type, sh.Flags, sh.Addr, sh.Offset, sh.Size, sh.EntSize, sh.AddrAlign)
	}
	fmt.Fprintln(w)
	return nil
}

// symbolSection is the section column of a symbol: nothing for undefined,
// absolute and common symbols.
func symbolSection(r *elf.Reader, sym *elf.Sym) (string, error) {
	if sym.IsUndef() || sym.Shndx.IsReserved() {
		return "", nil
	}
	sh, err := r.SectionHeader(sym.Shndx)
	if err != nil {
		return "", err
	}
	return r.ShString(sh.Name)
}

func printSymbols(w *tabwriter.Writer, r *elf.Reader) error {
	syms, err := r.Symbols()
	if errors.Is(err, elf.ErrNotFound) {
		fmt.Fprintln(w, "No symbols")
		fmt.Fprintln(w)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Symbols")
	fmt.Fprintln(w, "  idx\tname\ttype\tbind\tvisibility\tsection\tvalue\tsize\t")
	for i := range syms {
		sym := &syms[i]
		name, err := r.SymbolName(sym)
		if err != nil {
			return err
		}
		section, err := symbolSection(r, sym)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %d\t%s\t%v\t%v\t%v\t%s\t%v\t%d\t\n",
			i, name, sym.Info.Type(), sym.Info.Binding(), sym.Visibility(), section, sym.Value, sym.Size)
	}
	fmt.Fprintln(w)
	return nil
}

func printRelocations(w *tabwriter.Writer, r *elf.Reader) error {
	it, err := r.Relas()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Relocations")
	fmt.Fprintln(w, "  section\toffset\ttype\tsymbol\taddend\t")
	for it.Next() {
		sh, rela := it.At()
		target, err := r.SectionHeader(elf.SectionIdx(sh.Info))
		if err != nil {
			return err
		}
		section, err := r.ShString(target.Name)
		if err != nil {
			return err
		}
		sym, err := r.Symbol(rela.Info.Sym())
		if err != nil {
			return err
		}
		name, err := r.SymbolName(sym)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\t%v\t%v\t%s\t%d\t\n", section, rela.Offset, rela.Info.Type(), name, rela.Addend)
	}
	if err := it.Err(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func printDynamic(w *tabwriter.Writer, r *elf.Reader) error {
	dyns, err := r.DynEntries()
	if errors.Is(err, elf.ErrNotFound) {
		fmt.Fprintln(w, "No dynamic section")
		fmt.Fprintln(w)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Dynamic entries")
	fmt.Fprintln(w, "  tag\tvalue\t")
	for _, dyn := range dyns {
		if dyn.Tag == elf.DT_NEEDED {
			name, err := r.DynString(elf.StringIdx(dyn.Val))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %v\t%s\t\n", dyn.Tag, name)
			continue
		}
		fmt.Fprintf(w, "  %v\t0x%x\t\n", dyn.Tag, dyn.Val)
	}
	fmt.Fprintln(w)
	return nil
}
