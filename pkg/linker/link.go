package linker

import (
	"elfld/pkg/elf"
	"elfld/pkg/utils"
)

// Link merges the loaded objects into an executable image. Nothing is
// written; see WriteOutput.
func Link(ctx *Context) ([]byte, error) {
	log := utils.Logger()

	storage, err := AllocateStorage(ctx.Args.BaseAddr.Add(elf.PageSize), ctx.Objs)
	if err != nil {
		return nil, err
	}
	ctx.Storage = storage

	if err := ResolveSymbols(ctx); err != nil {
		return nil, err
	}
	log.Debug("resolved symbols", "count", len(ctx.SymbolMap), "undefined", len(UndefinedSymbols(ctx)))

	if ctx.Args.NoUndefined {
		if err := CheckUndefined(ctx); err != nil {
			return nil, err
		}
	}

	ctx.Chunks = ctx.Chunks[:0]
	for _, sec := range storage.Sections {
		if sec.Size() == 0 {
			continue
		}
		ctx.Chunks = append(ctx.Chunks, NewChunk(sec))
	}

	if ctx.Args.ApplyRelocs {
		if err := ApplyRelocations(ctx); err != nil {
			return nil, err
		}
	}

	entry, err := GetEntryAddress(ctx)
	if err != nil {
		return nil, err
	}

	w := elf.NewWriter(NewOutputHeader())
	if err := AddOutputSections(ctx, w); err != nil {
		return nil, err
	}

	phnum := len(ctx.Chunks) + 1
	for _, phdr := range CreatePhdrs(ctx, w.HeadersSize(phnum)) {
		w.AddProgramHeader(phdr)
	}
	w.SetEntry(entry)

	image, err := w.Write()
	if err != nil {
		return nil, err
	}
	ctx.Buf = image

	log.Debug("linked", "entry", entry, "size", len(image))
	return image, nil
}
