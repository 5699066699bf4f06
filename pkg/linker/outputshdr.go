package linker

import (
	"elfld/pkg/elf"
)

// AddOutputSections adds one section per chunk to w and records its index
// in the chunk.
func AddOutputSections(ctx *Context, w *elf.Writer) error {
	for _, chunk := range ctx.Chunks {
		name := w.AddShString(chunk.Name)
		shndx, err := w.AddSection(elf.Section{
			Name:      name,
			Type:      chunk.Type,
			Flags:     chunk.Flags,
			Addr:      chunk.Addr,
			AddrAlign: chunk.Align,
			Content:   chunk.Contents,
			Size:      chunk.MemSize,
		})
		if err != nil {
			return err
		}
		chunk.Shndx = shndx
	}
	return nil
}
