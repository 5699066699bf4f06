package linker

import (
	"fmt"

	"elfld/pkg/elf"
	"elfld/pkg/utils"
)

// Allocation is one input section that will be placed in an output section.
type Allocation struct {
	Section *InputSection
	Size    uint64
	Align   uint64
}

// SegmentPart is the placement of one Allocation.
type SegmentPart struct {
	// Pad is the number of zero bytes between the end of the previous part, or
	// the start of the output section, and Base.
	Pad     uint64
	Base    elf.Addr
	Align   uint64
	File    FileHandle
	Shndx   elf.SectionIdx
	Size    uint64
	Section *InputSection
}

type AllocatedSection struct {
	Name string
	// Start is page aligned and precedes the padding of the first part.
	Start elf.Addr
	Parts []*SegmentPart
}

func (s *AllocatedSection) Addr() elf.Addr {
	return s.Start
}

// Size is the number of bytes from Start to the end of the last part.
func (s *AllocatedSection) Size() uint64 {
	if len(s.Parts) == 0 {
		return 0
	}
	last := s.Parts[len(s.Parts)-1]
	return uint64(last.Base-s.Start) + last.Size
}

type partKey struct {
	file  uint32
	shndx elf.SectionIdx
}

type StorageAllocation struct {
	Sections []*AllocatedSection

	parts map[partKey]partRef
}

type partRef struct {
	section *AllocatedSection
	part    *SegmentPart
}

func (s *StorageAllocation) Section(name string) *AllocatedSection {
	for _, sec := range s.Sections {
		if sec.Name == name {
			return sec
		}
	}
	return nil
}

// PartFor returns where section shndx of file was placed, or nils when it was
// not allocated.
func (s *StorageAllocation) PartFor(file FileHandle, shndx elf.SectionIdx) (*AllocatedSection, *SegmentPart) {
	ref, ok := s.parts[partKey{file: file.ID, shndx: shndx}]
	if !ok {
		return nil, nil
	}
	return ref.section, ref.part
}

// AllocateStorage assigns an address to every .text, .data and .bss input
// section, starting at base. Each output section starts on a new page, and
// within it the inputs follow in command line order, each aligned to its own
// requirement.
func AllocateStorage(base elf.Addr, objs []*ObjectFile) (*StorageAllocation, error) {
	allocs := make(map[string][]Allocation)

	for _, obj := range objs {
		for _, kind := range outputSectionKinds {
			shdr, shndx, err := obj.FindSectionByName(kind.name)
			if err != nil {
				return nil, err
			}
			if shdr == nil {
				continue
			}

			if shdr.AddrAlign&(shdr.AddrAlign-1) != 0 {
				return nil, fmt.Errorf("%s: section %s has alignment %d, which is not a power of two", obj.Handle, kind.name, shdr.AddrAlign)
			}

			isec, err := NewInputSection(obj, shndx)
			if err != nil {
				return nil, err
			}
			allocs[kind.name] = append(allocs[kind.name], Allocation{
				Section: isec,
				Size:    shdr.Size,
				Align:   shdr.AddrAlign,
			})
		}
	}

	utils.Logger().Debug("allocation pass one completed", "sections", len(allocs))

	storage := &StorageAllocation{parts: make(map[partKey]partRef)}
	current := base

	for _, kind := range outputSectionKinds {
		list, ok := allocs[kind.name]
		if !ok {
			continue
		}

		current = current.AlignUp(elf.PageSize)
		sec := &AllocatedSection{Name: kind.name, Start: current}

		for _, alloc := range list {
			align := max(alloc.Align, 1)
			addr := current.AlignUp(align)

			part := &SegmentPart{
				Pad:     uint64(addr - current),
				Base:    addr,
				Align:   align,
				File:    alloc.Section.File.Handle,
				Shndx:   alloc.Section.Shndx,
				Size:    alloc.Size,
				Section: alloc.Section,
			}
			sec.Parts = append(sec.Parts, part)
			storage.parts[partKey{file: part.File.ID, shndx: part.Shndx}] = partRef{section: sec, part: part}
			utils.Logger().Debug("placed input section", "file", part.File, "section", alloc.Section.Name(), "addr", addr, "pad", part.Pad)

			current = addr.Add(alloc.Size)
		}

		utils.Logger().Debug("allocated section", "name", sec.Name, "addr", sec.Start, "size", sec.Size(), "parts", len(sec.Parts))
		storage.Sections = append(storage.Sections, sec)
	}

	return storage, nil
}
