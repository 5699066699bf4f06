package linker

import (
	"errors"
	"fmt"
)

var (
	ErrNoInputs         = errors.New("no input files")
	ErrIncompatibleFile = errors.New("incompatible file type")
)

// InputError attaches the path of the input file that failed to load.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func ReadInputFiles(ctx *Context, remaining []string) error {
	if len(remaining) == 0 {
		return ErrNoInputs
	}

	for _, arg := range remaining {
		file, err := OpenFile(arg)
		if err != nil {
			return &InputError{Path: arg, Err: err}
		}

		if err := ReadFile(ctx, file); err != nil {
			file.Close()
			return &InputError{Path: arg, Err: err}
		}
	}

	return nil
}

func ReadFile(ctx *Context, file *File) error {
	obj, err := CreateObjectFile(ctx, file)
	if err != nil {
		return err
	}
	ctx.Objs = append(ctx.Objs, obj)
	return nil
}

func CreateObjectFile(ctx *Context, file *File) (*ObjectFile, error) {
	obj, err := NewObjectFile(file, uint32(len(ctx.Objs)))
	if err != nil {
		return nil, err
	}

	mt := GetMachineTypeFromContents(file.Contents)
	if mt == MachineTypeNone {
		return nil, fmt.Errorf("%w: only little-endian x86_64 ELF64 objects are supported", ErrIncompatibleFile)
	}
	if ctx.Args.Emulation == MachineTypeNone {
		ctx.Args.Emulation = mt
	}
	if mt != ctx.Args.Emulation {
		return nil, fmt.Errorf("%w: %v object in a %v link", ErrIncompatibleFile, mt, ctx.Args.Emulation)
	}

	if err := obj.Parse(); err != nil {
		return nil, err
	}

	return obj, nil
}
