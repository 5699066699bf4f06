package linker

import (
	"fmt"
	"strconv"

	"elfld/pkg/elf"

	"github.com/xyproto/env/v2"
)

// Environment variables that override the defaults. Command line flags are
// applied after them and win.
const (
	EnvOutput      = "ELFLD_OUTPUT"
	EnvEntry       = "ELFLD_ENTRY"
	EnvBaseAddr    = "ELFLD_BASE_ADDR"
	EnvNoUndefined = "ELFLD_NO_UNDEFINED"
	EnvNoReloc     = "ELFLD_NO_RELOC"
	EnvVerbose     = "ELFLD_VERBOSE"
)

// ApplyEnv reads the environment as it is now, not as it was on the first
// call.
func ApplyEnv(args *ContextArgs) error {
	env.Load()

	args.Output = env.Str(EnvOutput, args.Output)
	args.Entry = env.Str(EnvEntry, args.Entry)

	if env.Has(EnvBaseAddr) {
		addr, err := ParseAddr(env.Str(EnvBaseAddr))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBaseAddr, err)
		}
		args.BaseAddr = addr
	}

	if env.Has(EnvNoUndefined) {
		args.NoUndefined = env.Bool(EnvNoUndefined)
	}
	if env.Has(EnvNoReloc) {
		args.ApplyRelocs = !env.Bool(EnvNoReloc)
	}
	if env.Has(EnvVerbose) {
		args.Verbose = env.Bool(EnvVerbose)
	}

	return nil
}

// ParseAddr accepts a page aligned address in decimal, or in hex with a 0x
// prefix.
func ParseAddr(s string) (elf.Addr, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, err
	}
	addr := elf.Addr(v)
	if addr.AlignDown(elf.PageSize) != addr {
		return 0, fmt.Errorf("address %v is not page aligned", addr)
	}
	return addr, nil
}
