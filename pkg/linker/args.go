package linker

import (
	"errors"
	"fmt"
	"strings"

	"elfld/pkg/utils"
)

var (
	ErrResponseFile = errors.New("@file response files are not supported")
	ErrUnknownFlag  = errors.New("unknown option")
	ErrMissingValue = errors.New("option requires a value")
)

type option struct {
	short byte
	long  string
	// set is called with the value for options that take one, and with ""
	// for plain flags.
	set        func(args *ContextArgs, value string)
	takesValue bool
}

var options = []option{
	{short: 'o', long: "output", takesValue: true, set: func(args *ContextArgs, v string) { args.Output = v }},
	{short: 'e', long: "entry", takesValue: true, set: func(args *ContextArgs, v string) { args.Entry = v }},
	{long: "no-undefined", set: func(args *ContextArgs, _ string) { args.NoUndefined = true }},
	{long: "no-relocs", set: func(args *ContextArgs, _ string) { args.ApplyRelocs = false }},
	{short: 'v', long: "verbose", set: func(args *ContextArgs, _ string) { args.Verbose = true }},
}

func findLong(name string) *option {
	for i := range options {
		if options[i].long == name {
			return &options[i]
		}
	}
	return nil
}

func findShort(c byte) *option {
	for i := range options {
		if options[i].short != 0 && options[i].short == c {
			return &options[i]
		}
	}
	return nil
}

// ParseArgs applies the ld style options in argv to args and returns the
// remaining input paths.
//
// Long options may be spelled with one or two dashes and take their value
// either after '=' or as the next argument. Short options take their value
// attached or as the next argument. A single dash word starting with 'o' is
// always -o with an attached file name, so -output.o means "-o utput.o".
func ParseArgs(args *ContextArgs, argv []string) ([]string, error) {
	var remaining []string
	var pending *option

	for _, arg := range argv {
		if pending != nil {
			pending.set(args, arg)
			pending = nil
			continue
		}

		if strings.HasPrefix(arg, "@") {
			return nil, fmt.Errorf("%w: %s", ErrResponseFile, arg)
		}

		if len(arg) < 2 || arg[0] != '-' {
			if arg == "-" {
				return nil, fmt.Errorf("%w: reading from stdin", ErrUnknownFlag)
			}
			remaining = append(remaining, arg)
			continue
		}

		body, doubleDash := utils.RemovePrefix(arg[1:], "-")
		name, value, hasValue := strings.Cut(body, "=")

		if doubleDash || !strings.HasPrefix(name, "o") {
			if opt := findLong(name); opt != nil {
				switch {
				case opt.takesValue && hasValue:
					opt.set(args, value)
				case opt.takesValue:
					pending = opt
				case hasValue:
					return nil, fmt.Errorf("option %s does not take a value", arg)
				default:
					opt.set(args, "")
				}
				continue
			}
		}

		if !doubleDash {
			if opt := findShort(body[0]); opt != nil {
				switch {
				case opt.takesValue && len(body) > 1:
					opt.set(args, body[1:])
				case opt.takesValue:
					pending = opt
				case len(body) > 1:
					return nil, fmt.Errorf("option %s does not take a value", arg)
				default:
					opt.set(args, "")
				}
				continue
			}
		}

		return nil, fmt.Errorf("%w: %s", ErrUnknownFlag, arg)
	}

	if pending != nil {
		return nil, fmt.Errorf("%w: --%s", ErrMissingValue, pending.long)
	}

	return remaining, nil
}
