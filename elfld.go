package main

import (
	"os"

	"elfld/pkg/linker"
	"elfld/pkg/utils"
)

func main() {
	ctx := linker.NewContext()
	utils.MustNo(linker.ApplyEnv(&ctx.Args))

	remaining, err := linker.ParseArgs(&ctx.Args, os.Args[1:])
	utils.MustNo(err)
	utils.SetVerbose(ctx.Args.Verbose)

	utils.Logger().Debug("linking files", "objs", remaining, "output", ctx.Args.Output)

	utils.MustNo(linker.ReadInputFiles(ctx, remaining))

	image, err := linker.Link(ctx)
	utils.MustNo(err)

	utils.MustNo(linker.WriteOutput(ctx.Args.Output, image))
	utils.MustNo(ctx.Close())
}
