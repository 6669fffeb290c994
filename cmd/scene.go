package cmd

import (
	"errors"

	"github.com/urfave/cli"

	"github.com/vantage-render/vantage/asset/compiler/bvh"
	"github.com/vantage-render/vantage/asset/geometry/reader"
)

// Build a BVH for each scene file given on the command line and display
// tree statistics.
func BuildScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing scene file")
	}

	opts := bvh.DefaultOptions()
	opts.BinCount = ctx.Int("bins")
	opts.MinPrimitives = ctx.Int("min-primitives")

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)

		logger.Noticef("building BVH for scene: %s", sceneFile)
		sc, err := reader.ReadScene(sceneFile)
		if err != nil {
			logger.Error(err)
			return err
		}

		result := bvh.Build(sc, opts)
		if result.BVH == nil {
			logger.Noticef("scene holds fewer than %d boundable primitives; tracer should linear-scan", opts.MinPrimitives)
		}
		logger.Noticef("build results:\n%s", result.Stats())
	}

	return nil
}

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		logger.Error(err)
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}
