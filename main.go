package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/vantage-render/vantage/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "vantage"
	app.Usage = "build spatial indices for ray-traced scenes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build a BVH from a scene description",
			Description: `
Parse a scene definition from a yaml file, extract bounding volumes for every
primitive and build a SAH-partitioned BVH tree to accelerate ray intersection
tests. Infinite planes cannot be bounded and are reported separately; the ray
tracer must test them directly for every ray.`,
			ArgsUsage: "scene1.yaml scene2.yaml ...",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "bins",
					Value: 12,
					Usage: "number of SAH bins per axis",
				},
				cli.IntFlag{
					Name:  "min-primitives",
					Value: 4,
					Usage: "minimum boundable primitives required to build a tree",
				},
			},
			Action: cmd.BuildScene,
		},
		{
			Name:      "info",
			Usage:     "display primitive counts for a scene description",
			ArgsUsage: "scene.yaml",
			Action:    cmd.ShowSceneInfo,
		},
	}

	app.Run(os.Args)
}
