package main

import (
	"fmt"
	"os"

	"github.com/df07/go-distribution-raytracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	// -v is the verbose flag, so the version flag gets the long name only
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	scenesDirFlag := cli.StringFlag{
		Name:  "scenes-dir",
		Value: "scenes",
		Usage: "directory searched for *.yaml scene files",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes with a distribution ray tracer"
	app.Version = "0.1.0"
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
			Name:  "render",
			Usage: "render a scene to a PNG file",
			Description: `
Render a built-in scene or a YAML scene file. Resolution, sampling, lens and
render loop flags override the values from the scene; zero keeps them.

Without --out the image is written to output/<scene>/render_<timestamp>.png.`,
			ArgsUsage: "[scene]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cornell",
					Usage: "built-in scene name, file:<name> from the scenes directory, or a path",
				},
				scenesDirFlag,
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
				cli.IntFlag{
					Name:  "hres",
					Usage: "horizontal resolution in pixels",
				},
				cli.IntFlag{
					Name:  "vres",
					Usage: "vertical resolution in pixels",
				},
				cli.Float64Flag{
					Name:  "pixel-size",
					Usage: "size of a pixel on the view plane",
				},
				cli.IntFlag{
					Name:  "samples",
					Usage: "per-axis samples per pixel (n² rays)",
				},
				cli.IntFlag{
					Name:  "ao-samples",
					Usage: "per-axis ambient occlusion samples; enables ambient occlusion",
				},
				cli.Float64Flag{
					Name:  "lens-radius",
					Usage: "thin lens radius",
				},
				cli.Float64Flag{
					Name:  "focal-distance",
					Usage: "thin lens focal plane distance",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "tiles rendered concurrently (default: CPU count)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Usage: "tile edge length in pixels",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "base random seed",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:  "scenes",
			Usage: "inspect available scenes",
			Subcommands: []cli.Command{
				{
					Name:   "list",
					Usage:  "list built-in scenes and scene files",
					Flags:  []cli.Flag{scenesDirFlag},
					Action: cmd.ListScenes,
				},
				{
					Name:      "show",
					Usage:     "print a scene as YAML",
					ArgsUsage: "scene",
					Flags:     []cli.Flag{scenesDirFlag},
					Action:    cmd.ShowScene,
				},
			},
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
