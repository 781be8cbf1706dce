package cmd

import (
	"errors"

	"github.com/df07/go-distribution-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes and the scene files in the scenes directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.List(ctx.String("scenes-dir"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"ID", "Name", "Type", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.ID, info.DisplayName, info.Type, info.Description})
	}
	table.Render()

	logger.Debugf("listed %d scenes", len(scenes))
	return nil
}

// Print a scene as YAML. Built-in scenes printed this way are a starting
// point for new scene files.
func ShowScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene argument")
	}

	d, err := scene.Open(ctx.Args().First(), ctx.String("scenes-dir"))
	if err != nil {
		return err
	}
	data, err := d.Marshal()
	if err != nil {
		return err
	}

	_, err = ctx.App.Writer.Write(data)
	return err
}
