package cmd

import (
	"github.com/urfave/cli"
)

// NewApp assembles the command line interface
func NewApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lighttransport"
	app.Usage = "render built-in scenes with a Monte Carlo path tracer"
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
			Usage: "render a scene to an image file",
			Description: `
Build one of the registered scenes, trace it on all available cores and write
the result to disk. Settings are read from an optional YAML file and then
overridden by any flag given on the command line.

Pressing Ctrl+C stops the render; the tiles finished so far are still saved.`,
			Flags:  renderFlags(),
			Action: reportErrors(RenderFrame),
		},
		{
			Name:   "scenes",
			Usage:  "list the registered scenes",
			Action: reportErrors(ListScenes),
		},
		{
			Name:  "config",
			Usage: "print the effective configuration as YAML",
			Description: `
Merge the optional --config file with the command line flags and print the
result, or write it to the file named by --save. With no arguments this
prints the defaults, which makes a convenient starting point for a job file.`,
			Flags: append(renderFlags(), cli.StringFlag{
				Name:  "save, s",
				Usage: "write the configuration to this file instead of stdout",
			}),
			Action: reportErrors(WriteConfig),
		},
	}

	return app
}

// reportErrors logs the error a command fails with. The cli package only
// prints errors that carry an exit code.
func reportErrors(action func(*cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		err := action(ctx)
		if err != nil {
			logger.Errorf("%v", err)
		}
		return err
	}
}
