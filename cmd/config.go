package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-lighttransport/pkg/config"
)

// WriteConfig prints the effective configuration, or saves it with --save.
func WriteConfig(ctx *cli.Context) error {
	setupLogging(ctx, "")

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if path := ctx.String("save"); path != "" {
		if err := config.SaveConfig(cfg, path); err != nil {
			return err
		}
		logger.Noticef("configuration written to %s", path)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(data)
	return err
}
