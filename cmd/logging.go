package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-lighttransport/pkg/log"
)

var logger = log.New("lighttransport")

// setupLogging applies the configured level, then the -v/-vv switches on top
func setupLogging(ctx *cli.Context, configured string) {
	if level, err := log.ParseLevel(configured); err == nil {
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
