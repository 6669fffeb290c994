package cmd

import (
	"github.com/urfave/cli"

	"github.com/vantage-render/vantage/log"
)

var logger = log.New("vantage")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
