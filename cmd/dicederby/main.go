package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"V" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run race trials and report per-competitor win rates"`
	Skills   SkillsCmd        `cmd:"" help:"List the registered skills"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dicederby"),
		kong.Description("Turn-based dice race simulator for estimating win probabilities"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
