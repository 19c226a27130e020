package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/habitual/habitual.db"`

	Menu   cli.MenuCmd   `cmd:"" help:"Launch the interactive menu." default:"1"`
	Init   cli.InitCmd   `cmd:"" help:"Initialize habitual storage."`
	Doctor cli.DoctorCmd `cmd:"" help:"Check database health."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitual"),
		kong.Description("Terminal habit tracker with streaks"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	appCtx := &cli.Context{
		Store: storage.NewSQLiteStore(CLI.Config),
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
