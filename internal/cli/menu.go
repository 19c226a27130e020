package cli

import (
	"os"

	"github.com/julianstephens/habitual/internal/input"
	"github.com/julianstephens/habitual/internal/tui"
)

type MenuCmd struct{}

func (c *MenuCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	app := tui.New(ctx.Store, input.NewTerminalDecoder(os.Stdin), os.Stdout)
	return app.Run()
}
