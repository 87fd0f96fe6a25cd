package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/arthur-debert/gamerepo/cmd/gamerepo"
	"github.com/arthur-debert/gamerepo/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := gamerepo.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, gamerepo.ErrIncomplete) {
			if r, rerr := ui.NewRenderer(ui.FormatAuto, os.Stderr); rerr == nil {
				_ = r.RenderError(err)
			}
		}
		stop()
		os.Exit(1)
	}
}
