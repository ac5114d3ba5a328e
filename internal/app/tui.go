package app

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/delegator/internal/telemetry"
	"github.com/dshills/delegator/internal/terminal"
)

// RunTUI drives the document from terminal input on screen until ctx is
// done or the user quits. The screen must be initialized. Config changes
// are applied on the terminal loop until RunTUI returns.
func (a *Application) RunTUI(ctx context.Context, screen tcell.Screen) error {
	if a.closed {
		return ErrClosed
	}
	logger := telemetry.WithComponent(a.logger, "terminal")
	src, err := terminal.NewSource(a.doc,
		terminal.WithDoubleClick(a.cfg.Terminal.DoubleClickTime(), a.cfg.Terminal.DoubleClickDistance),
		terminal.WithLogger(logger),
		terminal.WithPanicHandler(func(r any) {
			logger.Error().Interface("panic", r).Msg("listener panic")
		}),
	)
	if err != nil {
		return err
	}

	post := func(fn func()) {
		if err := terminal.Post(screen, fn); err != nil {
			logger.Warn().Err(err).Msg("dropping posted work")
		}
	}
	if err := a.WatchConfig(post); err != nil {
		logger.Warn().Err(err).Msg("config watch disabled")
	}
	defer a.stopWatch()
	return src.Run(ctx, screen)
}
