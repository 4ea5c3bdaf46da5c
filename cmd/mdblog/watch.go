package main

import (
	"log/slog"
	"time"

	"github.com/radovskyb/watcher"

	"github.com/thomas11/mdblog"
)

// rerenderOnChange blocks, rebuilding the site whenever something below the
// posts directory changes.
func rerenderOnChange(conf *mdblog.SiteConf, logger *slog.Logger) error {
	logger.Info("Watching for changes", slog.String("dir", conf.PostsDir))

	w := watcher.New()
	w.SetMaxEvents(1)

	go func() {
		for {
			select {
			case <-w.Event:
				if err := renderSite(conf, logger); err != nil {
					logger.Error("Re-render failed", "error", err)
				}
			case err := <-w.Error:
				logger.Error("Watcher error", "error", err)
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.AddRecursive(conf.PostsDir); err != nil {
		return err
	}

	return w.Start(time.Millisecond * 200)
}
