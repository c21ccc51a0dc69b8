package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// defaultDebounce collapses the burst of events an editor save produces.
const defaultDebounce = 200 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-check a document every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout(), args[0], debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before a reload")

	return cmd
}

// watch checks path once, then again after every change until ctx ends.
// The parent directory is watched so editors that replace the file on save
// are still seen. Reloads run on this goroutine only.
func (a *app) watch(ctx context.Context, out io.Writer, path string, debounce time.Duration) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	a.reload(out, path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch: watcher error", slog.String("err", err.Error()))
		case <-fire:
			fire = nil
			a.reload(out, path)
		}
	}
}

// reload prints the check result; a broken document is reported, not fatal.
func (a *app) reload(out io.Writer, path string) {
	fmt.Fprintf(out, "--- %s\n", time.Now().Format(time.TimeOnly))
	if err := a.check(out, path); err != nil && !errors.Is(err, errHasErrors) {
		fmt.Fprintf(out, "%s: %v\n", path, err)
	}
}
