package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/arborist/ndverify/internal/debug"
	"github.com/arborist/ndverify/internal/telemetry"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-verify a proof file every time it changes on disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch: adding %s: %w", path, err)
	}

	handle, err := telemetry.Setup(cmd.Context(), cfg.Telemetry)
	if err != nil {
		return err
	}
	defer handle.Shutdown(cmd.Context())

	rerun := func() {
		result, _, err := verifyFile(cmd.Context(), handle, path)
		if err != nil {
			debug.PrintlnNormal("error: " + err.Error())
			return
		}
		_ = renderResult(result)
	}

	rerun()
	debug.PrintlnNormal("watching " + path + " for changes (ctrl-c to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				rerun()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			debug.PrintlnNormal("watch error: " + werr.Error())
		}
	}
}
