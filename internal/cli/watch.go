package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/choices/internal/config"
	"github.com/zjrosen/choices/internal/declfile"
	"github.com/zjrosen/choices/internal/log"
	"github.com/zjrosen/choices/internal/pubsub"
	"github.com/zjrosen/choices/internal/watcher"
)

// ReloadResult is published after every recompilation attempt in watch mode.
// Paths lists the files that were recompiled.
type ReloadResult struct {
	Paths []string
	Err   error
}

func newWatchCmd() *cobra.Command {
	var logStream bool

	cmd := &cobra.Command{
		Use:   "watch [files...]",
		Short: "Recompile declaration files on change",
		Long: `Watches declaration files and recompiles them whenever they change,
printing the result of each reload. Runs until interrupted. By default every
change recompiles the full path set; the reload_changed_only config flag
restricts reloads to the changed files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			paths, err := declPaths(cfg, args)
			if err != nil {
				return err
			}
			labels, err := labelProvider(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			broker := pubsub.NewBroker[ReloadResult]()
			defer broker.Close()

			return runWatch(ctx, cmd, cfg, paths, labels, broker, logStream)
		},
	}

	cmd.Flags().BoolVar(&logStream, "log-stream", false,
		"mirror log lines to stderr while watching")

	return cmd
}

// runWatch compiles once up front, then recompiles after each change batch.
// Reload results go to the broker so embedders (and the local printer loop)
// see them in order; with logStream the logger's subscriber stream is
// drained to stderr as well.
func runWatch(ctx context.Context, cmd *cobra.Command, cfg config.Config,
	paths []string, labels declfile.LabelProvider,
	broker *pubsub.Broker[ReloadResult], logStream bool) error {
	w, err := watcher.New(watcher.Config{
		Paths:       paths,
		DebounceDur: cfg.Debounce(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	if logStream {
		lines := log.Subscribe(ctx)
		if lines == nil {
			// Logging was not enabled via --debug; route it through the
			// broker only so the stream still carries watch activity.
			log.InitWriter(io.Discard)
			lines = log.Subscribe(ctx)
		}
		go func() {
			for ev := range lines {
				fmt.Fprint(cmd.ErrOrStderr(), ev.Payload)
			}
		}()
	}

	events := broker.Subscribe(ctx)
	go func() {
		for ev := range events {
			switch ev.Type {
			case pubsub.ReloadedEvent:
				fmt.Fprintf(cmd.OutOrStdout(), "reloaded %d file(s)\n", len(ev.Payload.Paths))
			case pubsub.FailedEvent:
				fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", ev.Payload.Err)
			}
		}
	}()

	changedOnly := cfg.Flag("reload_changed_only")
	reload := func(changed []string) {
		target := paths
		if changedOnly && changed != nil {
			target = changed
		}
		if _, err := declfile.LoadAll(target, labels); err != nil {
			log.ErrorErr(log.CatWatch, "Reload failed", err, "files", len(target))
			broker.Publish(pubsub.FailedEvent, ReloadResult{Paths: target, Err: err})
			return
		}
		log.Info(log.CatWatch, "Reload succeeded", "files", len(target))
		broker.Publish(pubsub.ReloadedEvent, ReloadResult{Paths: target})
	}

	reload(nil)
	fmt.Fprintf(cmd.OutOrStdout(), "watching %d file(s)\n", len(paths))

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed := <-changes:
			log.Debug(log.CatWatch, "Change detected", "paths", len(changed))
			reload(changed)
		}
	}
}
