package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/siftcss/internal/config"
	"github.com/harrison/siftcss/internal/filelock"
	"github.com/harrison/siftcss/internal/logger"
	"github.com/harrison/siftcss/internal/watcher"
)

// NewWatchCommand creates the "sift watch" command: an initial scan followed
// by rescans whenever a watched source file changes, until interrupted.
func NewWatchCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Rescan for candidates whenever source files change",
		Long: `Watch runs an initial scan over the given paths, then watches them for
file changes and rescans on every save. Rapid writes to the same file are
coalesced. The candidate list is rewritten atomically after each pass, so
downstream consumers never observe a partial list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, paths, opts, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultConfigFile, "path to config file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "candidates.txt", "file the candidate list is written to")
	cmd.Flags().StringVar(&opts.io, "io", "", "read strategy: sequential or parallel (overrides config)")
	cmd.Flags().StringVar(&opts.parsing, "parsing", "", "scan strategy: sequential or parallel (overrides config)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log verbosity: trace, debug, info, warn, error")

	return cmd
}

// runWatch drives the watch loop until ctx is cancelled.
func runWatch(ctx context.Context, paths []string, opts *scanOptions, errOut io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	strategy, err := cfg.Strategy()
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(errOut, cfg.LogLevel)

	// Each watch session gets its own ID so overlapping sessions can be
	// told apart in shared logs.
	sessionID := uuid.NewString()
	log.LogInfo(fmt.Sprintf("Watch session %s started", sessionID))

	rescan := func(reason string) {
		if reason != "" {
			log.LogDebug(fmt.Sprintf("[%s] rescan: %s", sessionID, reason))
		}
		candidates, fileCount, err := extractFromPaths(paths, cfg, strategy, log)
		if err != nil {
			log.LogError(fmt.Sprintf("[%s] %v", sessionID, err))
			return
		}
		data := []byte(strings.Join(candidates, "\n") + "\n")
		if len(candidates) == 0 {
			data = nil
		}
		if err := filelock.LockAndWrite(opts.output, data); err != nil {
			log.LogError(fmt.Sprintf("[%s] %v", sessionID, err))
			return
		}
		log.LogInfo(fmt.Sprintf("[%s] %d candidate(s) from %d file(s) -> %s", sessionID, len(candidates), fileCount, opts.output))
	}

	// Initial pass before any event arrives
	rescan("")

	w, err := watcher.New(paths, cfg.Extensions, cfg.Debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			log.LogInfo(fmt.Sprintf("Watch session %s stopped", sessionID))
			return nil
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			rescan(fmt.Sprintf("%s %s", event.Path, event.Op))
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.LogWarn(fmt.Sprintf("[%s] watcher: %v", sessionID, err))
		}
	}
}
