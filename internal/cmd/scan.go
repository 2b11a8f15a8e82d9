package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/siftcss/internal/config"
	"github.com/harrison/siftcss/internal/filelock"
	"github.com/harrison/siftcss/internal/fileutil"
	"github.com/harrison/siftcss/internal/logger"
	"github.com/harrison/siftcss/pkg/extract"
)

// scanOptions holds the flag values for the scan command
type scanOptions struct {
	configPath string
	output     string
	io         string
	parsing    string
	logLevel   string
}

// NewScanCommand creates the "sift scan" command, which extracts candidates
// from the given files and directories and prints them sorted, one per line.
func NewScanCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Extract utility-class candidates from files and directories",
		Long: `Scan resolves the given paths into a set of source files, extracts every
utility-class candidate they contain, and prints the deduplicated result
sorted ascending by byte value. With no paths, the current directory is
scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}
			return runScan(cmd.OutOrStdout(), cmd.ErrOrStderr(), paths, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultConfigFile, "path to config file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write candidates to file instead of stdout")
	cmd.Flags().StringVar(&opts.io, "io", "", "read strategy: sequential or parallel (overrides config)")
	cmd.Flags().StringVar(&opts.parsing, "parsing", "", "scan strategy: sequential or parallel (overrides config)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log verbosity: trace, debug, info, warn, error")

	return cmd
}

// runScan performs one extraction pass over paths and writes the result.
func runScan(out, errOut io.Writer, paths []string, opts *scanOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	strategy, err := cfg.Strategy()
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(errOut, cfg.LogLevel)

	candidates, fileCount, err := extractFromPaths(paths, cfg, strategy, log)
	if err != nil {
		return err
	}

	if opts.output != "" {
		data := []byte(strings.Join(candidates, "\n") + "\n")
		if len(candidates) == 0 {
			data = nil
		}
		if err := filelock.LockAndWrite(opts.output, data); err != nil {
			return err
		}
		log.LogInfo(fmt.Sprintf("Wrote %d candidate(s) from %d file(s) to %s", len(candidates), fileCount, opts.output))
		return nil
	}

	for _, candidate := range candidates {
		fmt.Fprintln(out, candidate)
	}
	return nil
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(opts *scanOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.io != "" {
		cfg.IO = opts.io
	}
	if opts.parsing != "" {
		cfg.Parsing = opts.parsing
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if debugEnabled() {
		cfg.LogLevel = "trace"
	}
	return cfg, nil
}

// extractFromPaths collects the file set under paths and runs one extraction
// pass over it. Returns the sorted candidates and the number of files scanned.
func extractFromPaths(paths []string, cfg *config.Config, strategy extract.Strategy, log *logger.ConsoleLogger) ([]string, int, error) {
	scan, err := fileutil.CollectFiles(paths, fileutil.ScanOptions{
		Extensions:  cfg.Extensions,
		ExcludeDirs: cfg.ExcludeDirs,
	})
	if err != nil {
		return nil, 0, err
	}
	for _, scanErr := range scan.Errors {
		log.LogWarn(scanErr.Error())
	}

	items := make([]extract.ContentItem, len(scan.Files))
	for i, file := range scan.Files {
		items[i] = extract.ContentItem{
			Path:      file,
			Extension: strings.TrimPrefix(filepath.Ext(file), "."),
		}
	}

	log.LogScanStart(len(items))
	start := time.Now()

	extractor := extract.NewExtractor(log)
	candidates, err := extractor.CandidatesWithStrategy(items, strategy.Byte())
	if err != nil {
		return nil, 0, err
	}

	log.LogScanComplete(len(candidates), time.Since(start))
	return candidates, len(items), nil
}

// debugEnabled reports whether the DEBUG environment toggle requests trace
// output. It only raises log verbosity; extraction output is unaffected.
func debugEnabled() bool {
	value := os.Getenv("DEBUG")
	switch value {
	case "1", "true", "*":
		return true
	}
	return strings.Contains(value, "sift")
}
