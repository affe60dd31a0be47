package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pagesim/internal/logger"
	"github.com/joshuapare/pagesim/pkg/pagesim"
	"github.com/joshuapare/pagesim/pkg/printer"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	debugLog    bool
	configPath  string
	memorySize  int
	pageSize    int
	maxProcess  int
	backingFile string
	seed        uint64
)

var rootCmd = &cobra.Command{
	Use:   "pagectl",
	Short: "Simulate fixed-size paging over a small physical memory",
	Long: `pagectl is a teaching simulator for paging. Physical memory is split into
equal frames; each process you create is split into pages that are mapped to
free frames. Inspect memory and page tables as the frames fill up.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&debugLog, "debug", "d", false, "Log all simulator events to stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().IntVar(&memorySize, "memory", 0, "Physical memory size in bytes (power of 2)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Page/frame size in bytes (power of 2)")
	rootCmd.PersistentFlags().IntVar(&maxProcess, "max-process", 0, "Maximum process size in bytes (power of 2)")
	rootCmd.PersistentFlags().StringVar(&backingFile, "backing-file", "", "Mirror physical memory into this file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for process contents (0 = random)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// configureLogging sends simulator logs to w. --verbose logs at the
// configured level, --debug at debug level; otherwise logs are discarded.
func configureLogging(w io.Writer, cfg *pagesim.Config) error {
	level := logger.ParseLevel(cfg.Log.Level)
	if debugLog {
		level = slog.LevelDebug
	}
	return logger.Init(logger.Options{
		Enabled: debugLog || verbose,
		Writer:  w,
		Format:  logger.Format(strings.ToLower(cfg.Log.Format)),
		Level:   level,
	})
}

// sizeFlags records which geometry values came from flags or a config file.
type sizeFlags struct {
	memory, page, maxProcess bool
}

func (s sizeFlags) complete() bool {
	return s.memory && s.page && s.maxProcess
}

// resolveConfig layers a config file and flags over base. It does not
// validate; callers decide whether missing sizes are prompted for or fatal.
func resolveConfig(cmd *cobra.Command, base *pagesim.Config) (*pagesim.Config, sizeFlags, error) {
	cfg := base
	var set sizeFlags
	if configPath != "" {
		loaded, err := pagesim.LoadConfig(configPath)
		if err != nil {
			return nil, set, err
		}
		cfg = loaded
		set = sizeFlags{memory: true, page: true, maxProcess: true}
	}

	flags := cmd.Flags()
	if flags.Changed("memory") {
		cfg.MemorySize = memorySize
		set.memory = true
	}
	if flags.Changed("page-size") {
		cfg.PageSize = pageSize
		set.page = true
	}
	if flags.Changed("max-process") {
		cfg.MaxProcessSize = maxProcess
		set.maxProcess = true
	}
	if flags.Changed("backing-file") {
		cfg.BackingFile = backingFile
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, set, nil
}

// newPrinter returns a printer honoring --json.
func newPrinter(src printer.Source, w io.Writer) *printer.Printer {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return printer.New(src, w, opts)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(w io.Writer, format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(w io.Writer, format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
