package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/pagesim/internal/logger"
	"github.com/joshuapare/pagesim/pkg/pagesim"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errUsage = errors.New("usage")

// options is the parsed command line.
type options struct {
	debug      bool
	help       bool
	version    bool
	configPath string
	memory     int
	pageSize   int
	maxProcess int
}

// parseArgs reads flags and the optional config file argument.
func parseArgs(args []string) (options, error) {
	var opts options
	intFlag := func(i *int, name string, dst *int) error {
		if *i+1 >= len(args) {
			return fmt.Errorf("%w: %s needs a value", errUsage, name)
		}
		*i++
		n, err := strconv.Atoi(args[*i])
		if err != nil {
			return fmt.Errorf("%w: %s: %q is not an integer", errUsage, name, args[*i])
		}
		*dst = n
		return nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch arg := args[i]; arg {
		case "--debug", "-d":
			opts.debug = true
		case "--help", "-h":
			opts.help = true
		case "--version", "-v":
			opts.version = true
		case "--memory":
			err = intFlag(&i, arg, &opts.memory)
		case "--page-size":
			err = intFlag(&i, arg, &opts.pageSize)
		case "--max-process":
			err = intFlag(&i, arg, &opts.maxProcess)
		default:
			if opts.configPath != "" || (len(arg) > 0 && arg[0] == '-') {
				return opts, fmt.Errorf("%w: unexpected argument %q", errUsage, arg)
			}
			opts.configPath = arg
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// config builds the simulator configuration from the config file and flags.
func (o options) config() (*pagesim.Config, error) {
	cfg := pagesim.DefaultConfig()
	if o.configPath != "" {
		loaded, err := pagesim.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.memory != 0 {
		cfg.MemorySize = o.memory
	}
	if o.pageSize != 0 {
		cfg.PageSize = o.pageSize
	}
	if o.maxProcess != 0 {
		cfg.MaxProcessSize = o.maxProcess
	}
	return cfg, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: opts.debug,
		Prefix:  "pageexplorer-",
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if opts.help {
		printHelp()
		os.Exit(0)
	}

	if opts.version {
		fmt.Printf("pageexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	cfg, err := opts.config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sim, err := pagesim.New(*cfg, nil)
	if err != nil {
		logger.Error("simulator init failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting pageexplorer", "session", sim.Session(), "debug", opts.debug)

	p := tea.NewProgram(NewModel(sim), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		_ = sim.Close()
		os.Exit(1)
	}

	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing simulator", "error", err)
		}
	}

	logger.Info("pageexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: pageexplorer [options] [config.yaml]\n")
	fmt.Fprintf(os.Stderr, "Try 'pageexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("pageexplorer - Interactive TUI for the paging simulator")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  pageexplorer [options] [config.yaml]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Shows physical frames, processes and page tables while you create")
	fmt.Println("  processes. Without a config file a 64 KB memory with 4 KB pages is used.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    ↑/k, ↓/j    Move in the focused pane")
	fmt.Println("    ←/h, →/l    Move between frames")
	fmt.Println("    Tab         Switch between processes and frames")
	fmt.Println("    n           Create a process")
	fmt.Println("    y           Copy the selected page table")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  --memory N       Physical memory size in bytes")
	fmt.Println("  --page-size N    Page/frame size in bytes")
	fmt.Println("  --max-process N  Maximum process size in bytes")
	fmt.Println("  -d, --debug      Enable debug logging to ~/.pagesim/logs/")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println()
	fmt.Println("For scripted runs, use the 'pagectl' command instead.")
}
