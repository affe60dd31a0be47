package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pagesim/internal/pow2"
	"github.com/joshuapare/pagesim/pkg/pagesim"
	"github.com/joshuapare/pagesim/pkg/printer"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive paging menu",
	Long: `The run command starts an interactive session. Any memory geometry not
given by --config or flags is prompted for, then a menu lets you view physical
memory, view a process page table and create processes.

Example:
  pagectl run
  pagectl run --memory 1024 --page-size 256 --max-process 512`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

const mainMenu = `
+------------------------------------------+
|                MAIN MENU                 |
+------------------------------------------+
| 1. View Physical Memory                  |
| 2. View Process Page Table               |
| 3. Create Process                        |
| 4. Exit                                  |
+------------------------------------------+
`

// session is one interactive run over a line-oriented input.
type session struct {
	in  *bufio.Scanner
	out io.Writer
	sim *pagesim.Simulator
	pr  *printer.Printer
}

func runInteractive(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	cfg, set, err := resolveConfig(cmd, pagesim.DefaultConfig())
	if err != nil {
		return err
	}

	if err := configureLogging(cmd.ErrOrStderr(), cfg); err != nil {
		return err
	}

	s := &session{in: bufio.NewScanner(in), out: out}
	fmt.Fprint(out, "=== Memory Paging Simulator ===\n\n")
	if !set.complete() {
		fmt.Fprint(out, "Initial Configuration:\n")
		if err := s.promptConfig(cfg, set); err != nil {
			return ignoreEOF(err)
		}
	}

	sim, err := pagesim.New(*cfg, nil)
	if err != nil {
		return err
	}
	defer sim.Close()
	s.sim = sim
	s.pr = newPrinter(sim, out)
	printVerbose(out, "Session %s: %d frames of %d bytes\n", sim.Session(), cfg.Frames(), cfg.PageSize)

	return ignoreEOF(s.loop(cmd.Context()))
}

func (s *session) loop(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, mainMenu)
		choice, err := s.readInt("Select an option: ", "Invalid input. Please enter a valid option.")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			if err := s.pr.PrintStatus(); err != nil {
				return err
			}
		case 2:
			if err := s.viewPageTable(); err != nil {
				return err
			}
		case 3:
			if err := s.createProcess(); err != nil {
				return err
			}
		case 4:
			fmt.Fprintln(s.out, "Exiting the simulator...")
			if ctx == nil {
				ctx = context.Background()
			}
			return s.sim.Flush(ctx)
		default:
			fmt.Fprintln(s.out, "Invalid option. Please select a valid option from the menu.")
		}
	}
}

// promptConfig asks for every geometry value not already set, re-prompting
// until each one is a power of two that fits in memory.
func (s *session) promptConfig(cfg *pagesim.Config, set sizeFlags) error {
	var err error
	for !set.memory {
		cfg.MemorySize, err = s.readSize(
			"Enter the size of physical memory in bytes (power of 2): ",
			"Error: Size must be a power of 2.", 0, "")
		if err != nil {
			return err
		}
		// Sizes fixed by flags or a config file bound memory from below.
		switch {
		case set.page && cfg.PageSize > cfg.MemorySize:
			fmt.Fprintln(s.out, "Error: Page size cannot exceed total memory size.")
		case set.maxProcess && cfg.MaxProcessSize > cfg.MemorySize:
			fmt.Fprintln(s.out, "Error: Maximum process size cannot exceed total memory size.")
		default:
			set.memory = true
		}
	}
	if !set.page {
		cfg.PageSize, err = s.readSize(
			"Enter the size of a page/frame in bytes (power of 2): ",
			"Error: Page size must be a power of 2.",
			cfg.MemorySize, "Error: Page size cannot exceed total memory size.")
		if err != nil {
			return err
		}
	}
	if !set.maxProcess {
		cfg.MaxProcessSize, err = s.readSize(
			"Enter the maximum size of a process in bytes (power of 2): ",
			"Error: Maximum process size must be a power of 2.",
			cfg.MemorySize, "Error: Maximum process size cannot exceed total memory size.")
		if err != nil {
			return err
		}
	}
	return nil
}

// readSize reads a power of two no larger than limit (0 = unbounded).
func (s *session) readSize(prompt, notPow2 string, limit int, tooBig string) (int, error) {
	for {
		n, err := s.readInt(prompt, "Invalid input. Please enter a valid integer.")
		if err != nil {
			return 0, err
		}
		if !pow2.IsPowerOfTwo(n) {
			fmt.Fprintln(s.out, notPow2)
			continue
		}
		if limit > 0 && n > limit {
			fmt.Fprintln(s.out, tooBig)
			continue
		}
		return n, nil
	}
}

func (s *session) createProcess() error {
	fmt.Fprint(s.out, "\n=== Create New Process ===\n")

	var pid int
	for {
		n, err := s.readInt("Enter Process ID (integer): ", "Invalid input. Please enter a valid integer.")
		if err != nil {
			return err
		}
		if s.sim.Contains(n) {
			fmt.Fprintln(s.out, "Error: Process ID must be unique. Please enter a different ID.")
			continue
		}
		pid = n
		break
	}

	maxSize := s.sim.MaxProcessSize()
	prompt := fmt.Sprintf("Enter Process Size in bytes (power of 2, max %d): ", maxSize)
	var size int
	for {
		n, err := s.readInt(prompt, "Invalid input. Please enter a valid integer.")
		if err != nil {
			return err
		}
		if err := s.sim.CheckSize(n); err != nil {
			if !pow2.IsPowerOfTwo(n) {
				fmt.Fprintln(s.out, "Error: Process size must be a power of 2.")
			} else {
				fmt.Fprintf(s.out, "Error: Process size exceeds the maximum allowed size of %d bytes.\n", maxSize)
			}
			continue
		}
		size = n
		break
	}

	info, err := s.sim.CreateProcess(pid, size)
	switch {
	case errors.Is(err, pagesim.ErrInsufficientFrames):
		fmt.Fprintln(s.out, "Error: Insufficient physical memory to allocate the process.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(s.out, "Process created successfully!")
	fmt.Fprintf(s.out, "Process ID: %d\n", info.PID)
	fmt.Fprintf(s.out, "Process Size: %d bytes\n", info.Size)
	fmt.Fprintf(s.out, "Number of Pages: %d\n", info.Pages)
	return nil
}

func (s *session) viewPageTable() error {
	fmt.Fprint(s.out, "\n=== View Process Page Table ===\n")
	if s.sim.ProcessCount() == 0 {
		fmt.Fprint(s.out, "\nNo processes available to display.\n")
		return nil
	}
	fmt.Fprint(s.out, "Enter Process ID: ")
	pid, ok, err := s.readLineInt()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Invalid input. Please enter a valid integer.")
		return nil
	}
	if !s.sim.Contains(pid) {
		fmt.Fprintf(s.out, "Error: Process with ID %d not found.\n", pid)
		return nil
	}
	return s.pr.PrintPageTable(pid)
}

// readInt prompts until a line parses as an integer.
func (s *session) readInt(prompt, invalid string) (int, error) {
	for {
		fmt.Fprint(s.out, prompt)
		n, ok, err := s.readLineInt()
		if err != nil {
			return 0, err
		}
		if ok {
			return n, nil
		}
		fmt.Fprintln(s.out, invalid)
	}
}

// readLineInt reads one line. It returns io.EOF once input is exhausted.
func (s *session) readLineInt() (int, bool, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return 0, false, err
		}
		return 0, false, io.EOF
	}
	n, err := strconv.Atoi(strings.TrimSpace(s.in.Text()))
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
