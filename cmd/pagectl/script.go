package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/pagesim/pkg/pagesim"
)

var scriptStrict bool

var scriptCmd = &cobra.Command{
	Use:   "script <file>",
	Short: "Run a YAML scenario non-interactively",
	Long: `The script command replays a scenario file. The optional config section
is layered under --config and the geometry flags.

Scenario format:
  config:
    memory_size: 1024
    page_size: 256
    max_process_size: 512
  steps:
    - create: {pid: 1, size: 512}
    - status: true
    - page_table: 1
    - processes: true
    - dump: 1

A failing step is reported and the run continues unless --strict is set.
With --json a single document holding every step result and the final
snapshot is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(cmd, args[0])
	},
}

func init() {
	scriptCmd.Flags().BoolVar(&scriptStrict, "strict", false, "Stop at the first failing step")
	rootCmd.AddCommand(scriptCmd)
}

// scenario is the on-disk script format.
type scenario struct {
	Config pagesim.Config `yaml:"config"`
	Steps  []step         `yaml:"steps"`
}

// step holds exactly one operation.
type step struct {
	Create    *createStep `yaml:"create,omitempty"`
	Status    bool        `yaml:"status,omitempty"`
	PageTable *int        `yaml:"page_table,omitempty"`
	Processes bool        `yaml:"processes,omitempty"`
	Dump      *int        `yaml:"dump,omitempty"`
}

type createStep struct {
	PID  int `yaml:"pid"`
	Size int `yaml:"size"`
}

func (s step) op() string {
	switch {
	case s.Create != nil:
		return "create"
	case s.PageTable != nil:
		return "page_table"
	case s.Dump != nil:
		return "dump"
	case s.Status:
		return "status"
	case s.Processes:
		return "processes"
	}
	return ""
}

// ops counts the operations set on s; a valid step has exactly one.
func (s step) ops() int {
	n := 0
	for _, set := range []bool{s.Create != nil, s.PageTable != nil, s.Dump != nil, s.Status, s.Processes} {
		if set {
			n++
		}
	}
	return n
}

// stepResult is one entry of the --json report.
type stepResult struct {
	Step      int                   `json:"step"`
	Op        string                `json:"op"`
	PID       *int                  `json:"pid,omitempty"`
	Error     string                `json:"error,omitempty"`
	Process   *pagesim.ProcessInfo  `json:"process,omitempty"`
	PageTable *pagesim.PageTable    `json:"page_table,omitempty"`
	Status    *pagesim.MemoryStatus `json:"status,omitempty"`
	Processes []pagesim.ProcessInfo `json:"processes,omitempty"`
	Data      []byte                `json:"data,omitempty"`
}

type scriptReport struct {
	Results  []stepResult     `json:"results"`
	Failed   int              `json:"failed"`
	Snapshot pagesim.Snapshot `json:"snapshot"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc := &scenario{Config: *pagesim.DefaultConfig()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	for i, st := range sc.Steps {
		switch n := st.ops(); {
		case n == 0:
			return nil, fmt.Errorf("parse scenario %s: step %d has no operation", path, i+1)
		case n > 1:
			return nil, fmt.Errorf("parse scenario %s: step %d has more than one operation", path, i+1)
		}
	}
	return sc, nil
}

func runScript(cmd *cobra.Command, path string) error {
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}
	cfg, _, err := resolveConfig(cmd, &sc.Config)
	if err != nil {
		return err
	}

	if err := configureLogging(cmd.ErrOrStderr(), cfg); err != nil {
		return err
	}

	sim, err := pagesim.New(*cfg, nil)
	if err != nil {
		return err
	}
	defer sim.Close()

	out := cmd.OutOrStdout()
	printVerbose(out, "Running %d steps in session %s\n", len(sc.Steps), sim.Session())

	report := scriptReport{Results: make([]stepResult, 0, len(sc.Steps))}
	for i, st := range sc.Steps {
		res := runStep(sim, out, i+1, st)
		report.Results = append(report.Results, res)
		if res.Error == "" {
			continue
		}
		report.Failed++
		if !jsonOut {
			fmt.Fprintf(cmd.ErrOrStderr(), "step %d (%s): %s\n", res.Step, res.Op, res.Error)
		}
		if scriptStrict {
			if jsonOut {
				report.Snapshot = sim.Snapshot()
				_ = printJSON(out, report)
			}
			return fmt.Errorf("step %d (%s): %s", res.Step, res.Op, res.Error)
		}
	}

	if err := sim.Flush(cmd.Context()); err != nil {
		return err
	}
	if jsonOut {
		report.Snapshot = sim.Snapshot()
		return printJSON(out, report)
	}
	printInfo(out, "\n%d steps, %d failed\n", len(report.Results), report.Failed)
	return nil
}

// runStep executes st. In text mode its output is written to out as it runs;
// in JSON mode the data is kept on the result.
func runStep(sim *pagesim.Simulator, out io.Writer, n int, st step) stepResult {
	res := stepResult{Step: n, Op: st.op()}
	pr := newPrinter(sim, out)
	fail := func(err error) stepResult {
		res.Error = err.Error()
		return res
	}

	switch {
	case st.Create != nil:
		pid := st.Create.PID
		res.PID = &pid
		info, err := sim.CreateProcess(pid, st.Create.Size)
		if err != nil {
			return fail(err)
		}
		res.Process = &info
		if !jsonOut {
			pt, err := sim.PageTableOf(pid)
			if err != nil {
				return fail(err)
			}
			printInfo(out, "pid %d: %d bytes in %d pages, frames %v\n", pid, info.Size, info.Pages, pt.Frames)
		}

	case st.PageTable != nil:
		pid := *st.PageTable
		res.PID = &pid
		pt, err := sim.PageTableOf(pid)
		if err != nil {
			return fail(err)
		}
		if jsonOut {
			res.PageTable = &pt
		} else if err := pr.PrintPageTable(pid); err != nil {
			return fail(err)
		}

	case st.Dump != nil:
		pid := *st.Dump
		res.PID = &pid
		data, err := sim.Dump(pid)
		if err != nil {
			return fail(err)
		}
		if jsonOut {
			res.Data = data
		} else if err := pr.PrintDump(pid); err != nil {
			return fail(err)
		}

	case st.Status:
		if jsonOut {
			ms := sim.MemoryStatus()
			res.Status = &ms
		} else if err := pr.PrintStatus(); err != nil {
			return fail(err)
		}

	case st.Processes:
		if jsonOut {
			res.Processes = sim.Processes()
		} else if err := pr.PrintProcesses(); err != nil {
			return fail(err)
		}
	}
	return res
}
