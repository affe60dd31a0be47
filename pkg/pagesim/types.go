package pagesim

import "github.com/joshuapare/pagesim/proc"

// PID identifies a simulated process.
type PID = proc.PID

// ProcessInfo summarizes one process: its id, requested size and page count.
type ProcessInfo struct {
	PID   PID `json:"pid"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// FrameState describes one physical frame. Owner is meaningful only when
// Free is false.
type FrameState struct {
	Index int  `json:"index"`
	Free  bool `json:"free"`
	Owner PID  `json:"owner"`
}

// MemoryStatus is a read-only view of physical memory.
type MemoryStatus struct {
	TotalSize  int          `json:"total_size"`
	PageSize   int          `json:"page_size"`
	Frames     int          `json:"frames"`
	FreeFrames int          `json:"free_frames"`
	FrameState []FrameState `json:"frame_state"`
}

// UsedFrames returns Frames - FreeFrames.
func (s MemoryStatus) UsedFrames() int {
	return s.Frames - s.FreeFrames
}

// FreePercent returns the share of free frames in percent.
func (s MemoryStatus) FreePercent() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.FreeFrames) / float64(s.Frames) * 100
}

// Occupied returns one flag per frame, true when in use.
func (s MemoryStatus) Occupied() []bool {
	out := make([]bool, len(s.FrameState))
	for i, f := range s.FrameState {
		out[i] = !f.Free
	}
	return out
}

// PageTable is a read-only copy of a process's page table.
// Frames[i] holds logical page i.
type PageTable struct {
	PID    PID   `json:"pid"`
	Size   int   `json:"size"`
	Pages  int   `json:"pages"`
	Frames []int `json:"frames"`
}

// Snapshot captures the whole simulation for export.
type Snapshot struct {
	Session    string       `json:"session"`
	Config     Config       `json:"config"`
	Memory     MemoryStatus `json:"memory"`
	PageTables []PageTable  `json:"page_tables"`
}
