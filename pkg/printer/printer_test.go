package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pagesim/pkg/pagesim"
)

// newTestSource builds the 1024/256/512 simulator with process 1 (512 bytes)
// in frames 3 and 2.
func newTestSource(t *testing.T) *pagesim.Simulator {
	t.Helper()

	cfg := pagesim.DefaultConfig()
	cfg.MemorySize, cfg.PageSize, cfg.MaxProcessSize = 1024, 256, 512
	sim, err := pagesim.New(*cfg, &pagesim.Options{
		Filler: pagesim.FillerFunc(func(p []byte) {
			for i := range p {
				p[i] = 0xAB
			}
		}),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sim.Close() })

	_, err = sim.CreateProcess(1, 512)
	require.NoError(t, err)
	return sim
}

func TestPrinter_PrintStatus_Text(t *testing.T) {
	sim := newTestSource(t)

	var buf bytes.Buffer
	require.NoError(t, New(sim, &buf, DefaultOptions()).PrintStatus())

	want := `
=== Physical Memory Status ===
Total Physical Memory: 1,024 bytes
Page Size: 256 bytes
Total Number of Frames: 4
Free Frames: 2 (50.00%)

Frame Status:
Frame	Status
0	Free
1	Free
2	Occupied (PID 1)
3	Occupied (PID 1)
`
	assert.Equal(t, want, buf.String())
}

func TestPrinter_PrintStatus_Plain(t *testing.T) {
	sim := newTestSource(t)

	opts := DefaultOptions()
	opts.ShowOwners = false
	opts.GroupDigits = false

	var buf bytes.Buffer
	require.NoError(t, New(sim, &buf, opts).PrintStatus())

	out := buf.String()
	assert.Contains(t, out, "Total Physical Memory: 1024 bytes")
	assert.Contains(t, out, "3\tOccupied\n")
	assert.NotContains(t, out, "PID")
}

func TestPrinter_PrintStatus_JSON(t *testing.T) {
	sim := newTestSource(t)

	opts := DefaultOptions()
	opts.Format = FormatJSON

	var buf bytes.Buffer
	require.NoError(t, New(sim, &buf, opts).PrintStatus())

	var st pagesim.MemoryStatus
	require.NoError(t, json.Unmarshal(buf.Bytes(), &st))
	assert.Equal(t, 4, st.Frames)
	assert.Equal(t, 2, st.FreeFrames)
	assert.Equal(t, []bool{false, false, true, true}, st.Occupied())
}

func TestPrinter_PrintPageTable_Text(t *testing.T) {
	sim := newTestSource(t)

	var buf bytes.Buffer
	require.NoError(t, New(sim, &buf, DefaultOptions()).PrintPageTable(1))

	want := `
Page Table for Process ID 1:
Process Size: 512 bytes
Number of Pages: 2
Page	Frame
0	3
1	2
`
	assert.Equal(t, want, buf.String())
}

func TestPrinter_PrintPageTable_NotFound(t *testing.T) {
	sim := newTestSource(t)

	var buf bytes.Buffer
	err := New(sim, &buf, DefaultOptions()).PrintPageTable(9)
	require.ErrorIs(t, err, pagesim.ErrNotFound)
	assert.Empty(t, buf.String())
}

func TestPrinter_PrintProcesses(t *testing.T) {
	sim := newTestSource(t)

	var buf bytes.Buffer
	require.NoError(t, New(sim, &buf, DefaultOptions()).PrintProcesses())
	assert.Equal(t, "\nPID\tSize\tPages\n1\t512\t2\n", buf.String())

	empty, err := pagesim.Initialize(1024, 256, 512)
	require.NoError(t, err)
	t.Cleanup(func() { _ = empty.Close() })

	buf.Reset()
	require.NoError(t, New(empty, &buf, DefaultOptions()).PrintProcesses())
	assert.Contains(t, buf.String(), "No processes available to display.")
}

func TestPrinter_PrintDump(t *testing.T) {
	sim := newTestSource(t)

	opts := DefaultOptions()
	opts.MaxDumpBytes = 32

	var buf bytes.Buffer
	require.NoError(t, New(sim, &buf, opts).PrintDump(1))

	out := buf.String()
	assert.Contains(t, out, "## PID: 1 - 32 bytes")
	assert.Contains(t, out, "00000000  ab ab ab ab")
	assert.Contains(t, out, "00000010  ab ab ab ab")
	assert.NotContains(t, out, "00000020")
}

func TestPrinter_PrintDump_JSON(t *testing.T) {
	sim := newTestSource(t)

	opts := DefaultOptions()
	opts.Format = FormatJSON

	var buf bytes.Buffer
	require.NoError(t, New(sim, &buf, opts).PrintDump(1))

	var d jsonDump
	require.NoError(t, json.Unmarshal(buf.Bytes(), &d))
	assert.Equal(t, 1, d.PID)
	assert.Equal(t, 512, d.Bytes)
	assert.Len(t, d.Data, 512)
}

func TestPrinter_PrintSnapshot_JSON(t *testing.T) {
	sim := newTestSource(t)

	opts := DefaultOptions()
	opts.Format = FormatJSON

	var buf bytes.Buffer
	require.NoError(t, New(sim, &buf, opts).PrintSnapshot())

	var snap pagesim.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
	assert.Equal(t, sim.Session(), snap.Session)
	require.Len(t, snap.PageTables, 1)
	assert.Equal(t, []int{3, 2}, snap.PageTables[0].Frames)
}

func TestPrinter_PrintSnapshot_Text(t *testing.T) {
	sim := newTestSource(t)

	var buf bytes.Buffer
	require.NoError(t, New(sim, &buf, DefaultOptions()).PrintSnapshot())

	out := buf.String()
	assert.Contains(t, out, "=== Physical Memory Status ===")
	assert.Contains(t, out, "Page Table for Process ID 1:")
}
