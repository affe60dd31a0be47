/*
Package pagesim simulates fixed-size paging over a small physical memory.

A Simulator owns a physical memory of MemorySize bytes split into frames of
PageSize bytes, and a registry of processes. Creating a process splits its
requested size into pages, binds each page to a free frame and copies the
process contents into those frames. Frames are never released: the
simulation has no process termination, page faults, swapping or replacement.
When not enough frames are free, creation simply fails.

# Quick Start

	sim, err := pagesim.Initialize(1024, 256, 512)
	if err != nil {
	    log.Fatal(err) // only ErrInvalidConfiguration or ErrFatalAllocation
	}
	defer sim.Close()

	res, err := sim.CreateProcess(1, 512)
	// res.Pages == 2, frames 3 and 2 are now in use

	pt, err := sim.PageTableOf(1)
	// pt.Frames == []int{3, 2}

# Frame Selection

Free frames form a stack with the highest index on top. On a fresh simulator
with F frames, successive single-page processes receive frames F-1, F-2, ...
A multi-page process receives consecutive pops, so page 0 gets the highest
free frame.

# Errors

CreateProcess returns ErrDuplicateID, ErrInvalidSize or ErrInsufficientFrames
and leaves the simulator untouched in every case. PageTableOf and Dump return
ErrNotFound for unknown ids. New and Initialize return
ErrInvalidConfiguration for bad geometry and ErrFatalAllocation when physical
memory cannot be allocated; the latter ends the simulation.

	if _, err := sim.CreateProcess(3, 256); errors.Is(err, pagesim.ErrInsufficientFrames) {
	    fmt.Println("memory full")
	}

# Configuration

Config can be built in code, via DefaultConfig, or loaded from YAML:

	memory_size: 1024
	page_size: 256
	max_process_size: 512
	backing_file: /tmp/phys.img   # optional, mirrors memory on disk
	seed: 42                      # optional, reproducible process contents
	log:
	  level: debug
	  format: text

# Thread Safety

A Simulator is not safe for concurrent use.
*/
package pagesim
