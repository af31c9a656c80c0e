// Package sysmon samples system-wide resource usage and counts the
// conversion engine processes running on the machine.
package sysmon

import (
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// engineNames are the executable names of Excel and LibreOffice, lowercased
// and without extension.
var engineNames = map[string]bool{
	"excel":       true,
	"soffice":     true,
	"soffice.bin": true,
}

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	// Engines is the number of Excel or LibreOffice processes, including
	// ones left behind by other programs.
	Engines int
}

// Sample collects a single system-wide snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	s.Engines = countEngines()
	return s
}

func countEngines() int {
	procs, err := process.Processes()
	if err != nil {
		return 0
	}
	n := 0
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if IsEngineProcess(name) {
			n++
		}
	}
	return n
}

// IsEngineProcess reports whether an executable name belongs to Excel or
// LibreOffice.
func IsEngineProcess(name string) bool {
	name = strings.ToLower(filepath.Base(name))
	name = strings.TrimSuffix(name, ".exe")
	return engineNames[name]
}
