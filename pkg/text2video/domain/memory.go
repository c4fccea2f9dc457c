package domain

import (
	"context"
	"fmt"
)

// BytesPerGB memory is reported in binary gigabytes.
const BytesPerGB = 1024 * 1024 * 1024

// MemoryStats a snapshot of the machine's virtual memory.
type MemoryStats struct {
	Total     uint64
	Available uint64
}

// MemoryInspector tells how much memory the machine has left. Diffusion models are memory-hungry, so we check it
// before loading one.
type MemoryInspector interface {
	VirtualMemory(ctx context.Context) (MemoryStats, error)
}

// FormatGB formats a byte count as gigabytes with two decimals, e.g. "7.83 GB".
func FormatGB(bytes uint64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/BytesPerGB)
}
