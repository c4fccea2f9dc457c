package gopsutil

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"

	"kgeyst.com/text2video/pkg/text2video/domain"
)

type MemoryInspector struct{}

func NewMemoryInspector() *MemoryInspector {
	return &MemoryInspector{}
}

func (m *MemoryInspector) VirtualMemory(ctx context.Context) (domain.MemoryStats, error) {
	stat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return domain.MemoryStats{}, err
	}
	return domain.MemoryStats{
		Total:     stat.Total,
		Available: stat.Available,
	}, nil
}
