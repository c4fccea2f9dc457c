package gopsutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualMemory(t *testing.T) {
	stats, err := NewMemoryInspector().VirtualMemory(context.Background())
	require.NoError(t, err)
	assert.Greater(t, stats.Total, uint64(0))
	assert.LessOrEqual(t, stats.Available, stats.Total)
}
