package juju

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedMutexIsExclusive(t *testing.T) {
	name := fmt.Sprintf("text2video-test-%d", os.Getpid())
	acquirer := NewNamedMutexAcquirer(10 * time.Millisecond)

	first, err := acquirer.AcquireNamedMutex(context.Background(), name, time.Second)
	require.NoError(t, err)

	_, err = acquirer.AcquireNamedMutex(context.Background(), name, 50*time.Millisecond)
	assert.Error(t, err)

	first.Release()
	second, err := acquirer.AcquireNamedMutex(context.Background(), name, time.Second)
	require.NoError(t, err)
	second.Release()
}

func TestNamedMutexHonorsCancellation(t *testing.T) {
	name := fmt.Sprintf("text2video-cancel-%d", os.Getpid())
	acquirer := NewNamedMutexAcquirer(10 * time.Millisecond)

	held, err := acquirer.AcquireNamedMutex(context.Background(), name, time.Second)
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = acquirer.AcquireNamedMutex(ctx, name, time.Minute)
	assert.Error(t, err)
}
