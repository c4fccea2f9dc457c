package domain

import (
	"context"
	"time"
)

// InferenceMutexName the name of the machine-wide lock held while a model is loaded. Two models loaded at the same
// time don't fit into the memory of the machines we target.
const InferenceMutexName = "text2video-inference"

type NamedMutex interface {
	Release()
}

// NamedMutexAcquirer acquires a mutex shared between processes. Returns an error if `timeout` elapses or `ctx`
// is cancelled first.
type NamedMutexAcquirer interface {
	AcquireNamedMutex(ctx context.Context, name string, timeout time.Duration) (NamedMutex, error)
}
