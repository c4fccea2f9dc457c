package common

import (
	"strings"
	"sync"
)

// TailBuffer is an io.Writer which keeps only the last `limit` bytes written to it. Used to capture the stderr
// of external processes (the interesting part of a crash report is usually at the end, and the beginning can be huge).
type TailBuffer struct {
	mutex sync.Mutex
	limit int
	data  []byte
}

func NewTailBuffer(limit int) *TailBuffer {
	return &TailBuffer{limit: limit}
}

func (t *TailBuffer) Write(p []byte) (int, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.data = append(t.data, p...)
	if overflow := len(t.data) - t.limit; overflow > 0 {
		t.data = append(t.data[:0], t.data[overflow:]...)
	}
	return len(p), nil
}

// String returns the captured output with surrounding whitespace removed.
func (t *TailBuffer) String() string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return strings.TrimSpace(string(t.data))
}
