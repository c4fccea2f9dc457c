package juju

import (
	"context"
	"time"

	jujuclock "github.com/juju/clock"
	jujumutex "github.com/juju/mutex/v2"

	"kgeyst.com/text2video/pkg/text2video/domain"
)

type NamedMutexAcquirer struct {
	delay time.Duration
}

type namedMutex struct {
	releaser jujumutex.Releaser
}

// NewNamedMutexAcquirer `delay` is how often a busy mutex is polled.
func NewNamedMutexAcquirer(delay time.Duration) *NamedMutexAcquirer {
	return &NamedMutexAcquirer{delay: delay}
}

func (n *NamedMutexAcquirer) AcquireNamedMutex(ctx context.Context, name string, timeout time.Duration) (domain.NamedMutex, error) {
	jujuReleaser, err := jujumutex.Acquire(jujumutex.Spec{
		Name:    name,
		Clock:   jujuclock.WallClock,
		Delay:   n.delay,
		Timeout: timeout,
		Cancel:  ctx.Done(),
	})
	if err != nil {
		return nil, err
	}
	return &namedMutex{
		releaser: jujuReleaser,
	}, nil
}

func (n *namedMutex) Release() {
	n.releaser.Release()
}
