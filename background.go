package releasefeed

import (
	"context"
	"sync"
)

// Task is some work left to finish after the response is sent
type Task func(ctx context.Context) error

// BackgroundRunner runs tasks without making the caller wait for them.
type BackgroundRunner interface {
	Go(name string, task Task)
}

// Background runs each task in its own goroutine.
// Errors of the tasks are logged and dropped: nobody is waiting for them.
type Background struct {
	ctx context.Context
	wg  sync.WaitGroup
}

// NewBackground creates a Background runner. ctx is given to every task;
// it is usually detached from any request, so the task survives the response.
func NewBackground(ctx context.Context) *Background {
	return &Background{ctx: ctx}
}

func (b *Background) Go(name string, task Task) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := task(b.ctx); err != nil {
			log.Printf("background task %s failed (ignored): %s", name, err)
		}
	}()
}

// Wait blocks until all the tasks started so far are finished
func (b *Background) Wait() {
	b.wg.Wait()
}

// Verify interface
var _ BackgroundRunner = &Background{}
