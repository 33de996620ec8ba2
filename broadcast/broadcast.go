// broadcast/broadcast.go
package broadcast

import (
	"errors"
	"sync"

	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/rules"
)

// Frame is what observers see after the coin flip and after every applied move.
type Frame struct {
	GameID     string
	Board      board.Snapshot
	Outcome    rules.Outcome
	ToMove     board.Player // Empty once the game is over
	LastColumn int          // -1 before the first move
}

// Observer consumes frames. Renderers, loggers and tests implement it.
type Observer interface {
	Observe(frame Frame) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(frame Frame) error

func (f ObserverFunc) Observe(frame Frame) error { return f(frame) }

// 广播接口
type Broadcaster interface {
	Broadcast(frame Frame) error
}

// FanOut delivers every frame to all its observers in registration order.
type FanOut struct {
	observers []Observer
	mutex     sync.RWMutex
}

func NewFanOut(observers ...Observer) *FanOut {
	return &FanOut{observers: observers}
}

func (b *FanOut) Add(o Observer) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.observers = append(b.observers, o)
}

func (b *FanOut) Len() int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.observers)
}

// Broadcast keeps going when an observer fails and returns all failures joined.
func (b *FanOut) Broadcast(frame Frame) error {
	b.mutex.RLock()
	observers := append([]Observer(nil), b.observers...)
	b.mutex.RUnlock()

	var errs []error
	for _, o := range observers {
		if err := o.Observe(frame); err != nil {
			errs = append(errs, err)
			continue
		}
	}
	return errors.Join(errs...)
}
