// Package scheduler runs the timed checkpoints of a session: periodic
// autosave and the day rollover. Each kind has at most one pending
// deadline; scheduling a kind again moves it.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

type Kind string

const (
	KindAutosave Kind = "autosave"
	KindMidnight Kind = "midnight"
)

type Event struct {
	Kind Kind
	At   time.Time
}

type queueItem struct {
	event Event
	seq   uint64
	index int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].event.At.Equal(pq[j].event.At) {
		return pq[i].seq < pq[j].seq
	}
	return pq[i].event.At.Before(pq[j].event.At)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	pending map[Kind]*queueItem
	seq     uint64
	out     chan Event
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:   make(priorityQueue, 0),
		pending: make(map[Kind]*queueItem),
		out:     make(chan Event, bufferSize),
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// C is closed after Stop.
func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule sets the deadline for ev.Kind, replacing any pending one.
func (e *Engine) Schedule(ev Event) error {
	if ev.At.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	e.seq++
	if item, ok := e.pending[ev.Kind]; ok {
		item.event = ev
		item.seq = e.seq
		heap.Fix(&e.queue, item.index)
	} else {
		item := &queueItem{event: ev, seq: e.seq}
		heap.Push(&e.queue, item)
		e.pending[ev.Kind] = item
	}
	e.signalWakeup()
	return nil
}

// Cancel drops the pending deadline for kind, if any.
func (e *Engine) Cancel(kind Kind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.pending[kind]
	if !ok {
		return
	}
	heap.Remove(&e.queue, item.index)
	delete(e.pending, kind)
	e.signalWakeup()
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// IsPending reports whether kind has a deadline queued. A fired event is
// no longer pending, even before anyone has received it.
func (e *Engine) IsPending(kind Kind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.pending[kind]
	return ok
}

// Dropped counts events discarded because C was full.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.At)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, ev := range e.popDue(time.Now()) {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Event{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Event, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.At.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(*queueItem)
		delete(e.pending, item.event.Kind)
		out = append(out, item.event)
	}
	return out
}

// NextMidnight is the first UTC midnight strictly after now. Record keys
// are UTC dates, so this is when "today" moves.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
