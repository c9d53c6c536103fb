package schedule

import (
	"sync"
	"time"
)

// Manual is a virtual-time Scheduler. Nothing fires until Advance is called,
// which makes timer-driven code testable without sleeping.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks map[int]*manualTask
}

type manualTask struct {
	id    int
	due   time.Duration
	every time.Duration
	fn    func()
}

func NewManual() *Manual {
	return &Manual{tasks: make(map[int]*manualTask)}
}

func (m *Manual) After(d time.Duration, fn func()) Cancel {
	if d < 0 {
		d = 0
	}
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Cancel {
	if d <= 0 {
		return noop
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(delay, every time.Duration, fn func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	id := m.seq
	m.tasks[id] = &manualTask{id: id, due: m.now + delay, every: every, fn: fn}

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.tasks, id)
	}
}

// Advance moves virtual time forward by d and runs every task that falls due,
// in due order. Callbacks run on the caller's goroutine without the lock held,
// so they may arm or cancel tasks.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.every > 0 {
			next.due += next.every
		} else {
			delete(m.tasks, next.id)
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

func (m *Manual) nextDue(target time.Duration) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Pending reports how many tasks are still armed.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Elapsed reports the virtual time advanced so far.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
