// Package clock runs interval callbacks on the game loop. Time only moves
// when Advance is called, so callbacks execute on the same goroutine as the
// frame update and never race it.
package clock

import "time"

// Handle identifies a scheduled interval.
type Handle struct {
	id int
	s  *Scheduler
}

// Cancel stops the interval. Safe on a zero Handle and idempotent.
func (h Handle) Cancel() {
	if h.s == nil {
		return
	}
	h.s.cancel(h.id)
}

// Active reports whether the interval is still scheduled.
func (h Handle) Active() bool {
	if h.s == nil {
		return false
	}
	_, ok := h.s.index(h.id)
	return ok
}

type interval struct {
	id       int
	every    time.Duration
	elapsed  time.Duration
	callback func()
}

// Scheduler holds intervals in registration order.
type Scheduler struct {
	nextID    int
	intervals []*interval
	now       time.Duration
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Every schedules fn to run each time `every` of loop time has elapsed.
func (s *Scheduler) Every(every time.Duration, fn func()) Handle {
	if every <= 0 {
		every = time.Second
	}
	s.nextID++
	s.intervals = append(s.intervals, &interval{id: s.nextID, every: every, callback: fn})
	return Handle{id: s.nextID, s: s}
}

// Now returns the total loop time advanced so far.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of scheduled intervals.
func (s *Scheduler) Len() int {
	return len(s.intervals)
}

// Advance moves loop time forward by dt and fires due callbacks. A callback
// may cancel any interval, including its own; cancelled intervals never fire
// again, even later within the same Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.now += dt

	// Iterate over a snapshot so callbacks can schedule or cancel safely.
	pending := make([]*interval, len(s.intervals))
	copy(pending, s.intervals)
	for _, iv := range pending {
		iv.elapsed += dt
		for iv.elapsed >= iv.every {
			if _, ok := s.index(iv.id); !ok {
				break
			}
			iv.elapsed -= iv.every
			iv.callback()
		}
	}
}

func (s *Scheduler) index(id int) (int, bool) {
	for i, iv := range s.intervals {
		if iv.id == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Scheduler) cancel(id int) {
	i, ok := s.index(id)
	if !ok {
		return
	}
	s.intervals = append(s.intervals[:i], s.intervals[i+1:]...)
}
