// Package sched provides the single-threaded event loop the field runs on:
// next-frame callbacks plus one-shot and repeating timers, all driven by the
// host calling RunFrame once per display refresh.
//
// A Loop owns no goroutines. Time only advances when RunFrame is called, so
// tests drive it with synthetic timestamps. It is not safe for concurrent use.
package sched

import (
	"sort"
	"time"
)

// ID identifies a pending frame request or timer. The zero ID is never issued.
type ID uint64

// Callback receives the loop time of the frame it runs in.
type Callback func(now time.Duration)

type timer struct {
	id    ID
	due   time.Duration
	every time.Duration // zero for one-shot timers
	fn    Callback
}

// Loop schedules callbacks against a monotonic loop clock.
type Loop struct {
	now    time.Duration
	nextID ID

	timers map[ID]*timer

	frameFns   map[ID]Callback
	frameOrder []ID

	frames uint64
}

// New creates an empty loop at time zero.
func New() *Loop {
	return &Loop{
		timers:   make(map[ID]*timer),
		frameFns: make(map[ID]Callback),
	}
}

func (l *Loop) issue() ID {
	l.nextID++
	return l.nextID
}

// Now returns the time of the most recent frame.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// RequestFrame schedules fn to run once on the next frame.
func (l *Loop) RequestFrame(fn Callback) ID {
	id := l.issue()
	l.frameFns[id] = fn
	l.frameOrder = append(l.frameOrder, id)
	return id
}

// CancelFrame drops a pending frame request. Unknown IDs are ignored.
func (l *Loop) CancelFrame(id ID) {
	delete(l.frameFns, id)
}

// After schedules fn to run once, d after the current loop time.
func (l *Loop) After(d time.Duration, fn Callback) ID {
	return l.add(d, 0, fn)
}

// Every schedules fn to run every d, first at now+d. Non-positive periods are
// raised to one millisecond.
func (l *Loop) Every(d time.Duration, fn Callback) ID {
	if d <= 0 {
		d = time.Millisecond
	}
	return l.add(d, d, fn)
}

func (l *Loop) add(d, every time.Duration, fn Callback) ID {
	if d < 0 {
		d = 0
	}
	id := l.issue()
	l.timers[id] = &timer{id: id, due: l.now + d, every: every, fn: fn}
	return id
}

// Cancel stops a timer. Unknown or already fired IDs are ignored.
func (l *Loop) Cancel(id ID) {
	delete(l.timers, id)
}

// Pending returns the number of live timers.
func (l *Loop) Pending() int {
	return len(l.timers)
}

// PendingFrames returns the number of frame requests waiting for the next frame.
func (l *Loop) PendingFrames() int {
	return len(l.frameFns)
}

// RunFrame advances the loop clock to now (never backwards), fires every timer
// that is due in due order, then runs the frame requests made before this call.
// Timers and frame requests added by callbacks wait for a later frame. A
// repeating timer fires at most once per frame.
func (l *Loop) RunFrame(now time.Duration) {
	if now > l.now {
		l.now = now
	}
	l.frames++

	for _, id := range l.dueTimers() {
		t, ok := l.timers[id]
		if !ok {
			continue // cancelled by an earlier callback
		}
		if t.every > 0 {
			t.due += t.every
			if t.due <= l.now {
				t.due = l.now + t.every
			}
		} else {
			delete(l.timers, id)
		}
		t.fn(l.now)
	}

	order := l.frameOrder
	l.frameOrder = nil
	for _, id := range order {
		fn, ok := l.frameFns[id]
		if !ok {
			continue
		}
		delete(l.frameFns, id)
		fn(l.now)
	}
}

// dueTimers snapshots the IDs of timers due at the current time, earliest first.
func (l *Loop) dueTimers() []ID {
	var due []*timer
	for _, t := range l.timers {
		if t.due <= l.now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	ids := make([]ID, len(due))
	for i, t := range due {
		ids[i] = t.id
	}
	return ids
}
