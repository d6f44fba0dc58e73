package ib2c

import (
	"container/heap"
	"math/rand"
	"sync"
	"time"
)

// Scheduler staggers the initial cycle start of several modules/fusions so
// they don't all wake on the same tick and contend for the same port
// locks in lockstep. It is ambient scheduling plumbing only: it never
// changes a behaviour's activity/target_rating semantics, it only jitters
// when Spawn's first loop iteration begins (SPEC_FULL.md §6). Grounded on
// the teacher's services/hal/internal/core poller, which uses the same
// container/heap-plus-jitter shape to stagger hardware polls.
type Scheduler struct {
	mu   sync.Mutex
	rnd  *rand.Rand
	h    staggerHeap
}

// NewScheduler constructs a Scheduler seeded from seed. Callers that want
// reproducible stagger order across runs (demos, tests) should pass a
// fixed seed; production wiring can seed from a varying source.
func NewScheduler(seed int64) *Scheduler {
	return &Scheduler{rnd: rand.New(rand.NewSource(seed))}
}

type staggerItem struct {
	due   time.Time
	fire  func()
	index int
}

type staggerHeap []*staggerItem

func (h staggerHeap) Len() int            { return len(h) }
func (h staggerHeap) Less(i, j int) bool  { return h[i].due.Before(h[j].due) }
func (h staggerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *staggerHeap) Push(x any)         { it := x.(*staggerItem); it.index = len(*h); *h = append(*h, it) }
func (h *staggerHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	it.index = -1
	*h = old[:n-1]
	return it
}

// Stagger schedules fire (normally a Spawn call) to run after a random
// delay in [0, window), instead of immediately. Call Stagger for every
// node that should be staggered, then Run once all of them are
// registered.
func (s *Scheduler) Stagger(window time.Duration, fire func()) {
	var delay time.Duration
	if window > 0 {
		s.mu.Lock()
		delay = time.Duration(s.rnd.Int63n(int64(window)))
		s.mu.Unlock()
	}
	s.mu.Lock()
	heap.Push(&s.h, &staggerItem{due: time.Now().Add(delay), fire: fire})
	s.mu.Unlock()
}

// Run blocks until every staggered fire function has run, firing each one
// in due order. Intended to be called once at startup after every node
// has registered with Stagger.
func (s *Scheduler) Run() {
	for {
		s.mu.Lock()
		if s.h.Len() == 0 {
			s.mu.Unlock()
			return
		}
		next := s.h[0]
		wait := time.Until(next.due)
		if wait > 0 {
			s.mu.Unlock()
			time.Sleep(wait)
			continue
		}
		heap.Pop(&s.h)
		s.mu.Unlock()
		next.fire()
	}
}
