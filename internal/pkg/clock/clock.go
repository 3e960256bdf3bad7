package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// MockClock only moves when told to. After waiters fire when Set or Add
// passes their deadline, so timer-driven loops can be stepped from tests.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	waiters     []mockWaiter
}

type mockWaiter struct {
	at time.Time
	ch chan time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	c.waiters = append(c.waiters, mockWaiter{at: c.currentTime.Add(d), ch: ch})
	c.fireLocked()
	return ch
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
	c.fireLocked()
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
	c.fireLocked()
}

// BlockUntil returns once at least n After waiters are registered. Tests use
// it to park a timer-driven goroutine before moving the clock.
func (c *MockClock) BlockUntil(n int) {
	for {
		c.mu.Lock()
		count := len(c.waiters)
		c.mu.Unlock()
		if count >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (c *MockClock) fireLocked() {
	remaining := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.at.After(c.currentTime) {
			w.ch <- c.currentTime
			continue
		}
		remaining = append(remaining, w)
	}
	c.waiters = remaining
}
