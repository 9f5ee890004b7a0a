package rtos

import (
	"sync/atomic"

	"github.com/petermattis/goid"
)

// savedMask is what startCriticalSection hands back: whether maskable
// interrupts were already disabled on entry. On real hardware
// StartCriticalSection reads PRIMASK before setting it and
// EndCriticalSection writes the saved value back, which is what lets the
// pair compose recursively; here the saved state is "the calling goroutine
// was already inside a critical section", so only the outermost
// endCriticalSection actually releases the lock.
type savedMask struct {
	masked bool
}

// startCriticalSection and endCriticalSection are the Go stand-in for
// StartCriticalSection/EndCriticalSection. They must nest: Tick dispatches
// periodic handlers inside its own critical section, exactly as
// SysTick_Handler runs them with interrupts implicitly masked, and a
// handler producing into a FIFO re-enters through WriteFIFO and
// ReleaseSemaphore. A plain mutex would self-deadlock there, so the lock
// tracks its owning goroutine and the nested path is a no-op both ways.
func (k *Kernel) startCriticalSection() savedMask {
	id := goid.Get()
	if atomic.LoadInt64(&k.sectionOwner) == id {
		return savedMask{masked: true}
	}
	k.mu.Lock()
	atomic.StoreInt64(&k.sectionOwner, id)
	return savedMask{}
}

func (k *Kernel) endCriticalSection(saved savedMask) {
	if saved.masked {
		return
	}
	atomic.StoreInt64(&k.sectionOwner, 0)
	k.mu.Unlock()
}
