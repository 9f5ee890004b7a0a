package rtos

// scheduler picks the next runnable TCB by scanning numThreads nodes
// starting at tcbs[current].next, choosing the lowest numeric priority
// among threads that are neither asleep nor blocked, breaking ties by ring
// order from the cursor (round robin among equal priorities) — exactly
// G8RTOS_Scheduler. Caller holds the critical section.
func (k *Kernel) scheduler() {
	next := k.tcbs[k.current].next
	bestSlot := -1
	bestPriority := uint8(255)

	for i := 0; i < k.numThreads; i++ {
		t := &k.tcbs[next]
		if !t.asleep && t.blocked == nil {
			if t.priority < bestPriority {
				bestSlot = next
				bestPriority = t.priority
			}
		}
		next = t.next
	}

	if bestSlot < 0 {
		k.noRunnableThread()
		return
	}
	k.current = bestSlot
}

// requestSwitch is the host's context-switch exception: it runs the
// scheduler inside a critical section (as PendSV would, at the lowest
// exception priority,
// after any pending tick work has already completed), then
// hands the baton to whichever TCB the scheduler picked and blocks the
// caller on its own baton channel until it is scheduled again.
//
// If the scheduler leaves CurrentlyRunningThread unchanged (the caller is
// still the highest-priority runnable thread), no handoff happens at all —
// this is the only case where Yield/Sleep/AcquireSemaphore return without
// the calling goroutine ever blocking.
func (k *Kernel) requestSwitch() {
	k.switchTo(true)
}

// switchTo is shared by requestSwitch and the self-kill exit path. When
// blockCaller is false the caller's TCB is already unlinked and dead (its
// owning goroutine is returning for good, not merely yielding), so there
// is nothing to resume it from: it hands the baton to whoever the
// scheduler picked, if anyone, and returns without waiting.
func (k *Kernel) switchTo(blockCaller bool) {
	k.board.RequestContextSwitch()

	saved := k.startCriticalSection()
	caller := k.current
	k.scheduler()
	next := k.current
	k.endCriticalSection(saved)

	if next == caller {
		return
	}
	k.tcbs[next].resume <- struct{}{}
	if blockCaller {
		<-k.tcbs[caller].resume
	}
}
