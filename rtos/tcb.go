package rtos

// tcb is a thread control block: tcb_t's fields, plus two host-only
// synchronization channels that stand in for the register frame a real
// context switch pops off the thread's own stack.
//
// next/prev are slot indices into Kernel.tcbs rather than pointers, so the
// ring can't alias and a TCB is trivially copyable for debugging dumps.
type tcb struct {
	alive bool
	frame frame // the register frame setInitialStack built for this thread

	next, prev int

	blocked    *Semaphore
	sleepCount uint32
	asleep     bool

	priority uint8
	id       uint32
	name     string

	// resume is the baton: the scheduler sends on it to hand this thread
	// the (simulated) CPU, and the thread's goroutine blocks receiving on
	// it whenever it is not the CurrentlyRunningThread.
	resume chan struct{}
	// exit is closed by killSlot when this thread's function returns on
	// its own. Nothing in the kernel waits on it, and it is not closed for
	// a thread killed through KillThread.
	exit chan struct{}
	fn   func()
}

// ringInsertAfter links slot into the ring immediately after afterSlot.
// Caller holds the critical section.
func (k *Kernel) ringInsertAfter(afterSlot, slot int) {
	if k.numThreads == 0 {
		k.tcbs[slot].next = slot
		k.tcbs[slot].prev = slot
		return
	}
	after := &k.tcbs[afterSlot]
	nextSlot := after.next
	k.tcbs[slot].prev = afterSlot
	k.tcbs[slot].next = nextSlot
	k.tcbs[nextSlot].prev = slot
	after.next = slot
}

// ringUnlink removes slot from the ring. Caller holds the critical
// section.
func (k *Kernel) ringUnlink(slot int) {
	t := &k.tcbs[slot]
	k.tcbs[t.next].prev = t.prev
	k.tcbs[t.prev].next = t.next
}
