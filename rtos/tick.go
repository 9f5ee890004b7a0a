package rtos

// SystemTime reports the current tick count. The original exposes
// SystemTime as a readable global; this is its host-side equivalent.
func (k *Kernel) SystemTime() uint32 {
	saved := k.startCriticalSection()
	defer k.endCriticalSection(saved)
	return k.systemTime
}

// Tick is the host's stand-in for the SysTick ISR: a driver — a test, or
// cmd/g8sim's run loop — calls this once per simulated 1 kHz tick
// instead of an NVIC vector firing it.
//
// In order, exactly as SysTick_Handler does:
//  1. advance SystemTime,
//  2. run any periodic handler whose deadline has arrived, synchronously
//     and in order, rebasing its next deadline from the current tick (a
//     handler that overruns its period loses the missed firing rather
//     than catching up),
//  3. wake any sleeping thread whose deadline has arrived,
//  4. request a context switch.
//
// The whole pass, handler invocations included, runs inside one critical
// section — on the target the tick ISR is never preempted by thread code,
// and handlers run in ISR context with interrupts implicitly masked.
// Handlers re-entering kernel sections (a producer releasing a semaphore
// or writing a FIFO) nest, per critical.go; handlers must not block.
//
// Step 4 only pends the switch (via the board) the way a real PendSV would
// be pended at the end of SysTick_Handler; the handoff itself happens at
// the running thread's next yield point, per the host-preemption caveat in
// the package comment.
func (k *Kernel) Tick() {
	saved := k.startCriticalSection()
	k.systemTime++

	for i := 0; i < k.numPeriodic; i++ {
		p := &k.ptcbs[i]
		if k.systemTime >= p.executeTime {
			p.executeTime = k.systemTime + p.period
			p.handler()
		}
	}

	if k.numThreads > 0 {
		next := k.tcbs[k.current].next
		for i := 0; i < MaxThreads; i++ {
			t := &k.tcbs[next]
			if t.asleep && t.sleepCount <= k.systemTime {
				t.asleep = false
			}
			next = t.next
		}
	}
	k.endCriticalSection(saved)

	k.board.RequestContextSwitch()
}
