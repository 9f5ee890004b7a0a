package rtos

// AddThread finds the first dead TCB slot, builds its initial register
// frame, links it into the ring between CurrentlyRunningThread and its
// current successor, and spawns the goroutine that will run fn once this
// thread is first scheduled. Mirrors G8RTOS_AddThread.
func (k *Kernel) AddThread(fn func(), priority uint8, name string) ErrCode {
	saved := k.startCriticalSection()
	defer k.endCriticalSection(saved)

	slot := -1
	for i := 0; i < MaxThreads; i++ {
		if !k.tcbs[i].alive {
			slot = i
			break
		}
	}
	if slot < 0 {
		return ErrThreadsIncorrectlyAlive
	}

	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}

	t := &k.tcbs[slot]
	*t = tcb{
		alive:    true,
		frame:    setInitialStack(fn),
		priority: priority,
		name:     name,
		resume:   make(chan struct{}, 1),
		exit:     make(chan struct{}),
		fn:       fn,
	}

	k.ringInsertAfter(k.current, slot)

	t.id = uint32(k.idCounter)<<16 | uint32(slot)
	k.idCounter++
	k.numThreads++

	go k.runThread(slot)

	return NoError
}

// runThread is the goroutine body every AddThread spawns. It waits for the
// scheduler to hand it the baton for the first time, runs the thread
// function, and kills itself when (if) that function returns — a thread
// function in this port is not required to run forever the way a bare
// embedded "while(1)" body typically would.
func (k *Kernel) runThread(slot int) {
	<-k.tcbs[slot].resume
	k.tcbs[slot].fn()
	k.killSlot(slot, true)
}

// Sleep puts the caller to sleep for d ticks and yields, exactly as
// G8RTOS_Sleep: sleepCount becomes the absolute wake deadline
// SystemTime+d, and asleep makes the scheduler skip this thread until the
// tick handler clears it. The pair of writes is critical-sectioned here
// where the original leaves them bare, because on this host Tick reads
// both fields from a different OS thread.
func (k *Kernel) Sleep(d uint32) {
	saved := k.startCriticalSection()
	t := &k.tcbs[k.current]
	t.sleepCount = k.systemTime + d
	t.asleep = true
	k.endCriticalSection(saved)

	k.requestSwitch()
}

// Yield requests a context switch, exactly as G8RTOS_Yield pends PendSV.
func (k *Kernel) Yield() {
	k.requestSwitch()
}

// GetThreadID returns the caller's thread ID.
func (k *Kernel) GetThreadID() uint32 {
	saved := k.startCriticalSection()
	defer k.endCriticalSection(saved)
	return k.tcbs[k.current].id
}

// KillThread locates the TCB with id, unlinks it from the ring, and clears
// its alive flag. If the caller is killing itself, it yields afterward —
// exactly G8RTOS_KillThread.
func (k *Kernel) KillThread(id uint32) ErrCode {
	saved := k.startCriticalSection()
	if k.numThreads == 0 {
		k.endCriticalSection(saved)
		return ErrCannotKillLastThread
	}

	slot := -1
	for i := 0; i < MaxThreads; i++ {
		if k.tcbs[i].alive && k.tcbs[i].id == id {
			slot = i
			break
		}
	}
	if slot < 0 {
		k.endCriticalSection(saved)
		return ErrThreadDoesNotExist
	}

	killingSelf := slot == k.current
	k.unlinkAndMark(slot)
	k.endCriticalSection(saved)

	if killingSelf {
		// the goroutine running this code IS k.tcbs[slot]'s body; while
		// another thread is runnable it never returns from requestSwitch
		// here, because the scheduler will never hand this slot the baton
		// again. If no other thread is runnable the scheduler keeps the
		// cursor and requestSwitch returns.
		k.requestSwitch()
	}
	return NoError
}

// unlinkAndMark removes slot from the ring and marks it dead. Caller holds
// the critical section.
func (k *Kernel) unlinkAndMark(slot int) {
	k.ringUnlink(slot)
	k.tcbs[slot].alive = false
	k.numThreads--
}

// killSlot is used by runThread when a thread function returns on its own.
// It unlinks the slot if it is still alive (a thread that already killed
// itself through KillThread is not), closes its exit channel, and, when
// selfExit is true, hands the baton to whichever thread the scheduler picks
// without waiting to be resumed. runThread, its only caller, passes true.
func (k *Kernel) killSlot(slot int, selfExit bool) {
	saved := k.startCriticalSection()
	if k.tcbs[slot].alive {
		k.unlinkAndMark(slot)
	}
	k.endCriticalSection(saved)
	close(k.tcbs[slot].exit)
	if selfExit {
		k.switchTo(false)
	}
}

// KillSelf is a thin wrapper over KillThread(GetThreadID()).
func (k *Kernel) KillSelf() ErrCode {
	return k.KillThread(k.GetThreadID())
}

// KillAllOthers kills every live thread except the caller and returns
// NoError unconditionally. G8RTOS_KillAllOthers mutates the ring with
// KillThread while still walking it through the freshly unlinked node's
// own pointers, and falls off the end of a sched_ErrCode_t function
// without a return; the intent — every other alive thread killed exactly
// once — is implemented here by snapshotting the victim IDs before the
// first kill, so unlinking a node mid-walk can't skip or double-visit a
// neighbor.
func (k *Kernel) KillAllOthers() ErrCode {
	saved := k.startCriticalSection()
	selfID := k.tcbs[k.current].id
	others := make([]uint32, 0, k.numThreads)
	slot := k.current
	for i := 0; i < k.numThreads; i++ {
		if k.tcbs[slot].id != selfID {
			others = append(others, k.tcbs[slot].id)
		}
		slot = k.tcbs[slot].next
	}
	k.endCriticalSection(saved)

	for _, id := range others {
		k.KillThread(id)
	}
	return NoError
}
