package rtos

// fifo is a fixed-capacity inter-thread queue built on top of two
// semaphores, exactly G8RTOS_FIFO_t: currentSize counts buffered items and
// blocks a reader when empty; mutex serializes readers in ReadFIFO. The
// original never acquires mutex from WriteFIFO (every FIFO in G8RTOS has
// exactly one writer, an ISR, which cannot block), so neither does this
// port.
type fifo struct {
	buffer [MaxFIFOSize]int32
	head   int
	tail   int

	lostData uint32

	currentSize Semaphore
	mutex       Semaphore
}

// InitFIFO resets the FIFO at index and returns 1, or 0 if index is out of
// range — G8RTOS_InitFIFO's convention, inverted from WriteFIFO's 0-means-ok
// return. Unlike AddPeriodicThread's saturation check this one is a plain
// index-range check rather than a capacity check, since FIFOs are a
// compile-time-sized array, not a ring that fills up.
func (k *Kernel) InitFIFO(index int) int {
	if index < 0 || index >= MaxFIFOs {
		return 0
	}

	saved := k.startCriticalSection()
	defer k.endCriticalSection(saved)

	f := &k.fifos[index]
	f.head = 0
	f.tail = 0
	f.lostData = 0
	InitSemaphore(&f.currentSize, 0)
	InitSemaphore(&f.mutex, 1)
	return 1
}

// ReadFIFO blocks (via currentSize) until the FIFO at index is non-empty,
// then pops and returns the oldest value. Mirrors G8RTOS_ReadFIFO, guarding
// the pop itself with mutex since multiple reader threads may race on the
// same FIFO even though writers never do.
func (k *Kernel) ReadFIFO(index int) int32 {
	f := &k.fifos[index]

	k.AcquireSemaphore(&f.currentSize)
	k.AcquireSemaphore(&f.mutex)

	v := f.buffer[f.head]
	f.head = (f.head + 1) % MaxFIFOSize

	k.ReleaseSemaphore(&f.mutex)
	return v
}

// WriteFIFO stores v at the FIFO's tail and releases currentSize to wake a
// blocked reader, or returns 1 without storing if the FIFO is full.
//
// The full check compares the raw currentSize counter against
// MaxFIFOSize-1, not MaxFIFOSize, exactly as G8RTOS_WriteFIFO does — it
// reads as an off-by-one at first glance but is deliberately kept
// bit-compatible: for an integer counter it is the same test as
// count >= MaxFIFOSize, so MaxFIFOSize writes are accepted and the counter
// never exceeds MaxFIFOSize because this check rejects the write that would
// have pushed it past MaxFIFOSize.
func (k *Kernel) WriteFIFO(index int, v int32) int {
	f := &k.fifos[index]

	saved := k.startCriticalSection()
	if f.currentSize.value > MaxFIFOSize-1 {
		f.lostData++
		k.endCriticalSection(saved)
		return 1
	}
	k.endCriticalSection(saved)

	f.buffer[f.tail] = v
	f.tail = (f.tail + 1) % MaxFIFOSize

	k.ReleaseSemaphore(&f.currentSize)
	return 0
}
