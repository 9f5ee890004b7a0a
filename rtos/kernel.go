// Package rtos is the portable core of G8RTOS: a fixed-capacity, static-
// priority preemptible scheduler, counting semaphores, inter-thread FIFOs,
// periodic soft-realtime handlers, and timed sleeps, all built the way the
// original G8RTOS (lounge-chair/G8RTOS) built them for an ARMv7-M target.
//
// The package never touches hardware directly; everything architecture- or
// board-specific goes through the arch.Board collaborator passed to
// NewKernel.
//
// Because the Cortex-M target does not exist under the Go toolchain, the
// kernel runs hosted: each thread is a goroutine parked on a per-TCB baton
// channel, and a context switch hands the baton to whichever TCB the
// scheduler picks, so exactly one thread runs at a time just as on a
// single core. The one semantic seam is preemption: Go offers no way to
// interrupt a goroutine at an arbitrary instruction, so Tick performs all
// of its bookkeeping atomically but the actual handoff takes effect at the
// next Yield/Sleep/blocking call the running thread makes — thread bodies
// that want to be preemptible on the host must yield at loop back-edges,
// the same way bare-metal bodies rely on SysTick firing.
package rtos

import (
	"fmt"
	"os"
	"sync"

	"github.com/lounge-chair/G8RTOS/arch"
)

// Compile-time parameters, unchanged from the C headers.
const (
	MaxThreads         = 26
	MaxPeriodicThreads = 6
	MaxFIFOs           = 4
	MaxFIFOSize        = 16
	MaxNameLength      = 10
	OSIntPriority      = 7
	TickHz             = 1000
	vectorTableEntries = 57
)

// Kernel owns every piece of process-wide kernel state: the TCB ring, the
// periodic-handler ring, the FIFOs, the current-thread cursor, and system
// time. The C original keeps all of this in file-static globals; a struct
// is used here so tests can run independent kernels without sharing
// globals.
type Kernel struct {
	mu sync.Mutex
	// sectionOwner is the goroutine id holding the critical section, 0
	// when free; it is what lets startCriticalSection nest (critical.go).
	sectionOwner int64

	board arch.Board

	tcbs       [MaxThreads]tcb
	numThreads int
	idCounter  uint16
	current    int

	ptcbs       [MaxPeriodicThreads]ptcb
	numPeriodic int

	fifos [MaxFIFOs]fifo

	systemTime uint32

	halt     chan struct{}
	haltOnce sync.Once
}

// NewKernel allocates a Kernel bound to board. Nothing touches the board
// until Init is called; Init must be called before any other kernel call.
func NewKernel(board arch.Board) *Kernel {
	return &Kernel{board: board, halt: make(chan struct{})}
}

// Init zeros counters, copies the interrupt vector table into RAM via the
// board, and performs board bring-up. Must be called before any AddThread/
// AddPeriodicThread/AddAPeriodicEvent/Launch call.
func (k *Kernel) Init() error {
	saved := k.startCriticalSection()
	k.systemTime = 0
	k.numThreads = 0
	k.numPeriodic = 0
	k.idCounter = 0
	k.current = 0
	k.endCriticalSection(saved)

	if err := k.board.InstallVectorTable(vectorTableEntries); err != nil {
		return err
	}
	return k.board.Init()
}

// Launch picks the highest-priority thread added so far, configures the
// tick and exception priorities through the board, and hands control to
// that thread. It returns only on failure — exactly like G8RTOS_Launch,
// which only returns if the architecture trampoline itself fails to start.
// On the host it also returns, with ErrNoThreadsScheduled, once Shutdown
// is called.
func (k *Kernel) Launch() error {
	saved := k.startCriticalSection()
	if k.numThreads == 0 {
		k.endCriticalSection(saved)
		return ErrNoThreadsScheduled
	}

	best := 0
	bestPriority := uint8(255)
	slot := 0
	for i := 0; i < k.numThreads; i++ {
		if k.tcbs[slot].priority < bestPriority {
			best = slot
			bestPriority = k.tcbs[slot].priority
		}
		slot = k.tcbs[slot].next
	}
	k.current = best
	first := &k.tcbs[best]
	k.endCriticalSection(saved)

	if err := k.board.ConfigurePriorities(lowestPriority, lowestPriority); err != nil {
		return err
	}
	if err := k.board.StartSystemTick(TickHz); err != nil {
		return err
	}

	first.resume <- struct{}{}
	<-k.halt
	return ErrNoThreadsScheduled
}

// lowestPriority is the numeric exception priority value SHPR3 gets for
// both the tick and the context-switch exception — the largest value the
// priority field holds, i.e. numerically (and therefore logically) lowest,
// so neither exception ever preempts an ordinary ISR.
const lowestPriority = 0xFF

// Shutdown unblocks a blocked Launch call. It has no analogue in the
// original (Launch never returns on real hardware); it exists purely so
// the hosted demo and tests can tear a Kernel down instead of leaking the
// goroutine parked in Launch. Safe to call any number of times, from any
// goroutine.
func (k *Kernel) Shutdown() {
	k.haltOnce.Do(func() { close(k.halt) })
}

// noRunnableThread is what the scheduler does when every thread in the
// ring is asleep or blocked. The C original silently keeps the previous
// CurrentlyRunningThread in that case, which means a thread that just
// blocked keeps running; this port keeps the cursor too but prints a
// diagnostic, since the real fix is for the application to supply an idle
// thread.
func (k *Kernel) noRunnableThread() {
	fmt.Fprintf(os.Stderr, "g8rtos: scheduler found no runnable thread among %d live threads\n", k.numThreads)
}
