// Package hosted implements arch.Board in software so the G8RTOS kernel can
// run, be tested, and be demoed inside an ordinary Go process instead of on
// an ARMv7-M part. It stands in for the BSP and the PendSV-equivalent
// trampoline, both of which live outside the portable kernel.
package hosted

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/lounge-chair/G8RTOS/arch"
)

// defaultIRQMin and defaultIRQMax mirror the MSP432 external-interrupt range
// (PSS_IRQn..PORT6_IRQn) used by G8RTOS_AddAPeriodicEvent in the original
// source; a hosted build has no real NVIC, so this is just the range that
// AddAPeriodicEvent validates against.
const (
	defaultIRQMin = 0
	defaultIRQMax = 40
)

var _ arch.Board = (*Board)(nil)

// Board is a software stand-in for the ARMv7-M BSP + context-switch
// trampoline. It does not run any code asynchronously: RequestContextSwitch
// only logs the pend, exactly as a real NVIC would only record the pending
// bit until the processor is ready to service it.
type Board struct {
	Log zerolog.Logger

	mu          sync.Mutex
	vectors     map[int]func()
	priorities  map[int]uint8
	enabled     map[int]bool
	vtorEntries int
	tickHz      uint32
	switches    uint64
}

// New returns a Board that logs its own lifecycle through log.
func New(log zerolog.Logger) *Board {
	return &Board{
		Log:        log,
		vectors:    make(map[int]func()),
		priorities: make(map[int]uint8),
		enabled:    make(map[int]bool),
	}
}

func (b *Board) Init() error {
	b.Log.Info().Msg("board: bring-up (clock tree, GPIO, watchdog disable)")
	return nil
}

func (b *Board) InstallVectorTable(vectorCount int) error {
	b.mu.Lock()
	b.vtorEntries = vectorCount
	b.mu.Unlock()
	b.Log.Info().Int("vectors", vectorCount).Msg("board: vector table copied to RAM, VTOR retargeted")
	return nil
}

func (b *Board) ConfigurePriorities(tickPriority, switchPriority uint8) error {
	b.Log.Info().
		Uint8("tick_priority", tickPriority).
		Uint8("switch_priority", switchPriority).
		Msg("board: SHPR3 configured")
	return nil
}

func (b *Board) StartSystemTick(hz uint32) error {
	b.mu.Lock()
	b.tickHz = hz
	b.mu.Unlock()
	b.Log.Info().Uint32("hz", hz).Msg("board: system tick started")
	return nil
}

func (b *Board) SetVector(irq int, handler func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vectors[irq] = handler
	b.Log.Debug().Int("irq", irq).Msg("board: vector installed")
	return nil
}

func (b *Board) SetIRQPriority(irq int, priority uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.priorities[irq] = priority
	b.Log.Debug().Int("irq", irq).Uint8("priority", priority).Msg("board: IRQ priority set")
	return nil
}

func (b *Board) EnableIRQ(irq int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled[irq] = true
	b.Log.Debug().Int("irq", irq).Msg("board: IRQ enabled")
	return nil
}

func (b *Board) IRQRange() (min, max int) {
	return defaultIRQMin, defaultIRQMax
}

func (b *Board) RequestContextSwitch() {
	b.mu.Lock()
	b.switches++
	b.mu.Unlock()
	b.Log.Trace().Msg("board: PendSV-equivalent pended")
}

// FireIRQ lets a test or the demo CLI simulate an aperiodic hardware event:
// it invokes whatever handler AddAPeriodicEvent most recently installed for
// irq, the way a real interrupt controller would vector to it.
func (b *Board) FireIRQ(irq int) {
	b.mu.Lock()
	h, ok := b.vectors[irq]
	enabled := b.enabled[irq]
	b.mu.Unlock()
	if !ok || !enabled {
		b.Log.Warn().Int("irq", irq).Msg("board: FireIRQ on unarmed vector, ignored")
		return
	}
	h()
}

// SwitchRequests reports how many times RequestContextSwitch has been
// called; useful for asserting that Yield/Tick actually pend a switch.
func (b *Board) SwitchRequests() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.switches
}
