// Package arch defines the collaborator boundary between the portable
// scheduler core (package rtos) and everything that is genuinely
// architecture- or board-specific: vector table placement, exception
// priority registers, the system tick timer, and the stack-switching
// trampoline that a real Cortex-M part services in assembly.
//
// rtos never touches a register directly. It talks to a Board.
package arch

// Board is the external collaborator a real ARMv7-M target implements with
// register writes (SCB->VTOR, SysTick_Config, NVIC_SetVector, ...) and that
// a hosted build (package arch/hosted) implements in software for tests and
// the demo CLI.
type Board interface {
	// Init performs board bring-up: clock tree, GPIO, watchdog disable,
	// whatever else the target needs before threads can run. Called once
	// from Kernel.Init.
	Init() error

	// InstallVectorTable copies the existing vector table into a RAM
	// region of vectorCount entries and retargets the vector table
	// pointer at it, so AddAPeriodicEvent can patch individual vectors
	// without touching flash.
	InstallVectorTable(vectorCount int) error

	// ConfigurePriorities sets the exception priority of the system tick
	// and the context-switch exception. Both must end up at the lowest
	// priority in the system (numerically highest) so neither preempts
	// an ordinary ISR.
	ConfigurePriorities(tickPriority, switchPriority uint8) error

	// StartSystemTick configures and enables the periodic tick at hz.
	StartSystemTick(hz uint32) error

	// SetVector installs handler at irq in the (RAM-resident) vector
	// table.
	SetVector(irq int, handler func()) error

	// SetIRQPriority sets the NVIC priority of irq.
	SetIRQPriority(irq int, priority uint8) error

	// EnableIRQ unmasks irq at the interrupt controller.
	EnableIRQ(irq int) error

	// IRQRange reports the inclusive range of hardware interrupt numbers
	// AddAPeriodicEvent is allowed to install a vector for.
	IRQRange() (min, max int)

	// RequestContextSwitch pends the context-switch exception. On real
	// hardware this sets ICSR.PENDSVSET; the architecture services it at
	// the next priority-permitted moment. It never runs synchronously.
	RequestContextSwitch()
}
