package rtos

import "reflect"

// StackWords is STACKSIZE: the per-thread stack size in 32-bit words. The
// frame below does not use it, since the hosted build never actually runs a
// thread from a popped stack frame (goroutines carry their own stacks).
const StackWords = 512

// frame is the register image setInitialStack builds: the same layout, in
// the same address order, that a Cortex-M exception entry would have
// pushed. R4-R11 are callee-saved dummy values; R0-R3/R12/LR/PC/PSR are the
// hardware-pushed frame a freshly scheduled thread resumes from.
//
// This is kept as real, inspectable data (not a no-op) so the trampoline
// contract — R4-R11 in address order from the saved stack pointer, then
// R0-R3, R12, LR, PC=entry, PSR with only the thumb bit set — survives
// the port, independent of how the hosted scheduler actually dispatches
// the thread body.
type frame struct {
	r4, r5, r6, r7, r8, r9, r10, r11 uint32
	r0, r1, r2, r3, r12              uint32
	lr                               uint32
	pc                               uintptr
	psr                              uint32
}

const thumbBit = 0x01000000

// dummy register fill values, unchanged from setInitialStack in the
// original source (0x0B0B0B0B for R11 down to 0x00000000 for R0, 0x12121212
// for R12, 0x14141414 for LR) — kept so a memory dump of a newborn thread's
// stack looks the way the original's debugger output does.
const (
	dummyR0  = 0x00000000
	dummyR1  = 0x01010101
	dummyR2  = 0x02020202
	dummyR3  = 0x03030303
	dummyR4  = 0x04040404
	dummyR5  = 0x05050505
	dummyR6  = 0x06060606
	dummyR7  = 0x07070707
	dummyR8  = 0x08080808
	dummyR9  = 0x09090909
	dummyR10 = 0x0A0A0A0A
	dummyR11 = 0x0B0B0B0B
	dummyR12 = 0x12121212
	dummyLR  = 0x14141414
)

// setInitialStack builds the register frame so that, were it popped by the
// architecture's context-switch trampoline, execution would begin at fn in
// thumb mode. fn's code address is read via reflect, the idiomatic way to
// obtain a Go function value's entry point without cgo or assembly.
func setInitialStack(fn func()) frame {
	entry := reflect.ValueOf(fn).Pointer()
	return frame{
		r4: dummyR4, r5: dummyR5, r6: dummyR6, r7: dummyR7,
		r8: dummyR8, r9: dummyR9, r10: dummyR10, r11: dummyR11,
		r0: dummyR0, r1: dummyR1, r2: dummyR2, r3: dummyR3,
		r12: dummyR12,
		lr:  dummyLR,
		pc:  entry,
		psr: thumbBit,
	}
}
