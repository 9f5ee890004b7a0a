package rtos

// AddAPeriodicEvent installs handler as the vector for irq at priority,
// validating both against the board before touching it. Mirrors
// G8RTOS_AddAPeriodicEvent: priority must be strictly higher than
// OSIntPriority (numerically lower, since the tick and context-switch
// exceptions must remain the lowest-priority exceptions in the system) and
// irq must fall within the board's installable range.
func (k *Kernel) AddAPeriodicEvent(handler func(), priority uint8, irq int) ErrCode {
	min, max := k.board.IRQRange()
	if irq < min || irq > max {
		return ErrIRQnInvalid
	}
	if priority >= OSIntPriority {
		return ErrHWIPriorityInvalid
	}

	if err := k.board.SetVector(irq, handler); err != nil {
		return ErrIRQnInvalid
	}
	if err := k.board.SetIRQPriority(irq, priority); err != nil {
		return ErrHWIPriorityInvalid
	}
	if err := k.board.EnableIRQ(irq); err != nil {
		return ErrIRQnInvalid
	}
	return NoError
}
