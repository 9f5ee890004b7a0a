package rtos

// ErrCode is a kernel return code, mirroring sched_ErrCode_t value for
// value. Recoverable kernel conditions are reported this way rather than
// through Go's error convention: the kernel core has no exception
// mechanism, only comparable codes.
type ErrCode int32

const (
	NoError                    ErrCode = 0
	ErrThreadLimitReached      ErrCode = -1
	ErrNoThreadsScheduled      ErrCode = -2
	ErrThreadsIncorrectlyAlive ErrCode = -3
	ErrThreadDoesNotExist      ErrCode = -4
	ErrCannotKillLastThread    ErrCode = -5
	ErrIRQnInvalid             ErrCode = -6
	ErrHWIPriorityInvalid      ErrCode = -7
)

func (e ErrCode) String() string {
	switch e {
	case NoError:
		return "NO_ERROR"
	case ErrThreadLimitReached:
		return "THREAD_LIMIT_REACHED"
	case ErrNoThreadsScheduled:
		return "NO_THREADS_SCHEDULED"
	case ErrThreadsIncorrectlyAlive:
		return "THREADS_INCORRECTLY_ALIVE"
	case ErrThreadDoesNotExist:
		return "THREAD_DOES_NOT_EXIST"
	case ErrCannotKillLastThread:
		return "CANNOT_KILL_LAST_THREAD"
	case ErrIRQnInvalid:
		return "IRQn_INVALID"
	case ErrHWIPriorityInvalid:
		return "HWI_PRIORITY_INVALID"
	default:
		return "UNKNOWN_ERROR"
	}
}

func (e ErrCode) Error() string {
	return e.String()
}
