package server

import (
	"errors"
	"fmt"
	"syscall"
)

// ListenerState is the lifecycle of the listening socket.
//
//	UNBOUND -> BINDING -> LISTENING
//	UNBOUND -> BINDING -> FAILED
//
// There is no way back to UNBOUND and no retry.
type ListenerState int32

const (
	StateUnbound ListenerState = iota
	StateBinding
	StateListening
	StateFailed
)

func (s ListenerState) String() string {
	switch s {
	case StateUnbound:
		return "UNBOUND"
	case StateBinding:
		return "BINDING"
	case StateListening:
		return "LISTENING"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("ListenerState(%d)", int32(s))
	}
}

// FaultKind classifies startup failures.
type FaultKind string

const (
	// FaultAddrInUse means another process already holds the port.
	FaultAddrInUse FaultKind = "address_in_use"

	// FaultListen covers every other bind failure.
	FaultListen FaultKind = "listen"
)

// ExitCodeStartupFailure is the process exit status for a failed bind.
const ExitCodeStartupFailure = 1

// StartupFault reports that the service could not acquire its port.
//
// It carries the exit intent; the process entrypoint decides when to exit.
type StartupFault struct {
	Kind     FaultKind
	Port     int
	Err      error
	ExitCode int
}

func (f *StartupFault) Error() string {
	if f.Kind == FaultAddrInUse {
		return fmt.Sprintf("port %d is already in use", f.Port)
	}
	return fmt.Sprintf("listen on port %d: %v", f.Port, f.Err)
}

func (f *StartupFault) Unwrap() error {
	return f.Err
}

func newStartupFault(port int, err error) *StartupFault {
	kind := FaultListen
	if errors.Is(err, syscall.EADDRINUSE) {
		kind = FaultAddrInUse
	}

	return &StartupFault{
		Kind:     kind,
		Port:     port,
		Err:      err,
		ExitCode: ExitCodeStartupFailure,
	}
}
