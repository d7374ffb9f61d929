package console

import (
	"encoding/json"
	"fmt"
)

// wire event names used by the daemon.
const (
	eventAuth          = "auth"
	eventAuthSuccess   = "auth success"
	eventConsoleOutput = "console output"
	eventInstallOutput = "install output"
	eventStatus        = "status"
	eventStats         = "stats"
	eventSendCommand   = "send command"
	eventSendLogs      = "send logs"
	eventSendStats     = "send stats"
	eventSetState      = "set state"
	eventTokenExpiring = "token expiring"
	eventTokenExpired  = "token expired"
	eventDaemonError   = "daemon error"
	eventJWTError      = "jwt error"
)

// outFrame is a frame sent to the daemon.
type outFrame struct {
	Event string   `json:"event"`
	Args  []string `json:"args,omitempty"`
}

// inFrame is a frame received from the daemon.
type inFrame struct {
	Event string   `json:"event"`
	Args  []string `json:"args,omitempty"`
}

// Event is one inbound frame decoded into its typed form. Frames of the same
// type preserve receive order; no ordering holds across distinct types.
type Event interface {
	event()
}

// ConsoleOutput is a single line of server console output.
type ConsoleOutput struct {
	Line string
}

// InstallOutput is a single line of installer output.
type InstallOutput struct {
	Line string
}

// Status reports a change of the server's power state.
type Status struct {
	State string
}

// Stats is a resource-usage sample emitted by the daemon.
type Stats struct {
	MemoryBytes      int64   `json:"memory_bytes"`
	MemoryLimitBytes int64   `json:"memory_limit_bytes"`
	CPUAbsolute      float64 `json:"cpu_absolute"`
	DiskBytes        int64   `json:"disk_bytes"`
	Network          struct {
		RxBytes int64 `json:"rx_bytes"`
		TxBytes int64 `json:"tx_bytes"`
	} `json:"network"`
	State  string `json:"state"`
	Uptime int64  `json:"uptime"`
}

// TokenExpiring warns that the session token will expire soon; callers may
// fetch a fresh token and call Reauthenticate to keep the channel alive.
type TokenExpiring struct{}

// AuthSuccess acknowledges an auth frame, including mid-session
// reauthentication.
type AuthSuccess struct{}

// DaemonError is a non-fatal error reported by the daemon.
type DaemonError struct {
	Message string
}

func (ConsoleOutput) event() {}
func (InstallOutput) event() {}
func (Status) event()        {}
func (Stats) event()         {}
func (TokenExpiring) event() {}
func (AuthSuccess) event()   {}
func (DaemonError) event()   {}

func firstArg(f inFrame) string {
	if len(f.Args) == 0 {
		return ""
	}
	return f.Args[0]
}

// decodeEvent maps a wire frame onto its typed event. Unknown frame types
// decode to nil and are skipped.
func decodeEvent(f inFrame) (Event, error) {
	switch f.Event {
	case eventConsoleOutput:
		return ConsoleOutput{Line: firstArg(f)}, nil
	case eventInstallOutput:
		return InstallOutput{Line: firstArg(f)}, nil
	case eventStatus:
		return Status{State: firstArg(f)}, nil
	case eventStats:
		var s Stats
		if err := json.Unmarshal([]byte(firstArg(f)), &s); err != nil {
			return nil, fmt.Errorf("malformed stats frame: %w", err)
		}
		return s, nil
	case eventTokenExpiring:
		return TokenExpiring{}, nil
	case eventAuthSuccess:
		return AuthSuccess{}, nil
	case eventDaemonError, eventJWTError:
		return DaemonError{Message: firstArg(f)}, nil
	default:
		return nil, nil
	}
}
