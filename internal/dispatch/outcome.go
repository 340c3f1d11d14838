package dispatch

import "fmt"

// Outcome is the final state a frame reached.
type Outcome int

const (
	// Ignored frames are not IPv4 or could not be decoded.
	Ignored Outcome = iota
	// UnknownHost means the source or destination address is not in the
	// host directory. The ledger is untouched.
	UnknownHost
	// DuplicateSession means the ordered host pair was already recorded.
	DuplicateSession
	// SamePortLoop means both hosts sit behind the same port of one device.
	SamePortLoop
	// NoPath means the topology offered no route between the devices.
	NoPath
	// SameSwitchInstalled means one rule pair was installed on the shared
	// device.
	SameSwitchInstalled
	// PathInstalled means rules were installed along a multi-device path.
	PathInstalled
)

var outcomeNames = map[Outcome]string{
	Ignored:             "ignored",
	UnknownHost:         "unknown_host",
	DuplicateSession:    "duplicate_session",
	SamePortLoop:        "same_port_loop",
	NoPath:              "no_path",
	SameSwitchInstalled: "same_switch_installed",
	PathInstalled:       "path_installed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Installed reports whether the frame caused rules to be submitted.
func (o Outcome) Installed() bool {
	return o == SameSwitchInstalled || o == PathInstalled
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
